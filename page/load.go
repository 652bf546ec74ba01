package page

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsutoringo/viron-go"
)

// Load reads a page tree from a YAML or JSON file.
func Load(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page config: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadFS is like Load for a file in fsys.
func LoadFS(fsys fs.FS, name string) (Page, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read page config: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// Parse decodes a page tree. JSON is accepted as a subset of YAML.
//
// A mapping with a "group" key is a Group whose "children" hold nested pages;
// any other mapping is an Item:
//
//	group: Samples
//	children:
//	  - id: dash
//	    title: Dashboard
//	    contents:
//	      - type: table
//	        title: Users
//	        resourceId: User
//	        endpoint: User.listUsers
func Parse(data []byte) (Page, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse page config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, viron.NewError(viron.CodeInvalidPage, "empty page config")
	}
	return decodePage(doc.Content[0])
}

func decodePage(n *yaml.Node) (Page, error) {
	if n.Kind != yaml.MappingNode {
		return nil, viron.Errorf(viron.CodeInvalidPage, "line %d: page must be a mapping", n.Line)
	}

	if !hasKey(n, "group") {
		var it Item
		if err := n.Decode(&it); err != nil {
			return nil, fmt.Errorf("line %d: item: %w", n.Line, err)
		}
		return &it, nil
	}

	var raw struct {
		Group    string      `yaml:"group"`
		Children []yaml.Node `yaml:"children"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: group: %w", n.Line, err)
	}
	g := &Group{Name: raw.Group, Children: make([]Page, 0, len(raw.Children))}
	for i := range raw.Children {
		child, err := decodePage(&raw.Children[i])
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, child)
	}
	return g, nil
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}
