// Package page models the Viron dashboard navigation as a tree of groups and
// items, and flattens it into the order the dashboard renders.
package page

import "github.com/tsutoringo/viron-go"

// Page is a node of the navigation tree: an *Item or a *Group.
type Page interface {
	page()
}

// Item is a leaf screen of the dashboard.
type Item struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	Title       string          `json:"title" yaml:"title" validate:"required"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Contents    []viron.Content `json:"contents" yaml:"contents"`
}

// Group is a named navigation section holding child pages.
type Group struct {
	Name     string `json:"group" yaml:"group" validate:"required"`
	Children []Page `json:"children" yaml:"-"`
}

func (*Item) page()  {}
func (*Group) page() {}

// NewItem creates an item with the given contents.
func NewItem(id, title string, contents ...viron.Content) *Item {
	return &Item{ID: id, Title: title, Contents: contents}
}

// WithDescription sets the item description.
func (i *Item) WithDescription(d string) *Item {
	i.Description = d
	return i
}

// NewGroup creates a group with the given children.
func NewGroup(name string, children ...Page) *Group {
	return &Group{Name: name, Children: children}
}
