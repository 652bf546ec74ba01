package page

import (
	"iter"
	"slices"
)

// Entry is one item of a flattened tree with the names of its ancestor groups.
type Entry struct {
	Path []string
	Item *Item
}

// All yields every item of the tree in pre-order depth-first order.
// Groups yield nothing themselves; their names are appended to the path of
// their descendants. Each yielded Path is a fresh slice owned by the caller.
func All(root Page) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		walk(root, nil, yield)
	}
}

func walk(p Page, path []string, yield func(Entry) bool) bool {
	switch n := p.(type) {
	case *Item:
		if n == nil {
			return true
		}
		return yield(Entry{Path: append(make([]string, 0, len(path)), path...), Item: n})
	case *Group:
		if n == nil {
			return true
		}
		path = append(path, n.Name)
		for _, child := range n.Children {
			if !walk(child, path, yield) {
				return false
			}
		}
	}
	return true
}

// Walk returns All(root) as a slice.
func Walk(root Page) []Entry {
	return slices.Collect(All(root))
}

// Items returns the number of items in the tree.
func Items(root Page) int {
	n := 0
	for range All(root) {
		n++
	}
	return n
}
