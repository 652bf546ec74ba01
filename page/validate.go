package page

import (
	"errors"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tsutoringo/viron-go"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the shape of the tree: no nil nodes, non-empty group
// names, item fields present, item ids unique across the whole tree, and
// every content binding well formed. Endpoints are not resolved here.
// All problems are reported together.
func Validate(root Page) error {
	v := &checker{seen: make(map[string][]string)}
	v.visit(root, nil)
	return errors.Join(v.errs...)
}

type checker struct {
	seen map[string][]string
	errs []error
}

func (v *checker) visit(p Page, path []string) {
	switch n := p.(type) {
	case nil:
		v.errs = append(v.errs, viron.Errorf(viron.CodeInvalidPage, "nil page under %s", where(path)))
	case *Group:
		if n == nil {
			v.errs = append(v.errs, viron.Errorf(viron.CodeInvalidPage, "nil group under %s", where(path)))
			return
		}
		if err := validate.Struct(n); err != nil {
			v.errs = append(v.errs, viron.ValidationError(viron.CodeInvalidPage, "group under "+where(path), err))
		}
		path = append(path, n.Name)
		for _, child := range n.Children {
			v.visit(child, path)
		}
	case *Item:
		if n == nil {
			v.errs = append(v.errs, viron.Errorf(viron.CodeInvalidPage, "nil item under %s", where(path)))
			return
		}
		v.item(n, path)
	}
}

func (v *checker) item(it *Item, path []string) {
	if err := validate.Struct(it); err != nil {
		v.errs = append(v.errs, viron.ValidationError(viron.CodeInvalidPage, "item "+it.ID+" under "+where(path), err))
	}
	if it.ID != "" {
		if prev, dup := v.seen[it.ID]; dup {
			v.errs = append(v.errs, viron.Errorf(viron.CodeInvalidPage, "duplicate item id %q under %s, first seen under %s", it.ID, where(path), where(prev)).
				WithDetail("page", it.ID))
		} else {
			v.seen[it.ID] = append([]string(nil), path...)
		}
	}
	for _, c := range it.Contents {
		if err := c.Validate(); err != nil {
			v.errs = append(v.errs, PageError(it.ID, err))
		}
	}
}

func where(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return strings.Join(path, "/")
}

// PageError attaches the enclosing item id to a binding error.
// The code of a *viron.Error is kept so errors.Is still matches.
func PageError(id string, err error) error {
	var verr *viron.Error
	if errors.As(err, &verr) {
		out := &viron.Error{Code: verr.Code, Message: "page " + id + ": " + verr.Message, Details: maps.Clone(verr.Details)}
		return out.WithDetail("page", id)
	}
	return err
}
