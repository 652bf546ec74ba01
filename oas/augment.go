package oas

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/page"
)

// Extension keys added to the document info object.
const (
	ExtPages  = "x-pages"
	ExtTable  = "x-table"
	ExtNumber = "x-number"
)

// PageDescriptor is one dashboard page as the dashboard reads it.
type PageDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Group is GroupPath joined with "/".
	Group     string              `json:"group"`
	GroupPath []string            `json:"-"`
	Contents  []ContentDescriptor `json:"contents"`
}

// ContentDescriptor is one widget bound to the operation that feeds it.
type ContentDescriptor struct {
	Type        viron.ContentType `json:"type"`
	Title       string            `json:"title"`
	ResourceID  string            `json:"resourceId"`
	OperationID string            `json:"operationId"`
}

// TableExtension is the value of x-table.
type TableExtension struct {
	ResponseListKey string `json:"responseListKey"`
}

// NumberExtension is the value of x-number.
type NumberExtension struct {
	ResponseNumberKey string `json:"responseNumberKey"`
}

// BuildPages flattens root and binds every widget to an endpoint of api.
//
// The tree is validated first. Then each binding is resolved through a
// viron.Catalog, its success schema checked with viron.CheckEnvelope, and its
// operation id computed with viron.OperationID. All failures are returned
// joined; no descriptors are returned when any binding fails.
func BuildPages(api *viron.API, root page.Page) ([]PageDescriptor, error) {
	if err := page.Validate(root); err != nil {
		return nil, err
	}

	catalog := viron.NewCatalog(api)
	var errs []error
	pages := []PageDescriptor{}

	for entry := range page.All(root) {
		it := entry.Item
		desc := PageDescriptor{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Group:       strings.Join(entry.Path, "/"),
			GroupPath:   entry.Path,
			Contents:    make([]ContentDescriptor, 0, len(it.Contents)),
		}
		for _, c := range it.Contents {
			cd, err := bind(catalog, c)
			if err != nil {
				errs = append(errs, page.PageError(it.ID, err))
				continue
			}
			desc.Contents = append(desc.Contents, cd)
		}
		pages = append(pages, desc)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return pages, nil
}

func bind(catalog *viron.Catalog, c viron.Content) (ContentDescriptor, error) {
	g, e, err := catalog.Lookup(c.Endpoint)
	if err != nil {
		return ContentDescriptor{}, err
	}
	if err := viron.CheckEnvelope(c.Type, e.Success()); err != nil {
		var verr *viron.Error
		if errors.As(err, &verr) {
			return ContentDescriptor{}, viron.Errorf(verr.Code, "endpoint %s: %s", c.Endpoint, verr.Message).
				WithDetail("identifier", c.Endpoint.String())
		}
		return ContentDescriptor{}, fmt.Errorf("endpoint %s: %w", c.Endpoint, err)
	}
	return ContentDescriptor{
		Type:        c.Type,
		Title:       c.Title,
		ResourceID:  c.ResourceID,
		OperationID: viron.OperationID(g, e),
	}, nil
}

// Augment generates the OpenAPI document for api and attaches the Viron page
// metadata derived from root.
//
// The document is generated for api plus a Viron group describing the
// document and authentication routes. The API's transform, if any, runs
// next. Finally info receives x-pages, x-table and x-number, and openapi is
// pinned to 3.0.2. Nothing else is changed. Any page or binding error aborts
// the whole operation.
func Augment(api *viron.API, root page.Page, opts ...Option) (*openapi3.T, error) {
	return augment(api, root, newOptions(opts))
}

func augment(api *viron.API, root page.Page, o options) (*openapi3.T, error) {
	pages, err := BuildPages(api, root)
	if err != nil {
		return nil, err
	}

	doc, err := Generate(api.Extend(vironGroup(o)))
	if err != nil {
		return nil, err
	}
	if transform := api.Transform(); transform != nil {
		doc = transform(doc)
		if doc == nil {
			return nil, viron.NewError(viron.CodeInvalidAPI, "document transform returned nil")
		}
	}

	out := merge(doc, pages)

	bindings := 0
	for _, p := range pages {
		bindings += len(p.Contents)
	}
	o.logger.Debug("viron document augmented",
		slog.String("api", api.Name()),
		slog.Int("pages", len(pages)),
		slog.Int("bindings", bindings))

	return out, nil
}

// merge returns a shallow copy of doc with the Viron extensions set on a
// copy of its info object.
func merge(doc *openapi3.T, pages []PageDescriptor) *openapi3.T {
	out := *doc
	out.OpenAPI = OpenAPIVersion

	var info openapi3.Info
	if doc.Info != nil {
		info = *doc.Info
	}
	info.Extensions = maps.Clone(info.Extensions)
	if info.Extensions == nil {
		info.Extensions = make(map[string]any, 3)
	}
	info.Extensions[ExtPages] = pages
	info.Extensions[ExtTable] = TableExtension{ResponseListKey: viron.TableListKey}
	info.Extensions[ExtNumber] = NumberExtension{ResponseNumberKey: viron.NumberValueKey}
	out.Info = &info
	return &out
}

func vironGroup(o options) *viron.Group {
	return viron.NewGroup("Viron").
		Add(viron.Get("getOpenApi", o.oasPath).
			WithSummary("Viron OpenAPI document").
			ReturnsSchema(openapi3.NewObjectSchema())).
		Add(viron.Get("authentication", o.authPath).
			WithSummary("Viron authentication types").
			ReturnsSchema(openapi3.NewObjectSchema()))
}
