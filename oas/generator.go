// Package oas builds the OpenAPI document the Viron dashboard reads and
// serves it over HTTP.
package oas

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tsutoringo/viron-go"
)

// OpenAPIVersion is the document version the dashboard understands.
const OpenAPIVersion = "3.0.2"

// Generate builds the base OpenAPI document for api.
//
// Each group becomes a tag. Each endpoint becomes an operation at the group
// prefix joined with its path, with the operation id from viron.OperationID,
// its {param} segments as required string path parameters, and a 200 JSON
// response carrying the declared success schema.
//
// Duplicate group names, method+path pairs and operation ids are reported
// together as viron.ErrInvalidAPI.
func Generate(api *viron.API) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       api.Name(),
			Version:     api.Version(),
			Description: api.Description(),
		},
		Paths: openapi3.NewPaths(),
	}
	for _, url := range api.Servers() {
		doc.AddServer(&openapi3.Server{URL: url})
	}

	var errs []error
	groups := make(map[string]bool)
	routes := make(map[string]string)
	opIDs := make(map[string]string)

	for _, g := range api.Groups() {
		if groups[g.Name()] {
			errs = append(errs, viron.Errorf(viron.CodeInvalidAPI, "duplicate group %q", g.Name()))
			continue
		}
		groups[g.Name()] = true
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: g.Name()})

		for _, e := range g.Endpoints() {
			qualified := g.Name() + "." + e.Name()
			path := g.Prefix() + e.Path()
			method := strings.ToUpper(e.Method())

			route := method + " " + path
			if prev, dup := routes[route]; dup {
				errs = append(errs, viron.Errorf(viron.CodeInvalidAPI, "%s and %s both map to %s", prev, qualified, route))
				continue
			}
			routes[route] = qualified

			opID := viron.OperationID(g, e)
			if prev, dup := opIDs[opID]; dup {
				errs = append(errs, viron.Errorf(viron.CodeInvalidAPI, "%s and %s share operation id %q", prev, qualified, opID))
				continue
			}
			opIDs[opID] = qualified

			doc.AddOperation(path, method, operation(g, e, opID, path))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return doc, nil
}

func operation(g *viron.Group, e *viron.Endpoint, opID, path string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = opID
	op.Tags = []string{g.Name()}
	op.Summary = e.Summary()
	op.Description = e.Description()

	for _, name := range pathParams(path) {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
	}

	resp := openapi3.NewResponse().WithDescription(http.StatusText(http.StatusOK))
	if s := e.Success(); s != nil {
		resp = resp.WithJSONSchemaRef(s)
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: resp}))
	return op
}

// pathParams returns the names of {param} segments in order.
func pathParams(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}
