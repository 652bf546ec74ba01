package viron

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Endpoint describes one addressable operation of an API group.
// Build it with Get, Post, Put, Patch or Delete and the chaining methods below,
// then add it to a Group.
type Endpoint struct {
	name        string
	method      string
	path        string
	success     *openapi3.SchemaRef
	operationID string
	summary     string
	description string
	handler     http.Handler
}

// NewEndpoint creates an endpoint with the given HTTP method, name and path template.
// Path templates use {param} segments, e.g. "/users/{id}".
func NewEndpoint(method, name, path string) *Endpoint {
	return &Endpoint{
		name:   name,
		method: method,
		path:   path,
	}
}

// Get creates a GET endpoint.
func Get(name, path string) *Endpoint { return NewEndpoint(http.MethodGet, name, path) }

// Post creates a POST endpoint.
func Post(name, path string) *Endpoint { return NewEndpoint(http.MethodPost, name, path) }

// Put creates a PUT endpoint.
func Put(name, path string) *Endpoint { return NewEndpoint(http.MethodPut, name, path) }

// Patch creates a PATCH endpoint.
func Patch(name, path string) *Endpoint { return NewEndpoint(http.MethodPatch, name, path) }

// Delete creates a DELETE endpoint.
func Delete(name, path string) *Endpoint { return NewEndpoint(http.MethodDelete, name, path) }

// Returns declares the success response shape by reflecting on v.
// Pass a zero value of the response type, e.g. viron.TableResponse[User]{}.
// Panics if the type cannot be described as a schema.
func (e *Endpoint) Returns(v any) *Endpoint {
	if v == nil {
		e.success = nil
		return e
	}
	ref, err := openapi3gen.NewSchemaRefForValue(v, nil)
	if err != nil {
		panic(fmt.Sprintf("viron: endpoint %s: cannot describe success type %T: %v", e.name, v, err))
	}
	e.success = ref
	return e
}

// ReturnsSchema declares the success response shape directly.
func (e *Endpoint) ReturnsSchema(schema *openapi3.Schema) *Endpoint {
	if schema == nil {
		e.success = nil
		return e
	}
	e.success = openapi3.NewSchemaRef("", schema)
	return e
}

// WithOperationID overrides the operation id used in the OpenAPI document
// and by dashboards to invoke this endpoint.
func (e *Endpoint) WithOperationID(id string) *Endpoint {
	e.operationID = id
	return e
}

// WithSummary sets the OpenAPI summary.
func (e *Endpoint) WithSummary(s string) *Endpoint {
	e.summary = s
	return e
}

// WithDescription sets the OpenAPI description.
func (e *Endpoint) WithDescription(s string) *Endpoint {
	e.description = s
	return e
}

// Handle attaches the handler that serves this endpoint when the API is mounted.
// Endpoints without a handler are still described but not routed.
func (e *Endpoint) Handle(h http.Handler) *Endpoint {
	e.handler = h
	return e
}

// HandleFunc is like Handle for a plain function.
func (e *Endpoint) HandleFunc(fn http.HandlerFunc) *Endpoint {
	return e.Handle(fn)
}

func (e *Endpoint) Name() string { return e.name }
func (e *Endpoint) Method() string { return e.method }
func (e *Endpoint) Path() string { return e.path }
func (e *Endpoint) Success() *openapi3.SchemaRef { return e.success }
func (e *Endpoint) Summary() string { return e.summary }
func (e *Endpoint) Description() string { return e.description }
func (e *Endpoint) Handler() http.Handler { return e.handler }

// OperationIDOverride returns the explicit operation id, if one was set.
func (e *Endpoint) OperationIDOverride() (string, bool) {
	return e.operationID, e.operationID != ""
}
