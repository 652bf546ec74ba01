package viron

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// API is a static description of an HTTP API: an ordered set of named groups,
// each holding named endpoints.
// Build it once at startup; after that it is only read.
type API struct {
	mu          sync.RWMutex
	name        string
	version     string
	description string
	servers     []string
	groups      []*Group
	transform   func(*openapi3.T) *openapi3.T
	logger      *slog.Logger
}

// NewAPI creates an empty API description. The name becomes the document title.
func NewAPI(name string) *API {
	return &API{
		name:    name,
		version: "0.0.1",
	}
}

// WithVersion sets the document version. Default is "0.0.1".
func (a *API) WithVersion(v string) *API {
	a.version = v
	return a
}

// WithDescription sets the document description.
func (a *API) WithDescription(d string) *API {
	a.description = d
	return a
}

// WithServer adds a server URL to the document.
func (a *API) WithServer(url string) *API {
	a.servers = append(a.servers, url)
	return a
}

// WithTransform registers a function applied to the generated document
// before Viron metadata is merged into it.
func (a *API) WithTransform(fn func(*openapi3.T) *openapi3.T) *API {
	a.transform = fn
	return a
}

// WithLogger sets a custom logger.
// If not set, slog.Default() will be used.
func (a *API) WithLogger(logger *slog.Logger) *API {
	a.logger = logger
	return a
}

// Group returns the group with the given name, creating and registering it
// if it does not exist yet.
func (a *API) Group(name string) *Group {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, g := range a.groups {
		if g.name == name {
			return g
		}
	}
	g := NewGroup(name)
	g.logger = a.logger
	a.groups = append(a.groups, g)
	return g
}

// Extend returns a copy of the API with the given groups appended.
// The receiver is not modified.
func (a *API) Extend(groups ...*Group) *API {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return &API{
		name:        a.name,
		version:     a.version,
		description: a.description,
		servers:     slices.Clone(a.servers),
		groups:      append(slices.Clone(a.groups), groups...),
		transform:   a.transform,
		logger:      a.logger,
	}
}

func (a *API) Name() string        { return a.name }
func (a *API) Version() string     { return a.version }
func (a *API) Description() string { return a.description }
func (a *API) Servers() []string   { return slices.Clone(a.servers) }

// Transform returns the document transform, or nil.
func (a *API) Transform() func(*openapi3.T) *openapi3.T { return a.transform }

// Groups returns the groups in registration order.
func (a *API) Groups() []*Group {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.groups)
}

// Mount registers every endpoint that has a handler on r,
// at the group prefix joined with the endpoint path.
func (a *API) Mount(r chi.Router) {
	for _, g := range a.Groups() {
		for _, e := range g.Endpoints() {
			if e.handler == nil {
				continue
			}
			r.Method(e.method, g.prefix+e.path, e.handler)
		}
	}
}

// Group is a named collection of endpoints.
type Group struct {
	mu        sync.RWMutex
	name      string
	topLevel  bool
	prefix    string
	endpoints []*Endpoint
	logger    *slog.Logger
}

// NewGroup creates a standalone group. Use API.Group to create one that is
// registered on an API, or API.Extend to attach standalone groups.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

// WithTopLevel marks the group as flattened into the root namespace:
// its operation ids are bare endpoint names.
func (g *Group) WithTopLevel() *Group {
	g.topLevel = true
	return g
}

// WithPrefix sets a path prefix applied to every endpoint of the group.
func (g *Group) WithPrefix(prefix string) *Group {
	g.prefix = prefix
	return g
}

// Add registers an endpoint.
// If an endpoint with the same name exists it is replaced in place
// and a warning is logged.
func (g *Group) Add(e *Endpoint) *Group {
	if e == nil {
		panic("viron: nil endpoint added to group " + g.name)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, existing := range g.endpoints {
		if existing.name == e.name {
			logger := g.logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("duplicate endpoint registration",
				slog.String("group", g.name),
				slog.String("endpoint", e.name))
			g.endpoints[i] = e
			return g
		}
	}
	g.endpoints = append(g.endpoints, e)
	return g
}

func (g *Group) Name() string   { return g.name }
func (g *Group) TopLevel() bool { return g.topLevel }
func (g *Group) Prefix() string { return g.prefix }

// Endpoints returns the endpoints in registration order.
func (g *Group) Endpoints() []*Endpoint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.endpoints)
}

// Endpoint returns the endpoint with the given name, or nil.
func (g *Group) Endpoint(name string) *Endpoint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.endpoints {
		if e.name == name {
			return e
		}
	}
	return nil
}

// Handler returns an http.Handler serving every routed endpoint of the API.
// Unknown routes get chi's default 404.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	a.Mount(r)
	return r
}
