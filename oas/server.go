package oas

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/page"
)

// Response headers of the document route.
const (
	HeaderAuthTypesPath = "x-viron-authtypes-path"
	HeaderExposeHeaders = "Access-Control-Expose-Headers"
)

// authenticationStub is served on the authentication route.
// The dashboard requires the route but this server offers no auth types.
var authenticationStub = []byte(`{"list":[],"oas":{"openapi":"3.0.2","info":{"title":"authentication","version":"mock","x-pages":[]},"paths":{}}}`)

// Server serves the augmented document and the authentication stub.
// The document is built and encoded once by New and never changes.
type Server struct {
	doc    *openapi3.T
	body   []byte
	opts   options
	logger *slog.Logger
}

// New augments the document for api and root and prepares it for serving.
// It fails on any page, binding or API error.
func New(api *viron.API, root page.Page, opts ...Option) (*Server, error) {
	o := newOptions(opts)

	doc, err := augment(api, root, o)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	return &Server{
		doc:    doc,
		body:   body,
		opts:   o,
		logger: o.logger,
	}, nil
}

// Document returns the augmented document. It must not be modified.
func (s *Server) Document() *openapi3.T { return s.doc }

// DocumentJSON returns the encoded document as served.
func (s *Server) DocumentJSON() []byte {
	out := make([]byte, len(s.body))
	copy(out, s.body)
	return out
}

// OASPath returns the route serving the document.
func (s *Server) OASPath() string { return s.opts.oasPath }

// AuthPath returns the route serving the authentication stub.
func (s *Server) AuthPath() string { return s.opts.authPath }

// Mount registers both GET routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Get(s.opts.oasPath, s.ServeOAS)
	r.Get(s.opts.authPath, s.ServeAuthentication)
}

// Handler returns a router serving only the two routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Mount(r)
	return r
}

// ServeOAS writes the cached document.
func (s *Server) ServeOAS(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set(HeaderAuthTypesPath, s.opts.authPath)
	h.Set(HeaderExposeHeaders, HeaderAuthTypesPath)
	s.write(w, r, s.body)
}

// ServeAuthentication writes the authentication stub.
func (s *Server) ServeAuthentication(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.write(w, r, authenticationStub)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, body []byte) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("viron response write failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}
