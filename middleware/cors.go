// Package middleware provides HTTP middleware for servers exposing an API to
// the Viron dashboard.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Origins the hosted Viron dashboard is served from.
var DefaultDashboardOrigins = []string{
	"https://viron.plus",
	"https://local.viron.work:8000",
}

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowOrigins is a list of origins a cross-domain request can be executed from.
	// If the list contains "*", all origins are allowed.
	// Default: ["*"]
	AllowOrigins []string

	// AllowMethods is a list of methods the client is allowed to use.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowMethods []string

	// AllowHeaders is a list of headers the client is allowed to use.
	// Default: ["Content-Type", "Authorization"]
	AllowHeaders []string

	// ExposeHeaders indicates which response headers the browser may read.
	// Default: []
	ExposeHeaders []string

	// AllowCredentials indicates whether the request can include credentials.
	// Default: false
	AllowCredentials bool

	// MaxAge indicates how long (in seconds) the results of a preflight request can be cached.
	// Default: 0 (not set)
	MaxAge int
}

// DashboardCORS returns the configuration the Viron dashboard needs:
// credentials allowed and the x-viron-authtypes-path header exposed.
// With no origins, DefaultDashboardOrigins is used.
func DashboardCORS(origins ...string) *CORSConfig {
	if len(origins) == 0 {
		origins = DefaultDashboardOrigins
	}
	return &CORSConfig{
		AllowOrigins:     slices.Clone(origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"x-viron-authtypes-path"},
		AllowCredentials: true,
		MaxAge:           600,
	}
}

// CORSAllowAll is a permissive CORS configuration suitable for development.
// It allows all origins (*), standard methods (GET, POST, OPTIONS),
// and common headers (Content-Type, Authorization).
var CORSAllowAll *CORSConfig = nil

// CORS returns an HTTP middleware that handles CORS preflight requests and sets CORS headers.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = &CORSConfig{}
	}

	allowedOrigins := cfg.AllowOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	wildcard := slices.Contains(allowedOrigins, "*")

	allowedMethods := cfg.AllowMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "OPTIONS"}
	}

	allowedHeaders := cfg.AllowHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{"Content-Type", "Authorization"}
	}

	allowedMethodsStr := strings.Join(allowedMethods, ", ")
	allowedHeadersStr := strings.Join(allowedHeaders, ", ")
	exposedHeadersStr := strings.Join(cfg.ExposeHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			allowed := wildcard || (origin != "" && slices.Contains(allowedOrigins, origin))
			if !wildcard {
				h.Add("Vary", "Origin")
			}

			if allowed {
				// Access-Control-Allow-Origin: * cannot be combined with credentials,
				// so a wildcard config echoes the requesting origin in that case.
				if origin != "" && (!wildcard || cfg.AllowCredentials) {
					h.Set("Access-Control-Allow-Origin", origin)
				} else {
					h.Set("Access-Control-Allow-Origin", "*")
				}

				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if exposedHeadersStr != "" {
					h.Set("Access-Control-Expose-Headers", exposedHeadersStr)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", allowedMethodsStr)
				h.Set("Access-Control-Allow-Headers", allowedHeadersStr)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
