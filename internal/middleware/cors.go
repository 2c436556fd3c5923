package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures cross-origin access for the storefront frontends.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API. A "*"
	// entry allows every origin; outside development that should only be
	// set deliberately.
	AllowedOrigins []string

	// AllowedMethods defaults to the wishlist API surface:
	// GET, POST, DELETE, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders defaults to Accept, Authorization, Content-Type and
	// X-Correlation-ID.
	AllowedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds. Defaults to 3600.
	MaxAge int

	// Environment switches wildcard behavior on implicitly in development.
	Environment string
}

// cors is the precomputed form of CORSConfig.
type cors struct {
	wildcard bool
	origins  map[string]struct{}
	methods  string
	headers  string
	maxAge   string
}

func newCORS(cfg CORSConfig) *cors {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"}
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 3600
	}

	c := &cors{
		wildcard: cfg.Environment == "development",
		origins:  make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:  strings.Join(cfg.AllowedMethods, ", "),
		headers:  strings.Join(cfg.AllowedHeaders, ", "),
		maxAge:   strconv.Itoa(cfg.MaxAge),
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			c.wildcard = true
		}
		c.origins[o] = struct{}{}
	}
	return c
}

func (c *cors) setHeaders(w http.ResponseWriter, origin string) {
	switch {
	case c.wildcard:
		w.Header().Set("Access-Control-Allow-Origin", "*")
	case origin != "":
		if _, ok := c.origins[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
	}
	w.Header().Set("Access-Control-Allow-Methods", c.methods)
	w.Header().Set("Access-Control-Allow-Headers", c.headers)
	w.Header().Set("Access-Control-Max-Age", c.maxAge)
}

// CORS answers preflights and stamps cross-origin headers on every response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	c := newCORS(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.setHeaders(w, r.Header.Get("Origin"))

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
