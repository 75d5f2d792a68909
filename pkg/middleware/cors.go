package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/escobarvape/backend/config"
)

// CORSOptions configures the cross-origin policy.
type CORSOptions struct {
	AllowedOrigins []string // exact origins, or ["*"] to allow any
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache, seconds
}

// CORSFromConfig builds the policy from the CORS_ORIGINS key: a comma
// separated origin list, e.g. "https://shop.escobarvape.ph,https://admin.escobarvape.ph".
// Unset defaults to "*" so local storefront and dashboard development work
// out of the box.
func CORSFromConfig() CORSOptions {
	return CORSOptions{
		AllowedOrigins: splitOrigins(config.Get("CORS_ORIGINS", "*")),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimRight(o, "/"))
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}

// CORS adds cross-origin headers for allowed origins and answers preflight
// requests. Requests from origins outside the policy get no CORS headers,
// which makes the browser refuse the response.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(opts.MaxAge)

	wildcard := false
	allowed := make(map[string]bool, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			// Response varies by Origin even on denial, so caches must not
			// reuse it across origins.
			w.Header().Add("Vary", "Origin")

			switch {
			case origin == "":
				// Same-origin or non-browser client, nothing to add.
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
			default:
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if opts.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
