package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(opts CORSOptions) http.Handler {
	return CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowedOriginEchoed(t *testing.T) {
	h := corsHandler(CORSOptions{
		AllowedOrigins: []string{"https://shop.escobarvape.ph"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Authorization"},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.escobarvape.ph")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://shop.escobarvape.ph", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	h := corsHandler(CORSOptions{AllowedOrigins: []string{"https://shop.escobarvape.ph"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightDeniedForUnknownOrigin(t *testing.T) {
	h := corsHandler(CORSOptions{AllowedOrigins: []string{"https://shop.escobarvape.ph"}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSPreflightAllowed(t *testing.T) {
	h := corsHandler(CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSFromConfigReadsOriginList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://shop.escobarvape.ph, https://admin.escobarvape.ph/")

	opts := CORSFromConfig()
	assert.Equal(t,
		[]string{"https://shop.escobarvape.ph", "https://admin.escobarvape.ph"},
		opts.AllowedOrigins)
}

func TestSplitOriginsEmptyFallsBackToWildcard(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"*"}, splitOrigins(" , "))
}
