package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
)

func Test_server_routes(t *testing.T) {
	app := setup(t)

	t.Run("home", func(t *testing.T) {
		rec := app.do(newRequest(http.MethodGet, "/"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cryptography Resource Manager API", rec.Body.String())
	})

	tests := []httpTest{
		{
			name:     "health",
			method:   http.MethodGet,
			path:     "/api/health",
			wantCode: http.StatusOK,
			wantData: []byte(`{"status":"ok","message":"Server is running"}`),
		},
		{
			name:     "health with trailing slash",
			method:   http.MethodGet,
			path:     "/api/health/",
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown endpoint",
			method:   http.MethodGet,
			path:     "/api/nope",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, errRouteNotFound),
		},
		{
			name:     "unknown method",
			method:   http.MethodPatch,
			path:     "/api/health",
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, errRouteNotFound),
		},
	}
	// paths outside the five content entities
	for _, path := range []string{"/api/users", "/api/articles", "/api/news", "/api/iacr-news", "/api/dashboard", "/api/events"} {
		tests = append(tests, httpTest{
			name:     "unserved " + path,
			method:   http.MethodGet,
			path:     path,
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, errRouteNotFound),
		})
	}
	runHTTPTests(t, app, tests)
}

func Test_server_rateLimit(t *testing.T) {
	app := setup(t, func(conf *core.Config) {
		conf.RateLimit.Max = 2
	})

	for i := 0; i < 2; i++ {
		rec := app.do(newRequest(http.MethodGet, "/api/health"))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := app.do(newRequest(http.MethodGet, "/api/health"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "900", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests from this IP, please try again after 15 minutes"}`, rec.Body.String())

	// other clients are not throttled
	req := newRequest(http.MethodGet, "/api/health")
	req.RemoteAddr = "198.51.100.7:4242"
	assert.Equal(t, http.StatusOK, app.do(req).Code)

	// the home page is outside the API
	assert.Equal(t, http.StatusOK, app.do(newRequest(http.MethodGet, "/")).Code)
}
