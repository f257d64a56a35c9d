package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRecoverPanic(t *testing.T) {
	app := &application{config: testConfig(), logger: newLogger("testing")}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
	assert.Empty(t, res.Body.String())
}

func TestRequireBasicAuth(t *testing.T) {
	app := &application{config: testConfig(), logger: newLogger("testing")}

	tests := []struct {
		name           string
		setAuth        func(r *http.Request)
		expectedStatus int
	}{
		{
			name:           "No Authorization Header",
			setAuth:        func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid Credentials",
			setAuth:        func(r *http.Request) { r.SetBasicAuth(testLogin, testPassword) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong Password",
			setAuth:        func(r *http.Request) { r.SetBasicAuth(testLogin, "wrong") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Login",
			setAuth:        func(r *http.Request) { r.SetBasicAuth("root", testPassword) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Credentials Differ In Case",
			setAuth:        func(r *http.Request) { r.SetBasicAuth("ADMIN", "QWERTY") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Bearer Scheme",
			setAuth:        func(r *http.Request) { r.Header.Set("Authorization", "Bearer YWRtaW46cXdlcnR5") },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Base64",
			setAuth:        func(r *http.Request) { r.Header.Set("Authorization", "Basic !!!") },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	middleware := app.requireBasicAuth(okHandler)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/blogs", nil)
			tt.setAuth(req)

			res := httptest.NewRecorder()
			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
			assert.Empty(t, res.Body.String())
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, res.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func TestEnableCORS(t *testing.T) {
	app := &application{
		config: &Config{
			TrustedOrigins: []string{"http://example.com"},
		},
	}

	middleware := app.enableCORS(http.HandlerFunc(okHandler))

	tests := []struct {
		name                       string
		origin                     string
		method                     string
		accessControlRequestMethod *string
		wantAllowOrigin            string
		wantAllowMethods           string
	}{
		{
			name:            "Valid Origin",
			origin:          "http://example.com",
			method:          http.MethodGet,
			wantAllowOrigin: "http://example.com",
		},
		{
			name:                       "Valid Origin and Preflight Request",
			origin:                     "http://example.com",
			method:                     http.MethodOptions,
			accessControlRequestMethod: strptr(http.MethodPut),
			wantAllowOrigin:            "http://example.com",
			wantAllowMethods:           http.MethodPut,
		},
		{
			name:   "Invalid Origin",
			origin: "http://invalid.com",
			method: http.MethodGet,
		},
		{
			name:                       "Invalid Origin Preflight",
			origin:                     "http://invalid.com",
			method:                     http.MethodOptions,
			accessControlRequestMethod: strptr(http.MethodDelete),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.accessControlRequestMethod != nil {
				req.Header.Set("Access-Control-Request-Method", *tt.accessControlRequestMethod)
			}

			res := httptest.NewRecorder()
			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.wantAllowOrigin, res.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantAllowMethods, res.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestEnableCORS_NoTrustedOrigins(t *testing.T) {
	app := &application{config: &Config{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	res := httptest.NewRecorder()

	app.enableCORS(http.HandlerFunc(okHandler)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	app := &application{
		config: &Config{
			RateLimitRPS:     2,
			RateLimitBurst:   4,
			RateLimitEnabled: true,
		},
	}

	middleware := app.rateLimit(http.HandlerFunc(okHandler))

	tests := []struct {
		name           string
		remoteAddr     string
		requests       int
		expectedStatus int
	}{
		{
			name:           "Within Limit",
			remoteAddr:     "10.0.0.1:1234",
			requests:       4,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Over Limit",
			remoteAddr:     "10.0.0.2:1234",
			requests:       6,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "Separate Bucket Per Client",
			remoteAddr:     "10.0.0.3:1234",
			requests:       1,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastStatusCode int

			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = tt.remoteAddr
				res := httptest.NewRecorder()

				middleware.ServeHTTP(res, req)
				lastStatusCode = res.Code
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	app := &application{config: &Config{RateLimitEnabled: false}}

	middleware := app.rateLimit(http.HandlerFunc(okHandler))

	for i := 0; i < 50; i++ {
		res := httptest.NewRecorder()
		middleware.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, res.Code)
	}
	assert.Nil(t, app.limiter)
}

func TestMetricsRouteLabels(t *testing.T) {
	app := &application{config: testConfig(), logger: newLogger("testing")}
	ts := newTestServer(t, app.routes())

	requests := []struct {
		method string
		path   string
		auth   bool
	}{
		{method: http.MethodGet, path: "/unknown/3f2504e0-4f89-41d3-9a0c-0305e82c3301"},
		{method: http.MethodGet, path: "/some/random/path-1"},
		{method: http.MethodGet, path: "/some/random/path-2"},
		{method: http.MethodPatch, path: "/blogs"},
		{method: http.MethodGet, path: "/healthcheck"},
		{method: http.MethodPut, path: "/blogs/abc", auth: false},
		{method: http.MethodPut, path: "/blogs/blogs", auth: false},
		{method: http.MethodPost, path: "/blogs/posts/posts", auth: false},
	}
	for _, req := range requests {
		ts.do(t, req.method, req.path, nil, req.auth)
	}

	metrics := ts.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.status)
	body := string(metrics.body)

	wantSeries := []string{
		`http_requests_total{method="GET",path="unrouted",status="404"}`,
		`http_requests_total{method="PATCH",path="unrouted",status="405"}`,
		`http_requests_total{method="GET",path="/healthcheck",status="200"}`,
		`http_requests_total{method="PUT",path="/blogs/:id",status="401"}`,
		`http_requests_total{method="POST",path="/blogs/:id/posts",status="401"}`,
		"http_requests_in_flight",
	}
	for _, series := range wantSeries {
		assert.Contains(t, body, series)
	}

	for _, leaked := range []string{"3f2504e0", "path-1", "/blogs/abc", "/blogs/blogs", "/blogs/posts"} {
		assert.NotContains(t, body, leaked)
	}
}
