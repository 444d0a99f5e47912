package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeffreasy/PasswordLab/internal/demo"
	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

func newTestServer(t *testing.T, salts *hashing.SaltGenerator, rps float64, burst int) *Server {
	t.Helper()
	return newTestServerWithConfig(t, salts, ServerConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	})
}

func newTestServerWithConfig(t *testing.T, salts *hashing.SaltGenerator, cfg ServerConfig) *Server {
	t.Helper()
	adaptive, err := hashing.NewBcryptHasher(hashing.MinCost)
	require.NoError(t, err)
	svc := demo.NewService(hashing.NewFastHasher(salts), adaptive, hashing.NewDictionaryAttack(nil))

	reg := prometheus.NewRegistry()
	cfg.Registerer = reg
	cfg.Gatherer = reg
	s, err := NewServer(cfg, svc, adaptive.Algorithm())
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestUnsalted_CrackedPassword(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := post(t, s, "/api/v1/step1/unsalted", `{"password":"password"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decode(t, rr)
	assert.Equal(t, "password", body["password"])
	assert.Equal(t, hashing.Digest([]byte("password")), body["hash"])
	attack := body["attack"].(map[string]any)
	assert.Equal(t, true, attack["found"])
	assert.Equal(t, "password", attack["password"])
	assert.Contains(t, body, "strength")
}

func TestUnsalted_UnknownPassword(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := post(t, s, "/api/v1/step1/unsalted", `{"password":"Xk9$uniquephrase!"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	attack := decode(t, rr)["attack"].(map[string]any)
	assert.Equal(t, false, attack["found"])
	assert.Nil(t, attack["password"])
}

func TestSaltedComparison(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := post(t, s, "/api/v1/step2/salted-comparison", `{"passwordA":"abc","passwordB":"xyz","useSameSalt":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	a := body["passwordA"].(map[string]any)
	b := body["passwordB"].(map[string]any)
	assert.Equal(t, a["salt"], b["salt"])
	assert.Equal(t, "abc", a["pass"])
	assert.Equal(t, true, body["usingSameSalt"])

	rr = post(t, s, "/api/v1/step2/salted-comparison", `{"passwordA":"abc","passwordB":"xyz"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	a = body["passwordA"].(map[string]any)
	b = body["passwordB"].(map[string]any)
	assert.NotEqual(t, a["salt"], b["salt"])
	assert.Equal(t, false, body["usingSameSalt"])
}

func TestAdaptive_BothRoutes(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	for _, path := range []string{"/api/v1/step3/adaptive", "/api/v1/step3/bcrypt"} {
		rr := post(t, s, path, `{"password":"hunter2"}`)
		require.Equal(t, http.StatusOK, rr.Code, path)

		body := decode(t, rr)
		assert.NotEqual(t, body["hash1"], body["hash2"])
		assert.Equal(t, "bcrypt", body["algorithm"])
		v := body["verification"].(map[string]any)
		assert.Equal(t, true, v["hash1_valid"])
		assert.Equal(t, true, v["hash2_valid"])
	}
}

func TestDemo_ClientErrors(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	cases := []struct {
		path, body string
	}{
		{"/api/v1/step1/unsalted", `{"password":""}`},
		{"/api/v1/step1/unsalted", `{}`},
		{"/api/v1/step1/unsalted", `not json`},
		{"/api/v1/step1/unsalted", `{"password":"x","admin":true}`},
		{"/api/v1/step2/salted-comparison", `{"passwordA":"abc"}`},
		{"/api/v1/step3/adaptive", `{"password":""}`},
	}
	for _, tc := range cases {
		rr := post(t, s, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "%s %s", tc.path, tc.body)
		assert.NotEmpty(t, decode(t, rr)["error"])
	}
}

func TestDemo_AdaptiveAcceptsLongPassword(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := post(t, s, "/api/v1/step3/adaptive", `{"password":"`+strings.Repeat("a", 80)+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	v := decode(t, rr)["verification"].(map[string]any)
	assert.Equal(t, true, v["hash1_valid"])
	assert.Equal(t, true, v["hash2_valid"])
}

func TestDemo_EntropyFailureIsServerError(t *testing.T) {
	broken := hashing.NewSaltGeneratorFrom(iotest.ErrReader(errors.New("no entropy")), 16)
	s := newTestServer(t, broken, 100, 100)

	rr := post(t, s, "/api/v1/step2/salted-comparison", `{"passwordA":"abc","passwordB":"xyz"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", decode(t, rr)["error"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", decode(t, rr)["status"])

	post(t, s, "/api/v1/step1/unsalted", `{"password":"password"}`)

	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `passwordlab_http_requests_total{method="POST",route="/api/v1/step1/unsalted",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, nil, 0.001, 1)

	assert.Equal(t, http.StatusOK, post(t, s, "/api/v1/step1/unsalted", `{"password":"a"}`).Code)
	rr := post(t, s, "/api/v1/step1/unsalted", `{"password":"a"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// Health is outside the limited group.
	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_ForwardedFor(t *testing.T) {
	cases := []struct {
		name       string
		trust      bool
		secondCode int
	}{
		{"spoofed header ignored", false, http.StatusTooManyRequests},
		{"trusted proxy header used", true, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServerWithConfig(t, nil, ServerConfig{
				RateLimitRPS:      0.001,
				RateLimitBurst:    1,
				TrustProxyHeaders: tc.trust,
			})
			call := func(forwarded string) int {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/step1/unsalted", strings.NewReader(`{"password":"a"}`))
				req.RemoteAddr = "192.0.2.10:4000"
				req.Header.Set("X-Forwarded-For", forwarded)
				rr := httptest.NewRecorder()
				s.Router.ServeHTTP(rr, req)
				return rr.Code
			}

			assert.Equal(t, http.StatusOK, call("198.51.100.1"))
			assert.Equal(t, tc.secondCode, call("198.51.100.2"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/step1/unsalted", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/step1/unsalted", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, nil, 100, 100)

	rr := post(t, s, "/api/v1/step1/unsalted", `{"password":"a"}`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
