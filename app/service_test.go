package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kilianp07/fleetcompute/config"
	"github.com/kilianp07/fleetcompute/core/model"
)

func newTestService(t *testing.T, mutate func(*config.Config)) *Service {
	t.Helper()
	var cfg config.Config
	cfg.SetDefaults()
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())
	svc, err := New(context.Background(), &cfg, WithRegisterer(prometheus.NewRegistry()), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func call(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, h http.Handler, user string) string {
	t.Helper()
	rr := call(t, h, http.MethodPost, "/auth/login", "", `{"username":"`+user+`","password":"demo"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func TestServiceEndToEnd(t *testing.T) {
	h := newTestService(t, nil).Handler()

	rr := call(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	for _, path := range []string{"/ercot/current", "/ercot/history?minutes=5", "/ercot/stats", "/fleet/vehicles", "/fleet/hubs", "/economics/summary"} {
		rr := call(t, h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), path)
	}

	zoox := login(t, h, "zoox_dev")
	rr = call(t, h, http.MethodGet, "/jobs", zoox, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var jobs []model.JobView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 5)

	rr = call(t, h, http.MethodPost, "/jobs", zoox, `{"name":"Perception","model_type":"CNN","priority":"Low"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	admin := login(t, h, "admin")
	rr = call(t, h, http.MethodGet, "/jobs", admin, "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 16)
	assert.Equal(t, "Perception", jobs[0].Name)
}

func TestServiceErrors(t *testing.T) {
	h := newTestService(t, nil).Handler()

	rr := call(t, h, http.MethodGet, "/jobs", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = call(t, h, http.MethodDelete, "/ercot/current", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)

	rr = call(t, h, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServiceCORS(t *testing.T) {
	h := newTestService(t, nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/ercot/current", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ercot/current", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServiceWithoutSeed(t *testing.T) {
	h := newTestService(t, func(c *config.Config) {
		seed := false
		c.Store.SeedDemo = &seed
	}).Handler()
	rr := call(t, h, http.MethodGet, "/jobs", login(t, h, "admin"), "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestServiceSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")
	svc := newTestService(t, func(c *config.Config) {
		c.Store.Backend = "sqlite"
		c.Store.DSN = path
	})
	h := svc.Handler()
	rr := call(t, h, http.MethodGet, "/jobs", login(t, h, "waymo_ops"), "")
	var jobs []model.JobView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 5)
}

func TestServiceRunShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	svc := newTestService(t, func(c *config.Config) { c.Server.Addr = addr })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("service did not stop")
	}
}
