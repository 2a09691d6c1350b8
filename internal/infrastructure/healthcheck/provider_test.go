package healthcheck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatehouse-io/gatehouse/internal/infrastructure/healthcheck"
)

func TestProviderChecker_Check(t *testing.T) {
	t.Run("healthy when discovery document is served", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/.well-known/openid-configuration", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"issuer":"test"}`))
		}))
		defer server.Close()

		checker := healthcheck.NewProviderChecker(server.URL, nil)
		status := checker.Check(context.Background())

		assert.True(t, status.Healthy)
		assert.False(t, status.CheckedAt.IsZero())
	})

	t.Run("unhealthy on provider error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		checker := healthcheck.NewProviderChecker(server.URL, nil)
		status := checker.Check(context.Background())

		assert.False(t, status.Healthy)
		assert.Contains(t, status.Message, "502")
	})

	t.Run("unhealthy when provider is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		checker := healthcheck.NewProviderChecker(server.URL, nil)
		status := checker.Check(context.Background())

		assert.False(t, status.Healthy)
		assert.NotEmpty(t, status.Message)
	})
}

func TestProviderChecker_Name(t *testing.T) {
	checker := healthcheck.NewProviderChecker("https://id.example.com", nil)
	assert.Equal(t, "identity_provider", checker.Name())
}
