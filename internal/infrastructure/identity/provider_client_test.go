package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/internal/infrastructure/identity"
)

func TestProviderClient_ExchangeCode(t *testing.T) {
	t.Run("successfully exchanges code for tokens", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, "/protocol/openid-connect/token")
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
			assert.Equal(t, "test-code", r.Form.Get("code"))
			assert.Equal(t, "https://app.example.com/callback", r.Form.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "test-access-token",
				"refresh_token": "test-refresh-token",
				"expires_in":    3600,
				"token_type":    "Bearer",
			})
		}))
		defer server.Close()

		client := identity.NewProviderClient(identity.ProviderClientConfig{
			IssuerURL:    server.URL,
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})

		tokens, err := client.ExchangeCode(context.Background(), "test-code", "https://app.example.com/callback")
		require.NoError(t, err)
		assert.Equal(t, "test-access-token", tokens.AccessToken)
		assert.Equal(t, "test-refresh-token", tokens.RefreshToken)
		assert.Equal(t, 3600, tokens.ExpiresIn)
	})

	t.Run("returns error on provider rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer server.Close()

		client := identity.NewProviderClient(identity.ProviderClientConfig{IssuerURL: server.URL})

		_, err := client.ExchangeCode(context.Background(), "bad-code", "https://app.example.com/callback")
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrTokenExchangeFailed)
	})
}

func TestProviderClient_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "new-access",
			"refresh_token": "new-refresh",
			"expires_in":    3600,
		})
	}))
	defer server.Close()

	client := identity.NewProviderClient(identity.ProviderClientConfig{IssuerURL: server.URL})

	tokens, err := client.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
}

func TestProviderClient_RevokeToken(t *testing.T) {
	t.Run("posts the token to the revoke endpoint", func(t *testing.T) {
		var revokedToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/protocol/openid-connect/revoke")
			require.NoError(t, r.ParseForm())
			revokedToken = r.Form.Get("token")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := identity.NewProviderClient(identity.ProviderClientConfig{IssuerURL: server.URL})

		require.NoError(t, client.RevokeToken(context.Background(), "refresh-1"))
		assert.Equal(t, "refresh-1", revokedToken)
	})

	t.Run("returns error on server failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := identity.NewProviderClient(identity.ProviderClientConfig{IssuerURL: server.URL})

		err := client.RevokeToken(context.Background(), "refresh-1")
		assert.ErrorIs(t, err, identity.ErrTokenRevokeFailed)
	})
}

func TestProviderClient_GetUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/protocol/openid-connect/userinfo")
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":                "sub-1",
			"preferred_username": "alice",
			"email":              "alice@example.com",
			"name":               "Alice",
		})
	}))
	defer server.Close()

	client := identity.NewProviderClient(identity.ProviderClientConfig{IssuerURL: server.URL})

	info, err := client.GetUserInfo(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", info.Subject)
	assert.Equal(t, "alice", info.PreferredUsername)
	assert.Equal(t, "alice@example.com", info.Email)
}

func TestProviderClient_AuthorizationURL(t *testing.T) {
	client := identity.NewProviderClient(identity.ProviderClientConfig{
		IssuerURL: "https://id.example.com/realms/main",
		ClientID:  "gatehouse",
	})

	authURL := client.AuthorizationURL("https://app.example.com/callback", "state-123")
	assert.Contains(t, authURL, "https://id.example.com/realms/main/protocol/openid-connect/auth?")
	assert.Contains(t, authURL, "client_id=gatehouse")
	assert.Contains(t, authURL, "state=state-123")
	assert.Contains(t, authURL, "response_type=code")
}
