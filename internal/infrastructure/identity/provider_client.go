// Package identity talks to the external OIDC identity provider.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	appauth "github.com/gatehouse-io/gatehouse/internal/application/auth"
)

// Provider client errors.
var (
	ErrTokenExchangeFailed = errors.New("failed to exchange authorization code")
	ErrTokenRefreshFailed  = errors.New("failed to refresh token")
	ErrTokenRevokeFailed   = errors.New("failed to revoke token")
	ErrUserInfoFailed      = errors.New("failed to get user info")
	ErrInvalidResponse     = errors.New("invalid response from identity provider")
)

const defaultHTTPTimeout = 30 * time.Second

// tokenResponse is the provider's OAuth2 token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	IDToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// userInfoResponse is the provider's userinfo payload.
type userInfoResponse struct {
	Sub               string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
}

// ProviderClientConfig contains configuration for ProviderClient.
type ProviderClientConfig struct {
	// IssuerURL is the provider base URL, e.g.
	// https://id.example.com/realms/main.
	IssuerURL    string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// ProviderClient implements the auth application's provider port
// against a standard OIDC provider.
type ProviderClient struct {
	issuerURL    string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewProviderClient creates a new OIDC provider client.
func NewProviderClient(cfg ProviderClientConfig) *ProviderClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProviderClient{
		issuerURL:    strings.TrimSuffix(cfg.IssuerURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		logger:       logger,
	}
}

func (c *ProviderClient) tokenEndpoint() string {
	return c.issuerURL + "/protocol/openid-connect/token"
}

func (c *ProviderClient) userInfoEndpoint() string {
	return c.issuerURL + "/protocol/openid-connect/userinfo"
}

func (c *ProviderClient) revokeEndpoint() string {
	return c.issuerURL + "/protocol/openid-connect/revoke"
}

// ExchangeCode trades an authorization code for a token set.
func (c *ProviderClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*appauth.TokenSet, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", redirectURI)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	tokens, err := c.postTokenRequest(ctx, data, ErrTokenExchangeFailed)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// RefreshToken rotates a token set using a refresh token.
func (c *ProviderClient) RefreshToken(ctx context.Context, refreshToken string) (*appauth.TokenSet, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	return c.postTokenRequest(ctx, data, ErrTokenRefreshFailed)
}

func (c *ProviderClient) postTokenRequest(
	ctx context.Context,
	data url.Values,
	opErr error,
) (*appauth.TokenSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint(), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", opErr, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", opErr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "token request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: status %d", opErr, resp.StatusCode)
	}

	var tokenResp tokenResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&tokenResp); decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, decodeErr)
	}

	return &appauth.TokenSet{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

// RevokeToken revokes a refresh token at the provider. Revocation is
// idempotent on the provider side.
func (c *ProviderClient) RevokeToken(ctx context.Context, refreshToken string) error {
	data := url.Values{}
	data.Set("token", refreshToken)
	data.Set("token_type_hint", "refresh_token")
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeEndpoint(), strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenRevokeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenRevokeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "token revocation failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("%w: status %d", ErrTokenRevokeFailed, resp.StatusCode)
	}

	return nil
}

// GetUserInfo fetches the profile behind an access token.
func (c *ProviderClient) GetUserInfo(ctx context.Context, accessToken string) (*appauth.UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfoFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfoFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "get user info failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: status %d", ErrUserInfoFailed, resp.StatusCode)
	}

	var info userInfoResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&info); decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, decodeErr)
	}

	return &appauth.UserInfo{
		Subject:           info.Sub,
		PreferredUsername: info.PreferredUsername,
		Email:             info.Email,
		Name:              info.Name,
	}, nil
}

// AuthorizationURL builds the provider's login URL for the frontend.
func (c *ProviderClient) AuthorizationURL(redirectURI, state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid profile email")
	params.Set("state", state)

	return c.issuerURL + "/protocol/openid-connect/auth?" + params.Encode()
}
