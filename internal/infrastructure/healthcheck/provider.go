package healthcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

const defaultProviderTimeout = 5 * time.Second

// ProviderChecker reports reachability of the external identity
// provider by fetching its OIDC discovery document.
type ProviderChecker struct {
	issuerURL  string
	httpClient *http.Client
}

// NewProviderChecker creates a health checker for the identity provider
// at the given issuer URL.
func NewProviderChecker(issuerURL string, httpClient *http.Client) *ProviderChecker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultProviderTimeout}
	}

	return &ProviderChecker{
		issuerURL:  strings.TrimSuffix(issuerURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the component name.
func (c *ProviderChecker) Name() string {
	return "identity_provider"
}

// Check requests the provider discovery document and reports the
// result.
func (c *ProviderChecker) Check(ctx context.Context) appcore.HealthStatus {
	checkedAt := time.Now()

	wellKnownURL := c.issuerURL + "/.well-known/openid-configuration"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnownURL, nil)
	if err != nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   err.Error(),
			CheckedAt: checkedAt,
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   err.Error(),
			CheckedAt: checkedAt,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return appcore.HealthStatus{
			Healthy:   false,
			Message:   fmt.Sprintf("discovery endpoint returned status %d", resp.StatusCode),
			CheckedAt: checkedAt,
		}
	}

	return appcore.HealthStatus{
		Healthy:   true,
		CheckedAt: checkedAt,
	}
}
