package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/application/auth"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	domainuser "github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// mockTokenStore is an in-memory token store for tests.
type mockTokenStore struct {
	tokens      map[string]uuid.UUID
	revokeError error
	storeError  error
	revokeCalls int
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]uuid.UUID)}
}

func (m *mockTokenStore) StoreRefreshToken(
	_ context.Context,
	refreshToken string,
	userID uuid.UUID,
	_ time.Duration,
) error {
	if m.storeError != nil {
		return m.storeError
	}
	m.tokens[refreshToken] = userID
	return nil
}

func (m *mockTokenStore) LookupRefreshToken(_ context.Context, refreshToken string) (uuid.UUID, error) {
	userID, ok := m.tokens[refreshToken]
	if !ok {
		return "", errs.ErrNotFound
	}
	return userID, nil
}

func (m *mockTokenStore) RevokeRefreshToken(_ context.Context, refreshToken string) (bool, error) {
	m.revokeCalls++
	if m.revokeError != nil {
		return false, m.revokeError
	}
	_, ok := m.tokens[refreshToken]
	delete(m.tokens, refreshToken)
	return ok, nil
}

func (m *mockTokenStore) RevokeAllForUser(_ context.Context, userID uuid.UUID) (int, error) {
	removed := 0
	for token, owner := range m.tokens {
		if owner == userID {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed, nil
}

// mockProvider is an in-memory identity provider for tests.
type mockProvider struct {
	tokensByCode  map[string]*auth.TokenSet
	infoByAccess  map[string]*auth.UserInfo
	refreshedSet  *auth.TokenSet
	refreshError  error
	revokeError   error
	revokedTokens []string
	userInfoError error
	exchangeCalls int
	userInfoCalls int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		tokensByCode: make(map[string]*auth.TokenSet),
		infoByAccess: make(map[string]*auth.UserInfo),
	}
}

func (m *mockProvider) ExchangeCode(_ context.Context, code, _ string) (*auth.TokenSet, error) {
	m.exchangeCalls++
	tokens, ok := m.tokensByCode[code]
	if !ok {
		return nil, errors.New("invalid code")
	}
	return tokens, nil
}

func (m *mockProvider) RefreshToken(_ context.Context, _ string) (*auth.TokenSet, error) {
	if m.refreshError != nil {
		return nil, m.refreshError
	}
	return m.refreshedSet, nil
}

func (m *mockProvider) RevokeToken(_ context.Context, refreshToken string) error {
	if m.revokeError != nil {
		return m.revokeError
	}
	m.revokedTokens = append(m.revokedTokens, refreshToken)
	return nil
}

func (m *mockProvider) GetUserInfo(_ context.Context, accessToken string) (*auth.UserInfo, error) {
	m.userInfoCalls++
	if m.userInfoError != nil {
		return nil, m.userInfoError
	}
	info, ok := m.infoByAccess[accessToken]
	if !ok {
		return nil, errors.New("unknown access token")
	}
	return info, nil
}

// mockAuthUserRepo is the minimal user repository login needs.
type mockAuthUserRepo struct {
	byExternalID map[string]*domainuser.User
	saveCalls    int
}

func newMockAuthUserRepo() *mockAuthUserRepo {
	return &mockAuthUserRepo{byExternalID: make(map[string]*domainuser.User)}
}

func (m *mockAuthUserRepo) FindByExternalID(_ context.Context, externalID string) (*domainuser.User, error) {
	usr, ok := m.byExternalID[externalID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return usr, nil
}

func (m *mockAuthUserRepo) Save(_ context.Context, usr *domainuser.User) error {
	m.saveCalls++
	m.byExternalID[usr.ExternalID()] = usr
	return nil
}

func TestLogoutUseCase_Execute_Success(t *testing.T) {
	store := newMockTokenStore()
	provider := newMockProvider()
	useCase := auth.NewLogoutUseCase(store, provider)

	userID := uuid.NewUUID()
	_ = store.StoreRefreshToken(context.Background(), "token-1", userID, time.Hour)

	result, err := useCase.Execute(context.Background(), auth.LogoutCommand{
		RefreshToken: "token-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !result.Success {
		t.Errorf("expected successful logout, got failure: %s", result.FailureReason)
	}
	if len(provider.revokedTokens) != 1 || provider.revokedTokens[0] != "token-1" {
		t.Errorf("expected provider-side revocation of token-1, got %v", provider.revokedTokens)
	}
}

func TestLogoutUseCase_Execute_TokenMissing(t *testing.T) {
	store := newMockTokenStore()
	useCase := auth.NewLogoutUseCase(store, newMockProvider())

	result, err := useCase.Execute(context.Background(), auth.LogoutCommand{
		RefreshToken: "never-issued",
	})
	if err != nil {
		t.Fatalf("expected no error for missing token, got: %v", err)
	}
	if result.Success {
		t.Fatal("expected failed outcome for missing token")
	}
	if result.FailureReason != "Token not found or already revoked" {
		t.Errorf("unexpected failure reason: %q", result.FailureReason)
	}
}

func TestLogoutUseCase_Execute_SecondLogoutFails(t *testing.T) {
	store := newMockTokenStore()
	useCase := auth.NewLogoutUseCase(store, newMockProvider())

	userID := uuid.NewUUID()
	_ = store.StoreRefreshToken(context.Background(), "token-1", userID, time.Hour)

	first, err := useCase.Execute(context.Background(), auth.LogoutCommand{RefreshToken: "token-1"})
	if err != nil || !first.Success {
		t.Fatalf("expected first logout to succeed, got result=%+v err=%v", first, err)
	}

	second, err := useCase.Execute(context.Background(), auth.LogoutCommand{RefreshToken: "token-1"})
	if err != nil {
		t.Fatalf("expected no error on second logout, got: %v", err)
	}
	if second.Success {
		t.Fatal("expected second logout to fail")
	}
	if second.FailureReason != "Token not found or already revoked" {
		t.Errorf("unexpected failure reason: %q", second.FailureReason)
	}
}

func TestLogoutUseCase_Execute_StoreError(t *testing.T) {
	store := newMockTokenStore()
	store.revokeError = errors.New("redis: connection refused")
	useCase := auth.NewLogoutUseCase(store, newMockProvider())

	_, err := useCase.Execute(context.Background(), auth.LogoutCommand{RefreshToken: "token-1"})
	if err == nil {
		t.Fatal("expected store failure to surface as error")
	}
}

func TestLogoutUseCase_Execute_EmptyToken(t *testing.T) {
	useCase := auth.NewLogoutUseCase(newMockTokenStore(), newMockProvider())

	_, err := useCase.Execute(context.Background(), auth.LogoutCommand{})
	if err == nil {
		t.Fatal("expected validation error for empty token")
	}
}

func TestLogoutUseCase_Execute_ProviderFailureIgnored(t *testing.T) {
	store := newMockTokenStore()
	provider := newMockProvider()
	provider.revokeError = errors.New("provider unavailable")
	useCase := auth.NewLogoutUseCase(store, provider)

	userID := uuid.NewUUID()
	_ = store.StoreRefreshToken(context.Background(), "token-1", userID, time.Hour)

	result, err := useCase.Execute(context.Background(), auth.LogoutCommand{RefreshToken: "token-1"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !result.Success {
		t.Error("expected logout to succeed despite provider failure")
	}
}
