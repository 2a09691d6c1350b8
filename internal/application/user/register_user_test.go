package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gatehouse-io/gatehouse/internal/application/user"
	domainuser "github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// mockUserRepository is an in-memory repository for tests.
type mockUserRepository struct {
	users               map[string]*domainuser.User    // username -> user
	usersByEmail        map[string]*domainuser.User    // email -> user
	usersByExternalID   map[string]*domainuser.User    // external ID -> user
	usersByID           map[uuid.UUID]*domainuser.User // id -> user
	saveError           error
	findByUsernameError error
	findByEmailError    error
	saveCalls           int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:             make(map[string]*domainuser.User),
		usersByEmail:      make(map[string]*domainuser.User),
		usersByExternalID: make(map[string]*domainuser.User),
		usersByID:         make(map[uuid.UUID]*domainuser.User),
	}
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*domainuser.User, error) {
	if usr, ok := m.usersByID[id]; ok {
		return usr, nil
	}
	return nil, errs.ErrNotFound
}

func (m *mockUserRepository) FindByExternalID(_ context.Context, externalID string) (*domainuser.User, error) {
	if usr, ok := m.usersByExternalID[externalID]; ok {
		return usr, nil
	}
	return nil, errs.ErrNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*domainuser.User, error) {
	if m.findByUsernameError != nil {
		return nil, m.findByUsernameError
	}
	if usr, ok := m.users[username]; ok {
		return usr, nil
	}
	return nil, errs.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*domainuser.User, error) {
	if m.findByEmailError != nil {
		return nil, m.findByEmailError
	}
	if usr, ok := m.usersByEmail[email]; ok {
		return usr, nil
	}
	return nil, errs.ErrNotFound
}

func (m *mockUserRepository) Save(_ context.Context, usr *domainuser.User) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.saveCalls++
	m.users[usr.Username()] = usr
	m.usersByEmail[usr.Email()] = usr
	m.usersByExternalID[usr.ExternalID()] = usr
	m.usersByID[usr.ID()] = usr
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *mockUserRepository) List(_ context.Context, offset, limit int) ([]*domainuser.User, error) {
	all := make([]*domainuser.User, 0, len(m.usersByID))
	for _, usr := range m.usersByID {
		all = append(all, usr)
	}
	if offset >= len(all) {
		return []*domainuser.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *mockUserRepository) Count(_ context.Context) (int, error) {
	return len(m.usersByID), nil
}

func TestRegisterUserUseCase_Execute_Success(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewRegisterUserUseCase(repo)

	cmd := user.RegisterUserCommand{
		ExternalID:  "ext-123",
		Username:    "alice",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	}

	result, err := useCase.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Value == nil {
		t.Fatal("expected created user in result")
	}
	if result.Value.Username() != "alice" {
		t.Errorf("expected username 'alice', got %s", result.Value.Username())
	}
	if !result.Value.IsActive() {
		t.Error("expected new user to be active")
	}
	if repo.saveCalls != 1 {
		t.Errorf("expected exactly 1 save, got %d", repo.saveCalls)
	}
}

func TestRegisterUserUseCase_Execute_UsernameTaken(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewRegisterUserUseCase(repo)

	existing, _ := domainuser.NewUser("ext-1", "alice", "alice@example.com", "Alice")
	_ = repo.Save(context.Background(), existing)

	cmd := user.RegisterUserCommand{
		ExternalID:  "ext-2",
		Username:    "alice",
		Email:       "other@example.com",
		DisplayName: "Other",
	}

	_, err := useCase.Execute(context.Background(), cmd)
	if !errors.Is(err, user.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got: %v", err)
	}
}

func TestRegisterUserUseCase_Execute_EmailTaken(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewRegisterUserUseCase(repo)

	existing, _ := domainuser.NewUser("ext-1", "alice", "alice@example.com", "Alice")
	_ = repo.Save(context.Background(), existing)

	cmd := user.RegisterUserCommand{
		ExternalID:  "ext-2",
		Username:    "bob",
		Email:       "alice@example.com",
		DisplayName: "Bob",
	}

	_, err := useCase.Execute(context.Background(), cmd)
	if !errors.Is(err, user.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
	}
}

func TestRegisterUserUseCase_Execute_InvalidEmail(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewRegisterUserUseCase(repo)

	cmd := user.RegisterUserCommand{
		ExternalID:  "ext-1",
		Username:    "alice",
		Email:       "not-an-email",
		DisplayName: "Alice",
	}

	_, err := useCase.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected validation error for invalid email")
	}
	if repo.saveCalls != 0 {
		t.Errorf("expected no save on validation failure, got %d", repo.saveCalls)
	}
}
