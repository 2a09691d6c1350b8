package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gatehouse-io/gatehouse/internal/application/user"
	domainuser "github.com/gatehouse-io/gatehouse/internal/domain/user"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfileUseCase_Execute_Success(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewUpdateProfileUseCase(repo)

	existing, _ := domainuser.NewUser("ext-1", "alice", "alice@example.com", "Alice")
	_ = repo.Save(context.Background(), existing)

	result, err := useCase.Execute(context.Background(), user.UpdateProfileCommand{
		UserID:      existing.ID(),
		DisplayName: strPtr("Alice Cooper"),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Value.DisplayName() != "Alice Cooper" {
		t.Errorf("expected updated display name, got %s", result.Value.DisplayName())
	}
}

func TestUpdateProfileUseCase_Execute_EmailTakenByOther(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewUpdateProfileUseCase(repo)

	alice, _ := domainuser.NewUser("ext-1", "alice", "alice@example.com", "Alice")
	bob, _ := domainuser.NewUser("ext-2", "bob", "bob@example.com", "Bob")
	_ = repo.Save(context.Background(), alice)
	_ = repo.Save(context.Background(), bob)

	_, err := useCase.Execute(context.Background(), user.UpdateProfileCommand{
		UserID: bob.ID(),
		Email:  strPtr("alice@example.com"),
	})
	if !errors.Is(err, user.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
	}
}

func TestUpdateProfileUseCase_Execute_NoChanges(t *testing.T) {
	repo := newMockUserRepository()
	useCase := user.NewUpdateProfileUseCase(repo)

	existing, _ := domainuser.NewUser("ext-1", "alice", "alice@example.com", "Alice")
	_ = repo.Save(context.Background(), existing)

	_, err := useCase.Execute(context.Background(), user.UpdateProfileCommand{
		UserID: existing.ID(),
	})
	if err == nil {
		t.Fatal("expected error when no fields are provided")
	}
}
