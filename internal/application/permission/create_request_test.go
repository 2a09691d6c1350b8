package permission_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	apppermission "github.com/gatehouse-io/gatehouse/internal/application/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

func TestCreateRequestUseCase_Execute_Success(t *testing.T) {
	repo := newMockRequestRepository()
	members := newMockMemberRepository()
	useCase := apppermission.NewCreateRequestUseCase(repo, members)

	tenantID := uuid.NewUUID()
	requesterID := uuid.NewUUID()
	members.addMember(tenantID, requesterID, tenant.RoleMember)

	result, err := useCase.Execute(context.Background(), apppermission.CreateRequestCommand{
		TenantID:      tenantID,
		RequesterID:   requesterID,
		Permission:    "reports:export",
		Justification: "monthly board report",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Value.Status() != permission.StatusPending {
		t.Errorf("expected pending status, got %s", result.Value.Status())
	}
	if len(repo.requests) != 1 {
		t.Errorf("expected request to be saved, have %d", len(repo.requests))
	}
}

func TestCreateRequestUseCase_Execute_NonMember(t *testing.T) {
	useCase := apppermission.NewCreateRequestUseCase(newMockRequestRepository(), newMockMemberRepository())

	_, err := useCase.Execute(context.Background(), apppermission.CreateRequestCommand{
		TenantID:    uuid.NewUUID(),
		RequesterID: uuid.NewUUID(),
		Permission:  "reports:export",
	})
	if !errors.Is(err, apppermission.ErrNotTenantMember) {
		t.Errorf("expected ErrNotTenantMember, got: %v", err)
	}
}

func TestCreateRequestUseCase_Execute_JustificationTooLong(t *testing.T) {
	repo := newMockRequestRepository()
	members := newMockMemberRepository()
	useCase := apppermission.NewCreateRequestUseCase(repo, members)

	tenantID := uuid.NewUUID()
	requesterID := uuid.NewUUID()
	members.addMember(tenantID, requesterID, tenant.RoleMember)

	_, err := useCase.Execute(context.Background(), apppermission.CreateRequestCommand{
		TenantID:      tenantID,
		RequesterID:   requesterID,
		Permission:    "reports:export",
		Justification: strings.Repeat("x", permission.MaxJustificationLength+1),
	})
	if err == nil {
		t.Fatal("expected validation error for oversized justification")
	}
	if len(repo.requests) != 0 {
		t.Error("expected nothing saved on validation failure")
	}
}
