package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	tenantdomain "github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// TenantRepository stores tenants and their memberships in MongoDB.
// Memberships live in their own collection keyed by tenant+user.
type TenantRepository struct {
	tenants *mongo.Collection
	members *mongo.Collection
	logger  *slog.Logger
}

// NewTenantRepository creates a MongoDB-backed tenant repository.
func NewTenantRepository(tenants, members *mongo.Collection, logger *slog.Logger) *TenantRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantRepository{
		tenants: tenants,
		members: members,
		logger:  logger,
	}
}

// FindByID finds a tenant by ID.
func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenantdomain.Tenant, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"tenant_id": id.String()}
	var doc tenantDocument
	if err := r.tenants.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, HandleMongoError(err, "tenant")
	}

	return documentToTenant(&doc)
}

// FindBySlug finds a tenant by its URL slug.
func (r *TenantRepository) FindBySlug(ctx context.Context, slug string) (*tenantdomain.Tenant, error) {
	if slug == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"slug": slug}
	var doc tenantDocument
	if err := r.tenants.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, HandleMongoError(err, "tenant")
	}

	return documentToTenant(&doc)
}

// Save upserts a tenant.
func (r *TenantRepository) Save(ctx context.Context, t *tenantdomain.Tenant) error {
	if t == nil || t.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := tenantToDocument(t)
	filter := bson.M{"tenant_id": t.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.tenants.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save tenant",
			slog.String("tenant_id", t.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "tenant")
}

// List returns tenants page by page, newest first.
func (r *TenantRepository) List(ctx context.Context, offset, limit int) ([]*tenantdomain.Tenant, error) {
	return listDocuments(ctx, r.tenants, bson.M{}, offset, limit, documentToTenant, "tenants")
}

// FindMember returns the membership of a user in a tenant.
func (r *TenantRepository) FindMember(ctx context.Context, tenantID, userID uuid.UUID) (*tenantdomain.Member, error) {
	if tenantID.IsZero() || userID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{
		"tenant_id": tenantID.String(),
		"user_id":   userID.String(),
	}
	var doc memberDocument
	if err := r.members.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, HandleMongoError(err, "tenant member")
	}

	return documentToMember(&doc)
}

// SaveMember upserts a membership.
func (r *TenantRepository) SaveMember(ctx context.Context, m *tenantdomain.Member) error {
	if m == nil {
		return errs.ErrInvalidInput
	}

	doc := memberToDocument(m)
	filter := bson.M{
		"tenant_id": m.TenantID().String(),
		"user_id":   m.UserID().String(),
	}
	update := bson.M{"$set": doc}

	_, err := r.members.UpdateOne(ctx, filter, update, UpsertOptions())
	return HandleMongoError(err, "tenant member")
}

// RemoveMember deletes a membership.
func (r *TenantRepository) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	filter := bson.M{
		"tenant_id": tenantID.String(),
		"user_id":   userID.String(),
	}
	result, err := r.members.DeleteOne(ctx, filter)
	if err != nil {
		return HandleMongoError(err, "tenant member")
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListMembers returns a tenant's memberships.
func (r *TenantRepository) ListMembers(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*tenantdomain.Member, error) {
	filter := bson.M{"tenant_id": tenantID.String()}
	return listDocuments(ctx, r.members, filter, offset, limit, documentToMember, "tenant members")
}

type tenantDocument struct {
	TenantID  string    `bson:"tenant_id"`
	Name      string    `bson:"name"`
	Slug      string    `bson:"slug"`
	OwnerID   string    `bson:"owner_id"`
	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func tenantToDocument(t *tenantdomain.Tenant) tenantDocument {
	return tenantDocument{
		TenantID:  t.ID().String(),
		Name:      t.Name(),
		Slug:      t.Slug(),
		OwnerID:   t.OwnerID().String(),
		IsActive:  t.IsActive(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func documentToTenant(doc *tenantDocument) (*tenantdomain.Tenant, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.TenantID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	ownerID, err := uuid.ParseUUID(doc.OwnerID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return tenantdomain.Reconstruct(
		id,
		doc.Name,
		doc.Slug,
		ownerID,
		doc.IsActive,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}

type memberDocument struct {
	TenantID  string    `bson:"tenant_id"`
	UserID    string    `bson:"user_id"`
	Role      string    `bson:"role"`
	JoinedAt  time.Time `bson:"joined_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func memberToDocument(m *tenantdomain.Member) memberDocument {
	return memberDocument{
		TenantID:  m.TenantID().String(),
		UserID:    m.UserID().String(),
		Role:      string(m.Role()),
		JoinedAt:  m.JoinedAt(),
		CreatedAt: m.JoinedAt(),
	}
}

func documentToMember(doc *memberDocument) (*tenantdomain.Member, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	tenantID, err := uuid.ParseUUID(doc.TenantID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	userID, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	role := tenantdomain.Role(doc.Role)
	if !tenantdomain.ValidRole(role) {
		return nil, errs.ErrInvalidInput
	}

	return tenantdomain.ReconstructMember(tenantID, userID, role, doc.JoinedAt), nil
}
