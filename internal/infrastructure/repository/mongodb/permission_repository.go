package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	permissiondomain "github.com/gatehouse-io/gatehouse/internal/domain/permission"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// PermissionRepository stores permission requests in MongoDB.
type PermissionRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewPermissionRepository creates a MongoDB-backed request repository.
func NewPermissionRepository(collection *mongo.Collection, logger *slog.Logger) *PermissionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByID finds a request by ID.
func (r *PermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*permissiondomain.Request, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"request_id": id.String()}
	var doc requestDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, HandleMongoError(err, "permission request")
	}

	return documentToRequest(&doc)
}

// FindByTenant lists a tenant's requests, optionally filtered by
// status, newest first.
func (r *PermissionRepository) FindByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	status permissiondomain.Status,
	offset, limit int,
) ([]*permissiondomain.Request, error) {
	if tenantID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"tenant_id": tenantID.String()}
	if status != "" {
		filter["status"] = string(status)
	}

	return listDocuments(ctx, r.collection, filter, offset, limit, documentToRequest, "permission requests")
}

// CountByTenant counts a tenant's requests under the same filter.
func (r *PermissionRepository) CountByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	status permissiondomain.Status,
) (int, error) {
	if tenantID.IsZero() {
		return 0, errs.ErrInvalidInput
	}

	filter := bson.M{"tenant_id": tenantID.String()}
	if status != "" {
		filter["status"] = string(status)
	}

	count, err := CountFilter(ctx, r.collection, filter)
	if err != nil {
		return 0, HandleMongoError(err, "permission requests")
	}
	return count, nil
}

// Save upserts a request.
func (r *PermissionRepository) Save(ctx context.Context, req *permissiondomain.Request) error {
	if req == nil || req.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := requestToDocument(req)
	filter := bson.M{"request_id": req.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save permission request",
			slog.String("request_id", req.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "permission request")
}

// UpdateStatusByIDs moves every pending request in ids to the given
// status in one UpdateMany and returns the matched count. Requests
// already reviewed are left untouched by the pending-only filter.
func (r *PermissionRepository) UpdateStatusByIDs(
	ctx context.Context,
	ids []uuid.UUID,
	status permissiondomain.Status,
	reviewerID uuid.UUID,
	note string,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if !permissiondomain.ValidStatus(status) || reviewerID.IsZero() {
		return 0, errs.ErrInvalidInput
	}

	filter := bson.M{
		"request_id": bson.M{"$in": idStrings(ids)},
		"status":     string(permissiondomain.StatusPending),
	}
	update := bson.M{"$set": bson.M{
		"status":      string(status),
		"reviewer_id": reviewerID.String(),
		"review_note": note,
		"reviewed_at": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to bulk update permission requests",
			slog.Int("ids", len(ids)),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
		return 0, HandleMongoError(err, "permission requests")
	}

	return result.ModifiedCount, nil
}

type requestDocument struct {
	RequestID     string     `bson:"request_id"`
	TenantID      string     `bson:"tenant_id"`
	RequesterID   string     `bson:"requester_id"`
	Permission    string     `bson:"permission"`
	Justification string     `bson:"justification"`
	Status        string     `bson:"status"`
	ReviewerID    string     `bson:"reviewer_id,omitempty"`
	ReviewNote    string     `bson:"review_note,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
	ReviewedAt    *time.Time `bson:"reviewed_at,omitempty"`
}

func requestToDocument(req *permissiondomain.Request) requestDocument {
	doc := requestDocument{
		RequestID:     req.ID().String(),
		TenantID:      req.TenantID().String(),
		RequesterID:   req.RequesterID().String(),
		Permission:    req.Permission(),
		Justification: req.Justification(),
		Status:        string(req.Status()),
		ReviewNote:    req.ReviewNote(),
		CreatedAt:     req.CreatedAt(),
	}
	if !req.ReviewerID().IsZero() {
		doc.ReviewerID = req.ReviewerID().String()
	}
	if !req.ReviewedAt().IsZero() {
		reviewedAt := req.ReviewedAt()
		doc.ReviewedAt = &reviewedAt
	}
	return doc
}

func documentToRequest(doc *requestDocument) (*permissiondomain.Request, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.RequestID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	tenantID, err := uuid.ParseUUID(doc.TenantID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	requesterID, err := uuid.ParseUUID(doc.RequesterID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	var reviewerID uuid.UUID
	if doc.ReviewerID != "" {
		reviewerID, err = uuid.ParseUUID(doc.ReviewerID)
		if err != nil {
			return nil, errs.ErrInvalidInput
		}
	}

	var reviewedAt time.Time
	if doc.ReviewedAt != nil {
		reviewedAt = *doc.ReviewedAt
	}

	return permissiondomain.Reconstruct(
		id, tenantID, requesterID,
		doc.Permission, doc.Justification,
		permissiondomain.Status(doc.Status),
		reviewerID, doc.ReviewNote,
		doc.CreatedAt, reviewedAt,
	), nil
}
