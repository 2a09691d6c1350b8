package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	auditdomain "github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// AuditLogRepository stores audit entries in MongoDB.
type AuditLogRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewAuditLogRepository creates a MongoDB-backed audit repository.
func NewAuditLogRepository(collection *mongo.Collection, logger *slog.Logger) *AuditLogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogRepository{
		collection: collection,
		logger:     logger,
	}
}

// Save appends an entry. Entries are insert-only.
func (r *AuditLogRepository) Save(ctx context.Context, entry *auditdomain.Entry) error {
	if entry == nil || entry.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	_, err := r.collection.InsertOne(ctx, entryToDocument(entry))
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save audit entry",
			slog.String("entry_id", entry.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "audit entry")
}

// DeleteByIDs removes every entry in ids with one DeleteMany and
// returns how many existed.
func (r *AuditLogRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	filter := bson.M{"entry_id": bson.M{"$in": idStrings(ids)}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to batch delete audit entries",
			slog.Int("ids", len(ids)),
			slog.String("error", err.Error()),
		)
		return 0, HandleMongoError(err, "audit entries")
	}

	return result.DeletedCount, nil
}

// DeleteOlderThan removes up to limit entries created before the
// cutoff, oldest first. DeleteMany has no limit clause, so the batch
// is selected by ID first.
func (r *AuditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if limit <= 0 {
		return 0, errs.ErrInvalidInput
	}

	filter := bson.M{"created_at": bson.M{"$lt": cutoff.UTC()}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"entry_id": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return 0, HandleMongoError(err, "audit entries")
	}
	defer cursor.Close(ctx)

	var batch []string
	for cursor.Next(ctx) {
		var doc struct {
			EntryID string `bson:"entry_id"`
		}
		if decodeErr := cursor.Decode(&doc); decodeErr != nil {
			continue
		}
		batch = append(batch, doc.EntryID)
	}
	if cursorErr := cursor.Err(); cursorErr != nil {
		return 0, HandleMongoError(cursorErr, "audit entries")
	}
	if len(batch) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"entry_id": bson.M{"$in": batch}})
	if err != nil {
		return 0, HandleMongoError(err, "audit entries")
	}

	return result.DeletedCount, nil
}

// FindByTenant lists a tenant's entries matching the filter, newest
// first.
func (r *AuditLogRepository) FindByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	filter appauditlog.Filter,
	offset, limit int,
) ([]*auditdomain.Entry, error) {
	if tenantID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	return listDocuments(ctx, r.collection, entryFilter(tenantID, filter), offset, limit, documentToEntry, "audit entries")
}

// CountByTenant counts a tenant's entries matching the filter.
func (r *AuditLogRepository) CountByTenant(
	ctx context.Context,
	tenantID uuid.UUID,
	filter appauditlog.Filter,
) (int, error) {
	if tenantID.IsZero() {
		return 0, errs.ErrInvalidInput
	}

	count, err := CountFilter(ctx, r.collection, entryFilter(tenantID, filter))
	if err != nil {
		return 0, HandleMongoError(err, "audit entries")
	}
	return count, nil
}

func entryFilter(tenantID uuid.UUID, filter appauditlog.Filter) bson.M {
	query := bson.M{"tenant_id": tenantID.String()}
	if filter.Action != "" {
		query["action"] = filter.Action
	}

	createdAt := bson.M{}
	if !filter.From.IsZero() {
		createdAt["$gte"] = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		createdAt["$lte"] = filter.To.UTC()
	}
	if len(createdAt) > 0 {
		query["created_at"] = createdAt
	}

	return query
}

type entryDocument struct {
	EntryID    string            `bson:"entry_id"`
	TenantID   string            `bson:"tenant_id"`
	ActorID    string            `bson:"actor_id"`
	Action     string            `bson:"action"`
	TargetType string            `bson:"target_type,omitempty"`
	TargetID   string            `bson:"target_id,omitempty"`
	Detail     map[string]string `bson:"detail,omitempty"`
	CreatedAt  time.Time         `bson:"created_at"`
}

func entryToDocument(entry *auditdomain.Entry) entryDocument {
	return entryDocument{
		EntryID:    entry.ID().String(),
		TenantID:   entry.TenantID().String(),
		ActorID:    entry.ActorID().String(),
		Action:     entry.Action(),
		TargetType: entry.TargetType(),
		TargetID:   entry.TargetID(),
		Detail:     entry.Detail(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func documentToEntry(doc *entryDocument) (*auditdomain.Entry, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.EntryID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	tenantID, err := uuid.ParseUUID(doc.TenantID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	actorID, err := uuid.ParseUUID(doc.ActorID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return auditdomain.Reconstruct(
		id, tenantID, actorID,
		doc.Action, doc.TargetType, doc.TargetID,
		doc.Detail, doc.CreatedAt,
	), nil
}
