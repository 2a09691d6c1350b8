package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	userdomain "github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// UserRepository implements the user application repository on MongoDB.
type UserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// UserRepoOption configures UserRepository.
type UserRepoOption func(*UserRepository)

// WithUserRepoLogger sets the repository logger.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *UserRepository) {
		r.logger = logger
	}
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(collection *mongo.Collection, opts ...UserRepoOption) *UserRepository {
	r := &UserRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByID finds a user by internal ID.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": id.String()}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by ID",
				slog.String("user_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// FindByExternalID finds a user by the identity provider's subject.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*userdomain.User, error) {
	if externalID == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"external_id": externalID}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by external ID",
				slog.String("external_id", externalID),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	if email == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"email": email}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	if username == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"username": username}
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// Save upserts a user.
func (r *UserRepository) Save(ctx context.Context, usr *userdomain.User) error {
	if usr == nil || usr.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := userToDocument(usr)
	filter := bson.M{"user_id": usr.ID().String()}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save user",
			slog.String("user_id", usr.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "user")
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": id.String()}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return HandleMongoError(err, "user")
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List returns users page by page, newest first.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*userdomain.User, error) {
	return listDocuments(ctx, r.collection, bson.M{}, offset, limit, documentToUser, "users")
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	count, err := CountFilter(ctx, r.collection, bson.M{})
	if err != nil {
		return 0, HandleMongoError(err, "users")
	}
	return count, nil
}

type userDocument struct {
	UserID        string    `bson:"user_id"`
	ExternalID    string    `bson:"external_id"`
	Username      string    `bson:"username"`
	Email         string    `bson:"email"`
	DisplayName   string    `bson:"display_name"`
	IsSystemAdmin bool      `bson:"is_system_admin"`
	IsActive      bool      `bson:"is_active"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func userToDocument(usr *userdomain.User) userDocument {
	return userDocument{
		UserID:        usr.ID().String(),
		ExternalID:    usr.ExternalID(),
		Username:      usr.Username(),
		Email:         usr.Email(),
		DisplayName:   usr.DisplayName(),
		IsSystemAdmin: usr.IsSystemAdmin(),
		IsActive:      usr.IsActive(),
		CreatedAt:     usr.CreatedAt(),
		UpdatedAt:     usr.UpdatedAt(),
	}
}

func documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		id,
		doc.ExternalID,
		doc.Username,
		doc.Email,
		doc.DisplayName,
		doc.IsSystemAdmin,
		doc.IsActive,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
