// Package mongodb provides MongoDB infrastructure components including
// index management.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names as constants for consistency.
const (
	CollectionUsers              = "users"
	CollectionTenants            = "tenants"
	CollectionTenantMembers      = "tenant_members"
	CollectionPermissionRequests = "permission_requests"
	CollectionAuditLogs          = "audit_logs"
)

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptionsBuilder
}

// CreateAllIndexes creates all necessary indexes for the application.
// Idempotent, safe to call on every startup.
func CreateAllIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range GetAllIndexDefinitions() {
		coll := db.Collection(idx.Collection)
		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: idx.Options,
		}

		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on collection %s: %w", idx.Collection, err)
		}
	}

	return nil
}

// GetAllIndexDefinitions returns all index definitions for all
// collections.
func GetAllIndexDefinitions() []IndexDefinition {
	var indexes []IndexDefinition

	indexes = append(indexes, GetUserIndexes()...)
	indexes = append(indexes, GetTenantIndexes()...)
	indexes = append(indexes, GetMemberIndexes()...)
	indexes = append(indexes, GetPermissionRequestIndexes()...)
	indexes = append(indexes, GetAuditLogIndexes()...)

	return indexes
}

// GetUserIndexes returns index definitions for the users collection.
func GetUserIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_id_unique"),
		},
		{
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "username", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_username_unique"),
		},
		{
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_email_unique"),
		},
		{
			// Provider subject lookup during login.
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "external_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_external_id_unique"),
		},
	}
}

// GetTenantIndexes returns index definitions for the tenants collection.
func GetTenantIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: CollectionTenants,
			Keys:       bson.D{{Key: "tenant_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_tenants_id_unique"),
		},
		{
			Collection: CollectionTenants,
			Keys:       bson.D{{Key: "slug", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_tenants_slug_unique"),
		},
	}
}

// GetMemberIndexes returns index definitions for tenant memberships.
func GetMemberIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// One membership per tenant+user pair.
			Collection: CollectionTenantMembers,
			Keys:       bson.D{{Key: "tenant_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_members_tenant_user_unique"),
		},
		{
			Collection: CollectionTenantMembers,
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index().SetName("idx_members_user"),
		},
	}
}

// GetPermissionRequestIndexes returns index definitions for permission
// requests.
func GetPermissionRequestIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: CollectionPermissionRequests,
			Keys:       bson.D{{Key: "request_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_requests_id_unique"),
		},
		{
			// Tenant listings filtered by status, newest first.
			Collection: CollectionPermissionRequests,
			Keys:       bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options:    options.Index().SetName("idx_requests_tenant_status_time"),
		},
	}
}

// GetAuditLogIndexes returns index definitions for the audit trail.
// No TTL index: retention is the worker's job so deletions are
// observable and metered.
func GetAuditLogIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: CollectionAuditLogs,
			Keys:       bson.D{{Key: "entry_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_audit_id_unique"),
		},
		{
			Collection: CollectionAuditLogs,
			Keys:       bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options:    options.Index().SetName("idx_audit_tenant_time"),
		},
		{
			// Retention purge scans by age.
			Collection: CollectionAuditLogs,
			Keys:       bson.D{{Key: "created_at", Value: 1}},
			Options:    options.Index().SetName("idx_audit_time"),
		},
	}
}
