// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	appauth "github.com/gatehouse-io/gatehouse/internal/application/auth"
	apphealth "github.com/gatehouse-io/gatehouse/internal/application/health"
	apppermission "github.com/gatehouse-io/gatehouse/internal/application/permission"
	appuser "github.com/gatehouse-io/gatehouse/internal/application/user"
	"github.com/gatehouse-io/gatehouse/internal/config"
	"github.com/gatehouse-io/gatehouse/internal/domain/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/domain/errs"
	"github.com/gatehouse-io/gatehouse/internal/domain/tenant"
	"github.com/gatehouse-io/gatehouse/internal/domain/user"
	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
	httphandler "github.com/gatehouse-io/gatehouse/internal/handler/http"
	authinfra "github.com/gatehouse-io/gatehouse/internal/infrastructure/auth"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/healthcheck"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/httpserver"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/identity"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/metrics"
	mongodbinfra "github.com/gatehouse-io/gatehouse/internal/infrastructure/mongodb"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/repository/mongodb"
	"github.com/gatehouse-io/gatehouse/internal/middleware"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

// Container holds all application dependencies and manages their lifecycle.
// It implements httpserver.HealthChecker for unified health endpoint support.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	MongoDB     *mongo.Client
	MongoDBName string
	Redis       *redis.Client
	TokenStore  *authinfra.TokenStore
	Provider    *identity.ProviderClient

	// Repositories
	UserRepo       *mongodb.UserRepository
	TenantRepo     *mongodb.TenantRepository
	PermissionRepo *mongodb.PermissionRepository
	AuditLogRepo   *mongodb.AuditLogRepository

	// Auth use cases
	LoginUC   *appauth.LoginUseCase
	LogoutUC  *appauth.LogoutUseCase
	RefreshUC *appauth.RefreshTokenUseCase

	// User use cases
	RegisterUserUC  *appuser.RegisterUserUseCase
	GetUserUC       *appuser.GetUserUseCase
	ListUsersUC     *appuser.ListUsersUseCase
	GetByUsernameUC *appuser.GetUserByUsernameUseCase
	UpdateProfileUC *appuser.UpdateProfileUseCase
	CheckEmailUC    *appuser.CheckEmailExistsUseCase
	PromoteUC       *appuser.PromoteToAdminUseCase
	DeactivateUC    *appuser.DeactivateUserUseCase

	// Permission use cases
	CreateRequestUC *apppermission.CreateRequestUseCase
	GetRequestUC    *apppermission.GetRequestUseCase
	ListRequestsUC  *apppermission.ListRequestsUseCase
	ApproveUC       *apppermission.ApproveRequestUseCase
	RejectUC        *apppermission.RejectRequestUseCase
	BulkRejectUC    *apppermission.BulkRejectRequestsUseCase
	CountPendingUC  *apppermission.CountPendingUseCase

	// Audit log use cases
	RecordEntryUC   *appauditlog.RecordEntryUseCase
	ListEntriesUC   *appauditlog.ListEntriesUseCase
	CountEntriesUC  *appauditlog.CountEntriesUseCase
	DeleteLogsUC    *appauditlog.DeleteLogsBatchUseCase
	InfraHealthUC   *apphealth.CheckInfraHealthUseCase
	UserStoreHealth *apphealth.CheckIdentityHealthUseCase

	// HTTP handlers
	AuthHandler       *httphandler.AuthHandler
	UserHandler       *httphandler.UserHandler
	PermissionHandler *httphandler.PermissionHandler
	AuditLogHandler   *httphandler.AuditLogHandler

	// Auth middleware components
	TokenValidator middleware.TokenValidator
	UserResolver   middleware.UserResolver
	AccessChecker  middleware.TenantAccessChecker
	RateLimitStore middleware.RateLimitStore

	// AuditMetrics counts audit trail writes and deletions.
	AuditMetrics *metrics.AuditMetrics

	// jwtValidator is kept for cleanup on shutdown.
	jwtValidator *middleware.IdentityValidatorAdapter
}

// Ensure Container implements httpserver.HealthChecker.
var _ httpserver.HealthChecker = (*Container)(nil)

// ContainerOption configures the Container.
type ContainerOption func(*Container)

// WithLogger sets a custom logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.setupInfrastructure(); err != nil {
		// Clean up any partially initialized resources
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup infrastructure: %w", err)
	}

	c.setupRepositories()
	c.setupUseCases()
	c.setupAuthComponents()
	c.setupHTTPHandlers()

	if err := c.validateWiring(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("wiring validation failed: %w", err)
	}

	return c, nil
}

// setupInfrastructure initializes MongoDB, Redis and the identity
// provider clients.
func (c *Container) setupInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	if err := c.setupMongoDB(ctx); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}

	if err := c.setupRedis(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.setupIdentity(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	return nil
}

// setupMongoDB connects to MongoDB, verifies the connection and
// bootstraps indexes.
func (c *Container) setupMongoDB(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(c.Config.MongoDB.URI).
		SetMaxPoolSize(c.Config.MongoDB.MaxPoolSize)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer pingCancel()

	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.MongoDB = client
	c.MongoDBName = c.Config.MongoDB.Database

	if indexErr := mongodbinfra.CreateAllIndexes(ctx, client.Database(c.MongoDBName)); indexErr != nil {
		return fmt.Errorf("failed to create indexes: %w", indexErr)
	}

	c.Logger.Info("connected to MongoDB",
		slog.String("database", c.MongoDBName),
	)

	return nil
}

// setupRedis connects to Redis and verifies the connection.
func (c *Container) setupRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
		PoolSize: c.Config.Redis.PoolSize,
	})

	pingCtx, pingCancel := context.WithTimeout(ctx, redisPingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping: %w", err)
	}

	c.Redis = client

	c.Logger.Info("connected to Redis",
		slog.String("addr", c.Config.Redis.Addr),
	)

	return nil
}

// setupIdentity initializes the OIDC provider client and the offline
// JWT validator.
func (c *Container) setupIdentity() error {
	c.Provider = identity.NewProviderClient(identity.ProviderClientConfig{
		IssuerURL:    c.Config.Provider.IssuerURL,
		ClientID:     c.Config.Provider.ClientID,
		ClientSecret: c.Config.Provider.ClientSecret,
		Logger:       c.Logger,
	})

	validator, err := identity.NewJWTValidator(identity.JWTValidatorConfig{
		IssuerURL:       c.Config.Provider.IssuerURL,
		ClientID:        c.Config.Provider.ClientID,
		Leeway:          c.Config.Provider.JWT.Leeway,
		RefreshInterval: c.Config.Provider.JWT.RefreshInterval,
		Logger:          c.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create JWT validator: %w", err)
	}

	c.jwtValidator = middleware.NewIdentityValidatorAdapter(validator)
	c.TokenValidator = c.jwtValidator

	return nil
}

// setupRepositories initializes MongoDB repositories and the Redis
// token store.
func (c *Container) setupRepositories() {
	db := c.MongoDB.Database(c.MongoDBName)

	c.UserRepo = mongodb.NewUserRepository(
		db.Collection(mongodbinfra.CollectionUsers),
		mongodb.WithUserRepoLogger(c.Logger),
	)
	c.TenantRepo = mongodb.NewTenantRepository(
		db.Collection(mongodbinfra.CollectionTenants),
		db.Collection(mongodbinfra.CollectionTenantMembers),
		c.Logger,
	)
	c.PermissionRepo = mongodb.NewPermissionRepository(
		db.Collection(mongodbinfra.CollectionPermissionRequests),
		c.Logger,
	)
	c.AuditLogRepo = mongodb.NewAuditLogRepository(
		db.Collection(mongodbinfra.CollectionAuditLogs),
		c.Logger,
	)

	c.TokenStore = authinfra.NewTokenStore(authinfra.TokenStoreConfig{
		Client: c.Redis,
	})
}

// setupUseCases initializes all application use cases.
func (c *Container) setupUseCases() {
	refreshTTL := c.Config.Auth.RefreshTokenTTL

	c.LoginUC = appauth.NewLoginUseCase(c.Provider, c.TokenStore, c.UserRepo, refreshTTL)
	c.LogoutUC = appauth.NewLogoutUseCase(c.TokenStore, c.Provider)
	c.RefreshUC = appauth.NewRefreshTokenUseCase(c.Provider, c.TokenStore, refreshTTL)

	c.RegisterUserUC = appuser.NewRegisterUserUseCase(c.UserRepo)
	c.GetUserUC = appuser.NewGetUserUseCase(c.UserRepo)
	c.ListUsersUC = appuser.NewListUsersUseCase(c.UserRepo)
	c.GetByUsernameUC = appuser.NewGetUserByUsernameUseCase(c.UserRepo)
	c.UpdateProfileUC = appuser.NewUpdateProfileUseCase(c.UserRepo)
	c.CheckEmailUC = appuser.NewCheckEmailExistsUseCase(c.UserRepo)
	c.PromoteUC = appuser.NewPromoteToAdminUseCase(c.UserRepo)
	c.DeactivateUC = appuser.NewDeactivateUserUseCase(c.UserRepo)

	c.CreateRequestUC = apppermission.NewCreateRequestUseCase(c.PermissionRepo, c.TenantRepo)
	c.GetRequestUC = apppermission.NewGetRequestUseCase(c.PermissionRepo)
	c.ListRequestsUC = apppermission.NewListRequestsUseCase(c.PermissionRepo)
	c.ApproveUC = apppermission.NewApproveRequestUseCase(c.PermissionRepo, c.TenantRepo)
	c.RejectUC = apppermission.NewRejectRequestUseCase(c.PermissionRepo, c.TenantRepo)
	c.BulkRejectUC = apppermission.NewBulkRejectRequestsUseCase(c.PermissionRepo, c.Logger)
	c.CountPendingUC = apppermission.NewCountPendingUseCase(c.PermissionRepo)

	c.RecordEntryUC = appauditlog.NewRecordEntryUseCase(c.AuditLogRepo)
	c.ListEntriesUC = appauditlog.NewListEntriesUseCase(c.AuditLogRepo)
	c.CountEntriesUC = appauditlog.NewCountEntriesUseCase(c.AuditLogRepo)
	c.DeleteLogsUC = appauditlog.NewDeleteLogsBatchUseCase(c.AuditLogRepo, c.Logger)

	c.InfraHealthUC = apphealth.NewCheckInfraHealthUseCase([]appcore.HealthChecker{
		healthcheck.NewMongoChecker(c.MongoDB),
		healthcheck.NewRedisChecker(c.Redis),
		healthcheck.NewProviderChecker(c.Config.Provider.IssuerURL, nil),
	}, apphealth.DefaultCheckTimeout)
	c.UserStoreHealth = apphealth.NewCheckIdentityHealthUseCase(c.UserRepo, c.Logger)
}

// setupAuthComponents wires the middleware-facing adapters.
func (c *Container) setupAuthComponents() {
	c.UserResolver = &userResolver{users: c.UserRepo}
	c.AccessChecker = &tenantAccessChecker{tenants: c.TenantRepo}
	c.RateLimitStore = middleware.NewRedisRateLimitStore(c.Redis, "")
	c.AuditMetrics = metrics.NewAuditMetrics(prometheus.DefaultRegisterer)
}

// setupHTTPHandlers initializes HTTP handlers. Review operations are
// wrapped so every decision lands in the audit trail.
func (c *Container) setupHTTPHandlers() {
	trail := &auditTrail{
		recorder: c.RecordEntryUC,
		metrics:  c.AuditMetrics,
		logger:   c.Logger,
	}

	c.AuthHandler = httphandler.NewAuthHandler(c.LoginUC, c.LogoutUC, c.RefreshUC, c.GetUserUC)

	c.UserHandler = httphandler.NewUserHandler(
		c.RegisterUserUC,
		c.GetUserUC,
		c.ListUsersUC,
		c.GetByUsernameUC,
		c.UpdateProfileUC,
		c.CheckEmailUC,
		c.PromoteUC,
		c.DeactivateUC,
	)

	c.PermissionHandler = httphandler.NewPermissionHandler(
		c.CreateRequestUC,
		c.GetRequestUC,
		c.ListRequestsUC,
		&auditedApprover{inner: c.ApproveUC, trail: trail},
		&auditedRejecter{inner: c.RejectUC, trail: trail},
		c.BulkRejectUC,
		c.CountPendingUC,
	)

	c.AuditLogHandler = httphandler.NewAuditLogHandler(
		c.ListEntriesUC,
		c.CountEntriesUC,
		&meteredBatchDeleter{inner: c.DeleteLogsUC, metrics: c.AuditMetrics},
	)
}

// validateWiring ensures all required dependencies are properly initialized.
func (c *Container) validateWiring() error {
	var errs []error

	if c.MongoDB == nil {
		errs = append(errs, errors.New("mongodb client not initialized"))
	}
	if c.Redis == nil {
		errs = append(errs, errors.New("redis client not initialized"))
	}
	if c.TokenValidator == nil {
		errs = append(errs, errors.New("token validator not initialized"))
	}
	if c.AccessChecker == nil {
		errs = append(errs, errors.New("access checker not initialized"))
	}
	if c.AuthHandler == nil {
		errs = append(errs, errors.New("auth handler not initialized"))
	}
	if c.UserHandler == nil {
		errs = append(errs, errors.New("user handler not initialized"))
	}
	if c.PermissionHandler == nil {
		errs = append(errs, errors.New("permission handler not initialized"))
	}
	if c.AuditLogHandler == nil {
		errs = append(errs, errors.New("audit log handler not initialized"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Close releases all container resources in reverse initialization order.
func (c *Container) Close() error {
	var errs []error

	if c.jwtValidator != nil {
		if err := c.jwtValidator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("jwt validator: %w", err))
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb: %w", err))
		}
		cancel()
	}

	return errors.Join(errs...)
}

// IsReady checks if the core infrastructure is healthy and ready to
// serve traffic. The identity provider is deliberately excluded:
// tokens validate offline against the cached JWKS.
func (c *Container) IsReady(ctx context.Context) bool {
	if c.MongoDB == nil || c.Redis == nil {
		return false
	}

	if err := c.MongoDB.Ping(ctx, nil); err != nil {
		c.Logger.WarnContext(ctx, "readiness check failed: mongodb", slog.String("error", err.Error()))
		return false
	}

	if err := c.Redis.Ping(ctx).Err(); err != nil {
		c.Logger.WarnContext(ctx, "readiness check failed: redis", slog.String("error", err.Error()))
		return false
	}

	return true
}

// GetHealthStatus returns the detailed health status of all components.
func (c *Container) GetHealthStatus(ctx context.Context) []httpserver.ComponentStatus {
	if c.InfraHealthUC == nil {
		return []httpserver.ComponentStatus{
			{Name: "mongodb", Status: httpserver.StatusUnhealthy, Message: "client not initialized"},
			{Name: "redis", Status: httpserver.StatusUnhealthy, Message: "client not initialized"},
		}
	}

	report := c.InfraHealthUC.Execute(ctx)

	names := make([]string, 0, len(report.Components))
	for name := range report.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]httpserver.ComponentStatus, 0, len(names)+1)
	for _, name := range names {
		componentStatus := report.Components[name]
		status := httpserver.StatusHealthy
		if !componentStatus.Healthy {
			status = httpserver.StatusUnhealthy
		}
		statuses = append(statuses, httpserver.ComponentStatus{
			Name:    name,
			Status:  status,
			Message: componentStatus.Message,
		})
	}

	userStoreStatus := httpserver.StatusHealthy
	if !c.UserStoreHealth.Execute(ctx) {
		userStoreStatus = httpserver.StatusUnhealthy
	}
	statuses = append(statuses, httpserver.ComponentStatus{
		Name:   "user_store",
		Status: userStoreStatus,
	})

	return statuses
}

// externalUserFinder is the slice of user storage the resolver needs.
type externalUserFinder interface {
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)
}

// userResolver resolves provider subjects to local accounts for the
// auth middleware.
type userResolver struct {
	users externalUserFinder
}

// ResolveUser finds the local user owning the given provider subject.
func (r *userResolver) ResolveUser(ctx context.Context, externalID string) (middleware.ResolvedUser, error) {
	usr, err := r.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return middleware.ResolvedUser{}, err
	}
	if !usr.IsActive() {
		return middleware.ResolvedUser{}, middleware.ErrUserNotFound
	}

	return middleware.ResolvedUser{
		ID:            usr.ID(),
		IsSystemAdmin: usr.IsSystemAdmin(),
	}, nil
}

// tenantFinder is the slice of tenant storage the access checker needs.
type tenantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	FindMember(ctx context.Context, tenantID, userID uuid.UUID) (*tenant.Member, error)
}

// tenantAccessChecker adapts the tenant repository to the tenant
// middleware.
type tenantAccessChecker struct {
	tenants tenantFinder
}

// GetMembership returns the user's membership in a tenant.
func (a *tenantAccessChecker) GetMembership(ctx context.Context, tenantID, userID uuid.UUID) (*tenant.Member, error) {
	return a.tenants.FindMember(ctx, tenantID, userID)
}

// TenantExists checks if a tenant exists.
func (a *tenantAccessChecker) TenantExists(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	_, err := a.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// auditTrail records audit entries best-effort. A failed write never
// fails the operation it describes; it is logged and counted instead.
type auditTrail struct {
	recorder entryRecorder
	metrics  *metrics.AuditMetrics
	logger   *slog.Logger
}

// entryRecorder appends one entry to the audit trail.
type entryRecorder interface {
	Execute(ctx context.Context, cmd appauditlog.RecordEntryCommand) (*auditlog.Entry, error)
}

func (t *auditTrail) record(ctx context.Context, cmd appauditlog.RecordEntryCommand) {
	if _, err := t.recorder.Execute(ctx, cmd); err != nil {
		t.metrics.RecordFailures.Inc()
		t.logger.WarnContext(ctx, "failed to record audit entry",
			slog.String("action", cmd.Action),
			slog.String("error", err.Error()),
		)
		return
	}
	t.metrics.EntriesRecorded.Inc()
}

// auditedApprover records an audit entry after a successful approval.
type auditedApprover struct {
	inner httphandler.RequestApprover
	trail *auditTrail
}

// Execute approves the request and appends the decision to the tenant's
// audit trail.
func (a *auditedApprover) Execute(
	ctx context.Context,
	cmd apppermission.ApproveRequestCommand,
) (apppermission.Result, error) {
	result, err := a.inner.Execute(ctx, cmd)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	req := result.Value
	a.trail.record(ctx, appauditlog.RecordEntryCommand{
		TenantID:   req.TenantID(),
		ActorID:    cmd.ReviewerID,
		Action:     "permission_request.approved",
		TargetType: "permission_request",
		TargetID:   req.ID().String(),
		Detail:     map[string]string{"permission": req.Permission()},
	})

	return result, err
}

// auditedRejecter records an audit entry after a successful rejection.
type auditedRejecter struct {
	inner httphandler.RequestRejecter
	trail *auditTrail
}

// Execute rejects the request and appends the decision to the tenant's
// audit trail.
func (a *auditedRejecter) Execute(
	ctx context.Context,
	cmd apppermission.RejectRequestCommand,
) (apppermission.Result, error) {
	result, err := a.inner.Execute(ctx, cmd)
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	req := result.Value
	a.trail.record(ctx, appauditlog.RecordEntryCommand{
		TenantID:   req.TenantID(),
		ActorID:    cmd.ReviewerID,
		Action:     "permission_request.rejected",
		TargetType: "permission_request",
		TargetID:   req.ID().String(),
		Detail:     map[string]string{"permission": req.Permission()},
	})

	return result, err
}

// meteredBatchDeleter counts batch deletions in the audit metrics.
type meteredBatchDeleter struct {
	inner   httphandler.BatchDeleter
	metrics *metrics.AuditMetrics
}

// Execute runs the batch deletion and records how many entries it
// removed.
func (d *meteredBatchDeleter) Execute(
	ctx context.Context,
	cmd appauditlog.DeleteLogsBatchCommand,
) (appauditlog.DeleteBatchResult, error) {
	result, err := d.inner.Execute(ctx, cmd)
	if err == nil && result.DeletedCount > 0 {
		d.metrics.EntriesDeleted.Add(float64(result.DeletedCount))
	}
	return result, err
}
