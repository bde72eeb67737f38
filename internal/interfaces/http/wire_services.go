package http

import (
	"fmt"
	"time"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/adapters"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/cache"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/email"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/permission"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/services/markdown"
)

const (
	oauthStateTTL     = 10 * time.Minute
	oauthStatePrefix  = "oauth:state:"
	memoryCacheSize   = 10_000
	memoryLimiterKeys = 50_000
	welcomeTimeout    = 30 * time.Second
)

// services groups the infrastructure services shared by use cases.
type services struct {
	txManager *db.TransactionManager
	hasher    *auth.BcryptPasswordHasher
	jwtSvc    *auth.JWTService
	blocklist cache.TokenBlocklist
	states    cache.StateStore
	providers *auth.OAuthProviders
	notifier  *adapters.AsyncWelcomeNotifier
	renderer  *markdown.Renderer
	guard     *authorization.Guard
	resolver  *authorization.Resolver
	limiter   ratelimit.RateLimiter
	health    *database.HealthChecker
}

func (c *Container) initServices() error {
	cfg := c.cfg
	log := c.log

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := c.metrics.RegisterDB(sqlDB, cfg.Database.Database); err != nil {
		log.Warnw("failed to register database metrics", "error", err)
	}

	var enforcer *permission.Enforcer
	if cfg.Permission.Persist {
		enforcer, err = permission.NewEnforcer(c.db, log)
	} else {
		enforcer, err = permission.NewMemoryEnforcer(log)
	}
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPermissions(enforcer, log); err != nil {
		return fmt.Errorf("failed to load default permissions: %w", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	refreshTTL := time.Duration(cfg.Auth.JWT.RefreshExpDays) * 24 * time.Hour
	rule := ratelimit.Rule{Limit: cfg.RateLimit.Limit, Window: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second}

	mailer := email.NewWelcomeMailer(cfg.Email, cfg.Server.BaseURL, log.Named("email"))
	notifier := adapters.NewAsyncWelcomeNotifier(adapters.NewWelcomeNotifierAdapter(mailer), c.tasks, welcomeTimeout, log)
	resolver := authorization.NewResolver(c.repos.userRepo, c.repos.assignmentRepo, c.repos.resellerAdminRepo, c.repos.customerRepo, log)

	svcs := &services{
		txManager: db.NewTransactionManager(c.db),
		hasher:    auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		jwtSvc:    jwtSvc,
		providers: auth.NewOAuthProviders(cfg.OAuth),
		notifier:  notifier,
		renderer:  markdown.NewRenderer(),
		guard:     authorization.NewGuard(access.NewAuthorizer(enforcer)),
		resolver:  resolver,
		health:    database.NewHealthChecker(sqlDB, c.redis),
	}

	if c.redis != nil {
		svcs.blocklist = cache.NewRedisTokenBlocklist(c.redis)
		svcs.states = cache.NewRedisStateStore(c.redis, oauthStatePrefix, oauthStateTTL)
		svcs.limiter = ratelimit.NewRedisRateLimiter(c.redis, rule)
	} else {
		log.Warnw("redis disabled, using in-process token blocklist, oauth state and rate limits")
		svcs.blocklist = cache.NewMemoryTokenBlocklist(memoryCacheSize, refreshTTL)
		svcs.states = cache.NewMemoryStateStore(memoryCacheSize, oauthStateTTL)
		svcs.limiter = ratelimit.NewMemoryRateLimiter(rule, memoryLimiterKeys)
	}

	log.Infow("oauth providers configured", "providers", svcs.providers.Names())

	c.svcs = svcs
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.svcs.jwtSvc, c.svcs.resolver, c.log.Named("auth"))
	if c.cfg.RateLimit.Enabled {
		c.rateLimit = middleware.RateLimit(c.svcs.limiter, c.metrics, c.log)
	}
}
