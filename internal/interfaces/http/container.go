package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/config"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/scheduler"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/tenantdesk/internal/shared/goroutine"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

// Container holds the infrastructure, repositories, use cases and handlers
// of the API server and wires them together. Shutdown stops what Start
// launched in the background.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Metrics

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	rateLimit      gin.HandlerFunc

	schedulerManager *scheduler.SchedulerManager
	tasks            *goroutine.Group
}

// NewContainer builds the dependency graph. redisClient may be nil, in which
// case in-process caches and limiters are used.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		redis:   redisClient,
		metrics: metrics.New(),
		tasks:   goroutine.NewGroup(log),
	}

	c.repos = newRepositories(db, log)

	if err := c.initServices(); err != nil {
		return nil, err
	}

	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	c.initMiddlewares()
	c.setupRoutes()

	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start launches background jobs.
func (c *Container) Start() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background jobs, waiting for a running sweep and pending
// notifications up to the context deadline.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		c.schedulerManager.Stop(ctx)
	}
	if err := c.tasks.Wait(ctx); err != nil {
		c.log.Warnw("background tasks still running at shutdown", "error", err)
	}
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("scheduler disabled")
		return nil
	}
	c.schedulerManager = scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	return c.schedulerManager.RegisterSubscriptionJobs(c.cfg.Scheduler.ExpirySpec, c.ucs.expireSubscriptionsUC)
}
