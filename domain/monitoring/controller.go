package monitoring

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jammapp/waitlist-api/config/router"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/mailer"
	"github.com/jammapp/waitlist-api/pkg/ratelimit"
	"gorm.io/gorm"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Storage int `json:"storage"` // 1 = healthy, 0 = unhealthy
	Cache   int `json:"cache"`   // 1 = healthy, 0 = unhealthy/not configured
	Email   int `json:"email"`   // 1 = SMTP configured, 0 = not configured
	Uptime  int `json:"uptime"`  // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	sender    mailer.Sender
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, sender mailer.Sender) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		sender:    sender,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {

			monitoringRateLimiter := createMonitoringRateLimiter()

			routerService.AddGetHandler(controller, monitoringRateLimiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.root(c)
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func createMonitoringRateLimiter() ratelimit.RateLimiter {

	const monitoringRequestsPerMinute = 10 // More restrictive than default

	config := &ratelimit.RateLimitConfig{
		Requests: monitoringRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil, // In-memory is enough for probe endpoints
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func (ctrl *MonitoringController) root(c *router.RequestContext) *router.ServiceResult {
	return router.OKResult("Jamm waitlist API is running", nil)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)
	logger.Info("Health check endpoint called")

	status := ctrl.performHealthChecks(c.Request.Context(), logger)

	return router.OKResult("Health check completed", gin.H{
		"storage": status.Storage,
		"cache":   status.Cache,
		"email":   status.Email,
		"uptime":  status.Uptime,
	})
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkStorage(ctx) {
		status.Storage = 1
	} else {
		logger.Error("Storage health check failed")
	}

	if ctrl.cache != nil {
		if ctrl.cache.Ping(ctx) == nil {
			status.Cache = 1
		} else {
			logger.Error("Cache health check failed")
		}
	} else {
		logger.Info("Cache not configured, cache health check skipped")
	}

	if ctrl.sender != nil && ctrl.sender.IsConfigured() {
		status.Email = 1
	}

	return status
}

// checkStorage pings the database when one is configured. On the file-backed
// store there is no connection to probe, so storage reports healthy.
func (ctrl *MonitoringController) checkStorage(ctx context.Context) bool {
	if ctrl.db == nil {
		return true
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
