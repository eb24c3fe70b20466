package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/besteffort"
	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
)

const healthCheckTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type MailTransport interface {
	TransportState() circuitbreaker.CircuitState
}

type NotificationCounter interface {
	Stats() besteffort.Stats
}

type NotificationHealth struct {
	Transport string `json:"transport"` // circuit state: closed, open or half_open
	Sent      uint64 `json:"sent"`
	Failed    uint64 `json:"failed"`
	Panicked  uint64 `json:"panicked"`
}

type HealthStatus struct {
	Store         int                `json:"store"` // 1 = healthy, 0 = unhealthy
	Cache         int                `json:"cache"` // 1 = healthy, 0 = unhealthy or not configured
	Notifications NotificationHealth `json:"notifications"`
	Uptime        int                `json:"uptime"` // seconds
}

// Dependencies may leave Cache, Mail and Notifications nil.
type Dependencies struct {
	Store         Pinger
	Cache         Pinger
	Mail          MailTransport
	Notifications NotificationCounter
	Logger        *log.Logger
}

type MonitoringController struct {
	deps      Dependencies
	startTime time.Time
}

func NewMonitoringController(deps Dependencies) *router.RESTController {
	ctrl := &MonitoringController{
		deps:      deps,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "", ctrl.monitor)
			routerService.AddGetHandler(controller, "health", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) monitor(c *router.RequestContext) *router.ServiceResult {
	return router.OKResult("Waitlist API is operational.", "Monitoring successful")
}

// healthCheck answers 503 when the store is unreachable; the cache and mail
// transport are reported but never fail the check.
func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	if status.Store == 0 {
		return router.ErrorResult(http.StatusServiceUnavailable, "waitlist-api health check failed", status)
	}
	return router.OKResult(status, "waitlist-api health check completed")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	status.Store = ping(ctx, ctrl.deps.Store, "store", logger)
	status.Cache = ping(ctx, ctrl.deps.Cache, "cache", logger)
	status.Notifications = ctrl.notificationHealth()

	return status
}

func ping(ctx context.Context, p Pinger, component string, logger *log.Logger) int {
	if p == nil {
		logger.Debug("Health check skipped; component not configured", "component", component)
		return 0
	}
	if err := p.Ping(ctx); err != nil {
		logger.Error("Health check failed", "component", component, "error", err)
		return 0
	}
	return 1
}

func (ctrl *MonitoringController) notificationHealth() NotificationHealth {
	health := NotificationHealth{Transport: circuitbreaker.Open.String()}

	if ctrl.deps.Mail != nil {
		health.Transport = ctrl.deps.Mail.TransportState().String()
	}
	if ctrl.deps.Notifications != nil {
		stats := ctrl.deps.Notifications.Stats()
		health.Sent = stats.Succeeded
		health.Failed = stats.Failed
		health.Panicked = stats.Panicked
	}
	return health
}
