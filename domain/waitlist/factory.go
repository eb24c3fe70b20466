package waitlist

import (
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies are the shared resources the waitlist domain is built from.
// Cache is optional.
type Dependencies struct {
	Store        StoreHandle
	Cache        SeenCache
	SeenEmailTTL time.Duration
	Notifier     Notifier
	Runner       TaskRunner
	Logger       *log.Logger
}

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateControllers(reg prometheus.Registerer) []*router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	deps Dependencies
}

func NewWaitlistServiceFactory(deps Dependencies) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{deps: deps}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewCachedWaitlistRepository(
		NewWaitlistRepository(f.deps.Store),
		f.deps.Cache,
		f.deps.SeenEmailTTL,
		f.deps.Logger,
	)
	return NewWaitlistService(f.deps.Logger, repository, f.deps.Notifier, f.deps.Runner)
}

// CreateControllers returns both submit routes backed by one service.
func (f *DefaultWaitlistServiceFactory) CreateControllers(reg prometheus.Registerer) []*router.RESTController {
	service := f.CreateService()
	metrics := NewSubmissionMetrics(reg)

	return []*router.RESTController{
		NewWaitlistController(service, metrics),
		NewSubmitController(service, metrics),
	}
}
