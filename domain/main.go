package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService

	monitoringDeps := monitoring.Dependencies{
		Store:         appConfig.Store,
		Cache:         appConfig.Cache,
		Mail:          appConfig.Notifier,
		Notifications: appConfig.Dispatcher,
		Logger:        appConfig.Logger,
	}
	waitlistDeps := waitlist.Dependencies{
		Store:        appConfig.Store,
		Cache:        appConfig.Cache,
		SeenEmailTTL: appConfig.Config.SeenEmailTTL,
		Notifier:     appConfig.Notifier,
		Runner:       appConfig.Dispatcher,
		Logger:       appConfig.Logger,
	}

	rs.MountController(monitoring.NewMonitoringControllerFactory(monitoringDeps).CreateController())

	for _, controller := range waitlist.NewWaitlistServiceFactory(waitlistDeps).CreateControllers(rs.Registerer()) {
		rs.MountController(controller)
	}
}
