package domain

import (
	"github.com/jammapp/waitlist-api/config"
	"github.com/jammapp/waitlist-api/domain/admin"
	"github.com/jammapp/waitlist-api/domain/monitoring"
	"github.com/jammapp/waitlist-api/domain/waitlist"
)

// SetupCoreDomain mounts every controller onto the router service. Order
// does not matter; each controller registers its own routes and middleware.
func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(
		monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache, appConfig.Mailer),
	)

	appConfig.RouterService.MountController(
		waitlist.NewWaitlistController(appConfig.Store, appConfig.Mailer, appConfig.Logger),
	)

	appConfig.RouterService.MountController(
		admin.NewAdminController(appConfig.Store, appConfig.Mailer, appConfig.Logger),
	)
}
