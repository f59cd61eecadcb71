package api

import (
	"github.com/rpupo63/solar-ops-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, r router) *routeHandlers {
	unauthorizedPath := config.GetString(r.config, "UNAUTHORIZED_PATH", defaultUnauthorizedPath)
	db := deps.Database
	projects := projectEnv{
		projects: db.ProjectRepo(),
		mirror: projectSync{
			remote:  deps.Remote,
			enabled: deps.Remote.Configured() && config.GetBool(r.config, "PROJECT_SYNC", true),
		},
		locks: newProjectLocks(),
		now:   deps.Now,
	}

	return &routeHandlers{
		healthHandler:       newHealthHandler(r.startupTime, deps.Remote, unauthorizedPath),
		projectHandler:      newProjectHandler(projects, db.InventoryRepo(), deps.Remote, deps.Submissions, deps.Archiver, unauthorizedPath),
		projectStateHandler: newProjectStateHandler(projects, db.InventoryRepo(), deps.Remote, unauthorizedPath),
		dashboardHandler:    newDashboardHandler(db.ProjectRepo(), deps.Remote, deps.Now, unauthorizedPath),
		siteHandler:         newSiteHandler(deps.Remote, deps.Submissions, deps.Now, unauthorizedPath),
		userHandler:         newUserHandler(deps.Remote, unauthorizedPath),
		serviceOrderHandler: newServiceOrderHandler(db.ServiceOrderRepo(), db.InventoryRepo(), deps.Submissions, deps.Archiver, deps.Notifier, deps.Now, unauthorizedPath),
		inventoryHandler:    newInventoryHandler(db.InventoryRepo(), unauthorizedPath),
		submissionHandler:   newSubmissionHandler(deps.Submissions, unauthorizedPath),
	}
}

// handlerLogging returns the child logger and responder of a named handler.
func handlerLogging(name, unauthorizedPath string) (zerolog.Logger, Responder) {
	logger := log.With().Str("handlerName", name).Logger()
	return logger, NewResponder(logger).withUnauthorizedPath(unauthorizedPath)
}
