package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupProbeRoutes mounts the unauthenticated health and metrics endpoints
func setupProbeRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.getHealth())
	r.Handle("/metrics", promhttp.Handler())
}

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/export", handlers.projectHandler.exportProjects())
		r.Get("/projects/remote", handlers.projectHandler.getRemoteProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Get("/projects/{projectID}/payload", handlers.projectHandler.getProjectPayload())

		// Project State Handler endpoints
		r.Get("/milestone-templates", handlers.projectStateHandler.getMilestoneTemplates())
		r.Post("/projects/{projectID}/milestones", handlers.projectStateHandler.addMilestone())
		r.Post("/projects/{projectID}/milestones/template", handlers.projectStateHandler.addTemplateMilestones())
		r.Put("/projects/{projectID}/milestones/{milestoneID}", handlers.projectStateHandler.updateMilestone())
		r.Delete("/projects/{projectID}/milestones/{milestoneID}", handlers.projectStateHandler.deleteMilestone())
		r.Put("/projects/{projectID}/milestones/{milestoneID}/status", handlers.projectStateHandler.setMilestoneStatus())
		r.Post("/projects/{projectID}/risks", handlers.projectStateHandler.addRisk())
		r.Put("/projects/{projectID}/risks/{riskID}/status", handlers.projectStateHandler.setRiskStatus())
		r.Post("/projects/{projectID}/inventory", handlers.projectStateHandler.addInventoryUsage())
		r.Get("/projects/{projectID}/tasks", handlers.projectStateHandler.getTasks())
		r.Post("/projects/{projectID}/tasks", handlers.projectStateHandler.addTask())
		r.Put("/projects/{projectID}/tasks/{taskID}/status", handlers.projectStateHandler.setTaskStatus())
		r.Post("/projects/{projectID}/users", handlers.projectStateHandler.assignUser())
		r.Delete("/projects/{projectID}/users/{userID}", handlers.projectStateHandler.unassignUser())

		// Dashboard Handler endpoints
		r.Get("/dashboard/statistics", handlers.dashboardHandler.getStatistics())
		r.Get("/dashboard/overview", handlers.dashboardHandler.getOverview())

		// Site Handler endpoints
		r.Get("/sites", handlers.siteHandler.getAllSites())
		r.Post("/sites", handlers.siteHandler.createSite())
		r.Get("/sites/{siteID}", handlers.siteHandler.getSite())
		r.Patch("/sites/{siteID}", handlers.siteHandler.updateSite())
		r.Delete("/sites/{siteID}", handlers.siteHandler.deleteSite())

		// User Handler endpoints
		r.Get("/users", handlers.userHandler.getAllUsers())
		r.Get("/users/national-id/{nationalID}", handlers.userHandler.getUserByNationalID())
		r.Get("/users/{userID}", handlers.userHandler.getUser())
		r.Patch("/users/{userID}", handlers.userHandler.updateUser())
		r.Delete("/users/{userID}", handlers.userHandler.deleteUser())

		// Service Order Handler endpoints
		r.Get("/service-orders", handlers.serviceOrderHandler.getAllServiceOrders())
		r.Post("/service-orders", handlers.serviceOrderHandler.createServiceOrder())
		r.Post("/service-orders/estimate", handlers.serviceOrderHandler.estimateServiceOrder())
		r.Get("/service-orders/{orderID}", handlers.serviceOrderHandler.getServiceOrder())

		// Inventory Handler endpoints
		r.Get("/inventory", handlers.inventoryHandler.getInventory())
		r.Get("/inventory/{itemID}", handlers.inventoryHandler.getInventoryItem())

		r.Get("/submissions/{kind}/{key}", handlers.submissionHandler.getSubmission())
	})
}
