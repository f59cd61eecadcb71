package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/metrics"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rpupo63/solar-ops-backend/tracker"
	"github.com/rs/zerolog"
)

// projectStateHandler serves the lists a project owns: milestones, risks,
// inventory usage, tasks and the assigned team.
type projectStateHandler struct {
	responder Responder
	logger    zerolog.Logger
	env       projectEnv
	inventory database.InventoryStore
	remote    *services.Client
}

func newProjectStateHandler(env projectEnv, inventory database.InventoryStore, remote *services.Client, unauthorizedPath string) projectStateHandler {
	logger, responder := handlerLogging("projectStateHandler", unauthorizedPath)

	return projectStateHandler{
		responder: responder,
		logger:    logger,
		env:       env,
		inventory: inventory,
		remote:    remote,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type templateRequest struct {
	Titles []string `json:"titles"`
}

type assignRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type projectChange func(*models.Project, models.Date) (*models.Project, error)

// apply runs change against the project named in the path and writes the result.
func (h projectStateHandler) apply(w http.ResponseWriter, r *http.Request, change projectChange) {
	projectID, err := urlParam(r, "projectID")
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	updated, err := h.env.update(r.Context(), projectID, change)
	if err != nil {
		h.responder.WriteRemoteError(w, r, err)
		return
	}
	h.responder.WriteJSON(w, updated)
}

// decodeAndApply decodes the body into a T and hands it to change.
func decodeAndApply[T any](h projectStateHandler, w http.ResponseWriter, r *http.Request, payloadName string, change func(T, *models.Project, models.Date) (*models.Project, error)) {
	var body T
	if err := decodeJSON(w, r, payloadName, &body); err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.apply(w, r, func(p *models.Project, today models.Date) (*models.Project, error) {
		return change(body, p, today)
	})
}

// addMilestone appends a milestone and recomputes progress
// @Summary Add milestone
// @Tags Milestones
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param milestone body models.Milestone true "Milestone"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Title and due date are required"
// @Router /projects/{projectID}/milestones [post]
func (h projectStateHandler) addMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decodeAndApply(h, w, r, "milestone", func(m models.Milestone, p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.AddMilestone(p, m, today)
		})
	}
}

// addTemplateMilestones appends the standard installation phases
// @Summary Add template milestones
// @Tags Milestones
// @Param projectID path string true "Project ID"
// @Param titles body templateRequest false "Template titles, empty for all"
// @Router /projects/{projectID}/milestones/template [post]
func (h projectStateHandler) addTemplateMilestones() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req templateRequest
		if r.ContentLength != 0 {
			if err := decodeJSON(w, r, "template", &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		h.apply(w, r, func(p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.AddTemplateMilestones(p, req.Titles, today)
		})
	}
}

func (h projectStateHandler) getMilestoneTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, tracker.TemplateMilestones)
	}
}

func (h projectStateHandler) updateMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		milestoneID, err := urlParam(r, "milestoneID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		decodeAndApply(h, w, r, "milestone", func(m models.Milestone, p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.UpdateMilestone(p, milestoneID, m, today)
		})
	}
}

func (h projectStateHandler) deleteMilestone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		milestoneID, err := urlParam(r, "milestoneID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.apply(w, r, func(p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.DeleteMilestone(p, milestoneID, today)
		})
	}
}

// setMilestoneStatus moves a milestone to a new status
// @Summary Set milestone status
// @Description Completing a milestone stamps its completion date; progress and project status are recomputed
// @Tags Milestones
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param milestoneID path string true "Milestone ID"
// @Param status body statusRequest true "New status"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Milestone not found"
// @Router /projects/{projectID}/milestones/{milestoneID}/status [put]
func (h projectStateHandler) setMilestoneStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		milestoneID, err := urlParam(r, "milestoneID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		decodeAndApply(h, w, r, "status", func(req statusRequest, p *models.Project, today models.Date) (*models.Project, error) {
			status := models.MilestoneStatus(req.Status)
			next, err := tracker.SetMilestoneStatus(p, milestoneID, status, today)
			if err == nil {
				metrics.IncrementMilestoneTransition(string(status))
			}
			return next, err
		})
	}
}

// addRisk records a new risk, defaulting level, status and identified date
// @Summary Add risk
// @Tags Risks
// @Param projectID path string true "Project ID"
// @Param risk body models.Risk true "Risk"
// @Router /projects/{projectID}/risks [post]
func (h projectStateHandler) addRisk() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decodeAndApply(h, w, r, "risk", func(risk models.Risk, p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.AddRisk(p, risk, today)
		})
	}
}

func (h projectStateHandler) setRiskStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riskID, err := urlParam(r, "riskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		decodeAndApply(h, w, r, "status", func(req statusRequest, p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.SetRiskStatus(p, riskID, models.RiskStatus(req.Status), today)
		})
	}
}

// addInventoryUsage records catalog items consumed by the project. The item
// name is copied from the catalog at the time of use.
// @Summary Add inventory usage
// @Tags Inventory
// @Param projectID path string true "Project ID"
// @Param usage body models.InventoryUsage true "Usage"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown item or quantity below 1"
// @Router /projects/{projectID}/inventory [post]
func (h projectStateHandler) addInventoryUsage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var usage models.InventoryUsage
		if err := decodeJSON(w, r, "inventory usage", &usage); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if usage.UsedBy == "" {
			usage.UsedBy = ctxGetUserID(r.Context())
		}

		item, err := h.catalogItem(r.Context(), usage.ItemID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.apply(w, r, func(p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.AddInventoryUsage(p, usage, item, today)
		})
	}
}

// catalogItem looks up an item. A blank id is left for validation to reject.
func (h projectStateHandler) catalogItem(ctx context.Context, itemID string) (models.InventoryItem, error) {
	if itemID == "" {
		return models.InventoryItem{}, nil
	}
	item, err := h.inventory.FindByID(ctx, itemID)
	if err != nil {
		if errs.IsNotFound(err) {
			return models.InventoryItem{}, errs.NewInvalidFieldError("itemId", "unknown inventory item")
		}
		return models.InventoryItem{}, wrapDatabaseError("find inventory item", "inventory item", err)
	}
	return *item, nil
}

// getTasks lists project tasks, optionally narrowed by milestone and status
// @Summary List tasks
// @Tags Tasks
// @Param projectID path string true "Project ID"
// @Param milestone query string false "Milestone ID or all"
// @Param status query string false "Task status or all"
// @Success 200 {array} models.Task
// @Router /projects/{projectID}/tasks [get]
func (h projectStateHandler) getTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.env.projects.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		q := r.URL.Query()
		tasks := tracker.FilterTasks(project.Tasks, q.Get("milestone"), q.Get("status"))
		if tasks == nil {
			tasks = []models.Task{}
		}
		h.responder.WriteJSON(w, tasks)
	}
}

func (h projectStateHandler) addTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decodeAndApply(h, w, r, "task", func(t models.Task, p *models.Project, _ models.Date) (*models.Project, error) {
			return tracker.AddTask(p, t)
		})
	}
}

func (h projectStateHandler) setTaskStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := urlParam(r, "taskID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		decodeAndApply(h, w, r, "status", func(req statusRequest, p *models.Project, _ models.Date) (*models.Project, error) {
			return tracker.SetTaskStatus(p, taskID, models.TaskStatus(req.Status))
		})
	}
}

// assignUser adds a user to the project team. When only an id is given and
// the remote API is configured, name and email are looked up there.
// @Summary Assign user
// @Tags Team
// @Param projectID path string true "Project ID"
// @Param user body assignRequest true "User"
// @Router /projects/{projectID}/users [post]
func (h projectStateHandler) assignUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRequest
		if err := decodeJSON(w, r, "user", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{ID: req.UserID, Name: req.Name, Email: req.Email}
		if user.ID != "" && user.Name == "" && h.remote.Configured() {
			account, err := h.remote.GetUser(r.Context(), user.ID)
			if err != nil {
				h.responder.WriteRemoteError(w, r, err)
				return
			}
			user = account.Ref()
		}

		h.apply(w, r, func(p *models.Project, _ models.Date) (*models.Project, error) {
			return tracker.AssignUser(p, user)
		})
	}
}

func (h projectStateHandler) unassignUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.apply(w, r, func(p *models.Project, _ models.Date) (*models.Project, error) {
			return tracker.UnassignUser(p, userID)
		})
	}
}
