package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/report"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rpupo63/solar-ops-backend/tracker"
	"github.com/rs/zerolog"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	env         projectEnv
	inventory   database.InventoryStore
	remote      *services.Client
	submissions *services.Submissions
	archiver    *services.Archiver
}

func newProjectHandler(env projectEnv, inventory database.InventoryStore, remote *services.Client, submissions *services.Submissions, archiver *services.Archiver, unauthorizedPath string) projectHandler {
	logger, responder := handlerLogging("projectHandler", unauthorizedPath)

	return projectHandler{
		responder:   responder,
		logger:      logger,
		env:         env,
		inventory:   inventory,
		remote:      remote,
		submissions: submissions,
		archiver:    archiver,
	}
}

// filteredProjects applies the search, status and county query of r.
func (h projectHandler) filteredProjects(ctx context.Context, r *http.Request) ([]models.Project, pageQuery, error) {
	q := parsePageQuery(r)
	projects, err := h.env.projects.FindAll(ctx)
	if err != nil {
		return nil, q, wrapDatabaseError("find projects", "projects", err)
	}
	filtered := listing.Apply(projectValues(projects), q.search, listing.ProjectFields,
		listing.ProjectFilters(r.URL.Query().Get("status"), r.URL.Query().Get("county"))...)
	return filtered, q, nil
}

// getAllProjects lists stored projects
// @Summary List projects
// @Description Searches projects by name, id and location, filters by status and county, and pages the result
// @Tags Projects
// @Produce json
// @Param search query string false "Search text"
// @Param status query string false "Project status or all"
// @Param county query string false "County or all"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} listResponse[models.Project]
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filtered, q, err := h.filteredProjects(r.Context(), r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, paginate(filtered, q))
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
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

		h.responder.WriteJSON(w, project)
	}
}

// createProject validates the add-project form, stores the project and
// mirrors it to the remote API. Repeated submits of the same form while the
// first is in flight share its result.
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Remote API rejected the project"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var draft models.Project
		if err := decodeBody(body, "project", &draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		var catalog []models.InventoryItem
		if len(draft.InventoryUsage) > 0 {
			if catalog, err = h.inventory.FindAll(r.Context()); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find inventory", "inventory", err))
				return
			}
		}

		project, err := tracker.NewProject(uuid.NewString(), draft, catalog, h.env.today())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		key := submissionKey(r, "project", body)
		created, shared, err := services.Submit(r.Context(), h.submissions, "project", key, func(ctx context.Context) (*models.Project, error) {
			pushed, err := h.env.mirror.push(ctx, project)
			if err != nil {
				return nil, err
			}
			if err := h.env.projects.Add(ctx, pushed); err != nil {
				return nil, wrapDatabaseError("create project", "project", err)
			}
			if _, err := h.archiver.Archive(ctx, "projects", pushed.ID, tracker.BuildPayload(pushed)); err != nil {
				h.logger.Warn().Err(err).Str("projectID", pushed.ID).Msg("Failed to archive project payload")
			}
			return pushed, nil
		})
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		if shared {
			h.logger.Info().Str("submission", key).Msg("Joined in-flight project submission")
		}

		h.responder.WriteCreated(w, created)
	}
}

// updateProject replaces the editable details of a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var changes models.Project
		if err := decodeJSON(w, r, "project", &changes); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.env.update(r.Context(), projectID, func(p *models.Project, today models.Date) (*models.Project, error) {
			return tracker.ApplyDetails(p, changes, today)
		})
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} deleteResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.env.remove(r.Context(), projectID); err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}

		h.responder.WriteJSON(w, deleteResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}

// getProjectPayload shows the body that would be sent to the remote API.
func (h projectHandler) getProjectPayload() http.HandlerFunc {
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

		h.responder.WriteJSON(w, tracker.BuildPayload(project))
	}
}

// exportProjects writes the filtered project list as an xlsx workbook
// @Summary Export projects
// @Tags Projects
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /projects/export [get]
func (h projectHandler) exportProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filtered, _, err := h.filteredProjects(r.Context(), r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		rows := make([]*models.Project, len(filtered))
		for i := range filtered {
			rows[i] = &filtered[i]
		}

		var buf bytes.Buffer
		if err := report.Write(&buf, rows); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to build project export", err))
			return
		}

		filename := fmt.Sprintf("projects-%s.xlsx", h.env.today())
		w.Header().Set("Content-Type", report.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := buf.WriteTo(w); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write project export")
		}
	}
}

// getRemoteProjects lists projects held by the remote API. Remote failures
// yield an empty page with a notice.
func (h projectHandler) getRemoteProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parsePageQuery(r)
		projects, err := h.remote.ListProjects(r.Context())
		notice, written := h.responder.degrade(w, r, err)
		if written {
			return
		}

		filtered := listing.Apply(projectValues(projects), q.search, listing.ProjectFields,
			listing.ProjectFilters(r.URL.Query().Get("status"), r.URL.Query().Get("county"))...)
		page := paginate(filtered, q)
		page.Notice = notice
		h.responder.WriteJSON(w, page)
	}
}

func projectValues(projects []*models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
