package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rpupo63/solar-ops-backend/tracker"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  database.ProjectStore
	remote    *services.Client
	now       func() time.Time
}

func newDashboardHandler(projects database.ProjectStore, remote *services.Client, now func() time.Time, unauthorizedPath string) dashboardHandler {
	logger, responder := handlerLogging("dashboardHandler", unauthorizedPath)

	return dashboardHandler{
		responder: responder,
		logger:    logger,
		projects:  projects,
		remote:    remote,
		now:       now,
	}
}

type statisticsResponse struct {
	Statistics     tracker.Statistics       `json:"statistics"`
	CountyProgress []tracker.CountyProgress `json:"countyProgress"`
}

type userSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type overviewResponse struct {
	statisticsResponse
	Sites   tracker.SiteSummary `json:"sites"`
	Users   userSummary         `json:"users"`
	Notices []string            `json:"notices,omitempty"`
}

func projectStatistics(projects []*models.Project) statisticsResponse {
	values := projectValues(projects)
	progress := tracker.ProgressByCounty(values)
	if progress == nil {
		progress = []tracker.CountyProgress{}
	}
	return statisticsResponse{
		Statistics:     tracker.Summarize(values),
		CountyProgress: progress,
	}
}

// getStatistics returns the project counters and progress by county
// @Summary Project statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} statisticsResponse
// @Router /dashboard/statistics [get]
func (h dashboardHandler) getStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		h.responder.WriteJSON(w, projectStatistics(projects))
	}
}

// getOverview loads projects, sites and users concurrently. A remote source
// that fails is reported as a notice; a rejected session fails the request.
// @Summary Dashboard overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} overviewResponse
// @Router /dashboard/overview [get]
func (h dashboardHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			projects                 []*models.Project
			sites                    []models.Site
			accounts                 []models.Account
			sitesNotice, usersNotice string
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			projects, err = h.projects.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("find projects", "projects", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			sites, sitesNotice, err = tolerate(h.remote.ListSites(ctx))
			return err
		})
		g.Go(func() error {
			var err error
			accounts, usersNotice, err = tolerate(h.remote.ListUsers(ctx))
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}

		resp := overviewResponse{
			statisticsResponse: projectStatistics(projects),
			Sites:              tracker.SummarizeSites(sites, h.now()),
			Users:              summarizeAccounts(accounts),
		}
		for _, notice := range []string{sitesNotice, usersNotice} {
			if notice != "" {
				resp.Notices = append(resp.Notices, notice)
			}
		}
		h.responder.WriteJSON(w, resp)
	}
}

// tolerate turns a remote failure into a notice so one source cannot sink
// the overview. A rejected session is still returned as an error.
func tolerate[T any](items []T, err error) ([]T, string, error) {
	if err == nil {
		return items, "", nil
	}
	if errs.IsUpstreamFailure(err) {
		return nil, err.Error(), nil
	}
	return nil, "", err
}

func summarizeAccounts(accounts []models.Account) userSummary {
	s := userSummary{Total: len(accounts)}
	for _, a := range accounts {
		if strings.EqualFold(a.Status, "active") {
			s.Active++
		}
	}
	return s
}
