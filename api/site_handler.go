package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rpupo63/solar-ops-backend/tracker"
	"github.com/rs/zerolog"
)

type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	remote      *services.Client
	submissions *services.Submissions
	now         func() time.Time
}

func newSiteHandler(remote *services.Client, submissions *services.Submissions, now func() time.Time, unauthorizedPath string) siteHandler {
	logger, responder := handlerLogging("siteHandler", unauthorizedPath)

	return siteHandler{
		responder:   responder,
		logger:      logger,
		remote:      remote,
		submissions: submissions,
		now:         now,
	}
}

// siteListResponse is a page of sites plus the summary over all of them
type siteListResponse struct {
	listResponse[models.Site]
	Summary tracker.SiteSummary `json:"summary"`
}

// getAllSites lists installation sites from the remote locations API
// @Summary List sites
// @Tags Sites
// @Produce json
// @Param search query string false "Search text"
// @Param county query string false "County or all"
// @Param status query string false "active, inactive or all"
// @Success 200 {object} siteListResponse
// @Router /sites [get]
func (h siteHandler) getAllSites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parsePageQuery(r)
		sites, err := h.remote.ListSites(r.Context())
		notice, written := h.responder.degrade(w, r, err)
		if written {
			return
		}

		filtered := listing.Apply(sites, q.search, listing.SiteFields,
			listing.SiteFilters(r.URL.Query().Get("county"), r.URL.Query().Get("status"))...)
		resp := siteListResponse{
			listResponse: paginate(filtered, q),
			Summary:      tracker.SummarizeSites(sites, h.now()),
		}
		resp.Notice = notice
		h.responder.WriteJSON(w, resp)
	}
}

func (h siteHandler) getSite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := urlParam(r, "siteID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		site, err := h.remote.GetSite(r.Context(), siteID)
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, site)
	}
}

func validateSite(in models.SiteInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errs.NewMissingRequiredFieldError("name")
	case strings.TrimSpace(in.County) == "":
		return errs.NewMissingRequiredFieldError("county")
	case strings.TrimSpace(in.Address) == "":
		return errs.NewMissingRequiredFieldError("address")
	case in.Latitude < -90 || in.Latitude > 90:
		return errs.NewInvalidFieldError("latitude", "must be between -90 and 90")
	case in.Longitude < -180 || in.Longitude > 180:
		return errs.NewInvalidFieldError("longitude", "must be between -180 and 180")
	}
	return nil
}

// createSite registers a site with the remote locations API
// @Summary Create site
// @Tags Sites
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param site body models.SiteInput true "Site"
// @Success 201 {object} models.Site
// @Router /sites [post]
func (h siteHandler) createSite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in models.SiteInput
		if err := decodeBody(body, "site", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateSite(in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		site, _, err := services.Submit(r.Context(), h.submissions, "site", submissionKey(r, "site", body), func(ctx context.Context) (*models.Site, error) {
			return h.remote.CreateSite(ctx, in)
		})
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteCreated(w, site)
	}
}

// updateSite forwards a partial update to the remote locations API.
func (h siteHandler) updateSite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := urlParam(r, "siteID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var changes map[string]any
		if err := decodeJSON(w, r, "site", &changes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(changes) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no changes supplied"))
			return
		}

		site, err := h.remote.UpdateSite(r.Context(), siteID, changes)
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, site)
	}
}

func (h siteHandler) deleteSite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, err := urlParam(r, "siteID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.remote.DeleteSite(r.Context(), siteID); err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, deleteResponse{
			Status:  "success",
			Message: "site deleted successfully",
		})
	}
}
