package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rs/zerolog"
)

const defaultUnauthorizedPath = "/unauthorized"

type Responder struct {
	logger           zerolog.Logger
	unauthorizedPath string
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger, unauthorizedPath: defaultUnauthorizedPath}
}

// withUnauthorizedPath sets where browsers are sent when the remote API rejects the session.
func (r Responder) withUnauthorizedPath(path string) Responder {
	if path != "" {
		r.unauthorizedPath = path
	}
	return r
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		truncatedResponse := map[string]interface{}{
			"error":        "Response too large",
			"message":      "The requested data exceeds the maximum response size",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		}

		truncatedJSON, err := json.Marshal(truncatedResponse)
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write(truncatedJSON)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteCreated writes data with a 201 status.
func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	r.WriteJSON(w, data)
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, ErrorResponse{
			Error:   "Internal Server Error",
			Status:  "error",
			Details: err.Error(),
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(err).Int("status", apiErr.StatusCode).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// WriteRemoteError renders an error from the remote API. A rejected session
// redirects browsers to the unauthorized page and tells API callers where to go.
func (r Responder) WriteRemoteError(w http.ResponseWriter, req *http.Request, err error) {
	if !errs.IsUpstreamUnauthorized(err) {
		r.WriteError(w, err)
		return
	}

	if wantsHTML(req) {
		http.Redirect(w, req, r.unauthorizedPath, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	r.WriteJSON(w, ErrorResponse{
		Error:    err.Error(),
		Status:   "error",
		Redirect: r.unauthorizedPath,
	})
}

// degrade decides how a failed remote read is served. Failures other than a
// rejected session become a notice for the caller to attach; anything else is
// written and written is true.
func (r Responder) degrade(w http.ResponseWriter, req *http.Request, err error) (notice string, written bool) {
	if err == nil {
		return "", false
	}
	if errs.IsUpstreamFailure(err) {
		r.logger.Warn().Err(err).Str("path", req.URL.Path).Msg("remote read failed, serving empty data")
		return "Data is temporarily unavailable: " + err.Error(), false
	}
	r.WriteRemoteError(w, req, err)
	return "", true
}

func wantsHTML(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
