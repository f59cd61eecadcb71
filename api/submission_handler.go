package api

import (
	"net/http"

	"github.com/rpupo63/solar-ops-backend/services"
)

type submissionHandler struct {
	responder   Responder
	submissions *services.Submissions
}

func newSubmissionHandler(submissions *services.Submissions, unauthorizedPath string) submissionHandler {
	_, responder := handlerLogging("submissionHandler", unauthorizedPath)
	return submissionHandler{responder: responder, submissions: submissions}
}

type submissionResponse struct {
	Key   string                   `json:"key"`
	State services.SubmissionState `json:"state"`
	Error string                   `json:"error,omitempty"`
}

// getSubmission reports the state of a keyed form submission, so a client
// can tell whether a retry is needed.
func (h submissionHandler) getSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := urlParam(r, "kind")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		key, err := urlParam(r, "key")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fullKey := kind + ":" + key
		state, lastErr := h.submissions.State(fullKey)
		resp := submissionResponse{Key: fullKey, State: state}
		if lastErr != nil {
			resp.Error = lastErr.Error()
		}
		h.responder.WriteJSON(w, resp)
	}
}
