package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rs/zerolog"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	startupTime time.Time
	remote      *services.Client
}

func newHealthHandler(startupTime time.Time, remote *services.Client, unauthorizedPath string) healthHandler {
	logger, responder := handlerLogging("healthHandler", unauthorizedPath)

	return healthHandler{
		responder:   responder,
		logger:      logger,
		startupTime: startupTime,
		remote:      remote,
	}
}

type healthResponse struct {
	Status           string    `json:"status"`
	StartedAt        time.Time `json:"startedAt"`
	UptimeSeconds    int64     `json:"uptimeSeconds"`
	RemoteConfigured bool      `json:"remoteConfigured"`
}

// getHealth reports liveness and uptime
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, healthResponse{
			Status:           "ok",
			StartedAt:        h.startupTime.UTC(),
			UptimeSeconds:    int64(time.Since(h.startupTime).Seconds()),
			RemoteConfigured: h.remote.Configured(),
		})
	}
}
