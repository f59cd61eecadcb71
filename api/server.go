package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/solar-ops-backend/config"
	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the collaborators behind the HTTP surface. Nil services
// fall back to disabled instances.
type Dependencies struct {
	Database    database.Database
	Remote      *services.Client
	Submissions *services.Submissions
	Archiver    *services.Archiver
	Notifier    *services.Notifier
	Now         func() time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Remote == nil {
		d.Remote = services.NewClient("", nil)
	}
	if d.Submissions == nil {
		d.Submissions = services.NewSubmissions(0)
	}
	if d.Archiver == nil {
		d.Archiver = services.NewArchiver(nil, "", "")
	}
	if d.Notifier == nil {
		d.Notifier = services.NewNotifier(services.NotifierConfig{})
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}
	deps = deps.withDefaults()

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(RecordRequestMetrics)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", nil)
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(deps, router)

	authMiddleware := newAuthMiddleware(
		config.GetString(router.config, "JWT_SECRET", ""),
		config.GetBool(router.config, "AUTH_REQUIRED", false),
	)

	setupProbeRoutes(chiRouter, handlers)
	setupFrontendRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
