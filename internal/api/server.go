package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jobverse/internal/domain"
)

const (
	defaultRunTimeout   = 5 * time.Minute
	defaultWriteTimeout = 6 * time.Minute
)

// Workflow runs the ingestion pipeline and reports its state.
type Workflow interface {
	Execute(ctx context.Context, userID *string) (*domain.RunResult, error)
	Status() domain.RunStatus
}

type RunLogs interface {
	List(ctx context.Context, limit uint64) ([]domain.RunLog, error)
}

type Jobs interface {
	List(ctx context.Context, limit uint64) ([]domain.JobRecord, error)
	Save(ctx context.Context, job *domain.JobRecord) error
	Delete(ctx context.Context, id string) error
}

type Chat interface {
	Reply(ctx context.Context, message string) (string, error)
}

type Config struct {
	Port        int
	CORSOrigins []string
	// RunTimeout bounds a manually triggered run.
	RunTimeout time.Duration
}

// Server serves the job board API.
type Server struct {
	*http.Server

	workflow   Workflow
	runLogs    RunLogs
	jobs       Jobs
	chat       Chat
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewServer(cfg Config, workflow Workflow, runLogs RunLogs, jobs Jobs, chat Chat, logger *slog.Logger) *Server {
	r := errRouter{Router: mux.NewRouter(), logger: logger}

	runTimeout := cfg.RunTimeout
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}

	s := &Server{
		workflow:   workflow,
		runLogs:    runLogs,
		jobs:       jobs,
		chat:       chat,
		runTimeout: runTimeout,
		logger:     logger,
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: max(defaultWriteTimeout, runTimeout+30*time.Second),
			Handler: handlers.CORS(
				handlers.AllowedOrigins(cfg.CORSOrigins),
				handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
				handlers.AllowedHeaders([]string{"content-type", userIDHeader}),
			)(r),
		},
	}

	r.Use(accessLogMiddleware(logger))
	r.HandleFuncE("/api/health", s.getHealth).Methods(http.MethodGet)
	r.HandleFuncE("/api/gemini-chat", s.postChat).Methods(http.MethodPost)

	r.HandleFuncE("/api/workflow/status", s.getWorkflowStatus).Methods(http.MethodGet)
	r.HandleFuncE("/api/workflow/run", s.postWorkflowRun).Methods(http.MethodPost)
	r.HandleFuncE("/api/workflow/logs", s.getWorkflowLogs).Methods(http.MethodGet)

	authed := errRouter{Router: r.PathPrefix("/api/jobs").Subrouter(), logger: logger}
	authed.Use(requireUserMiddleware(logger))
	authed.HandleFuncE("", s.getJobs).Methods(http.MethodGet)
	authed.HandleFuncE("", s.postJob).Methods(http.MethodPost)
	authed.HandleFuncE("/{id}", s.deleteJob).Methods(http.MethodDelete)

	logger.Debug("configured api server", "port", cfg.Port)

	return s
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
