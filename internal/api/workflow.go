package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"jobverse/internal/domain"
	apierrs "jobverse/internal/errors"
)

const (
	defaultLogLimit = 10
	maxLogLimit     = 100
)

func (s *Server) getWorkflowStatus(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, s.workflow.Status())
}

// postWorkflowRun runs the pipeline synchronously. The run outlives a
// disconnected client but not runTimeout.
func (s *Server) postWorkflowRun(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.runTimeout)
	defer cancel()

	result, err := s.workflow.Execute(ctx, userFromHeader(r))
	switch {
	case errors.Is(err, domain.ErrAlreadyRunning):
		return apierrs.E(http.StatusConflict, err)
	case errors.Is(err, domain.ErrFetch):
		return apierrs.E(http.StatusBadGateway, err)
	case err != nil:
		s.logger.Error("workflow run failed", "error", err)
		return apierrs.E(http.StatusInternalServerError, "workflow run failed")
	}

	return writeJSON(w, http.StatusOK, result)
}

func (s *Server) getWorkflowLogs(w http.ResponseWriter, r *http.Request) error {
	limit := parseLimit(r, defaultLogLimit, maxLogLimit)

	logs, err := s.runLogs.List(r.Context(), limit)
	if err != nil {
		return fmt.Errorf("list run logs: %w", err)
	}

	return writeJSON(w, http.StatusOK, logs)
}
