package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"jobverse/internal/domain"
	apierrs "jobverse/internal/errors"
	"jobverse/internal/service"
)

const (
	defaultJobLimit = 50
	maxJobLimit     = 100

	manualSource = "Manual"
)

type addJobRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source"`
}

func (a addJobRequest) Validate() error {
	var details []apierrs.Detail
	if strings.TrimSpace(a.Title) == "" {
		details = append(details, apierrs.Detail{Field: "title", Error: "is required"})
	}
	if strings.TrimSpace(a.Link) == "" {
		details = append(details, apierrs.Detail{Field: "link", Error: "is required"})
	}
	if len(details) > 0 {
		return apierrs.E(http.StatusBadRequest, "invalid job", details)
	}
	return nil
}

type addJobResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type listJobsResponse struct {
	Jobs []domain.JobRecord `json:"jobs"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) getJobs(w http.ResponseWriter, r *http.Request) error {
	limit := parseLimit(r, defaultJobLimit, maxJobLimit)

	jobs, err := s.jobs.List(r.Context(), limit)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	if jobs == nil {
		jobs = []domain.JobRecord{}
	}
	return writeJSON(w, http.StatusOK, listJobsResponse{Jobs: jobs})
}

func (s *Server) postJob(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeValid[addJobRequest](r.Body)
	if err != nil {
		return err
	}

	user := userFromContext(r.Context())
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = manualSource
	}

	now := time.Now()
	job := &domain.JobRecord{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Link:        strings.TrimSpace(req.Link),
		Description: service.CleanDescription(req.Description),
		Content:     req.Description,
		PubDate:     req.PubDate,
		Source:      source,
		DateAdded:   now.Format("02 Jan 2006"),
		AddedAt:     now,
		AddedBy:     &user,
	}

	if err := s.jobs.Save(r.Context(), job); err != nil {
		return fmt.Errorf("save job: %w", err)
	}

	s.logger.Info("job added", "id", job.ID, "user", user)
	return writeJSON(w, http.StatusCreated, addJobResponse{ID: job.ID, Message: "Job added successfully"})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]

	err := s.jobs.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return apierrs.E(http.StatusNotFound, fmt.Sprintf("job %s not found", id))
	}
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	s.logger.Info("job deleted", "id", id, "user", userFromContext(r.Context()))
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}
