package domain

import (
	"errors"
	"time"
)

var (
	// ErrFetch marks failures to retrieve or parse the remote feed.
	ErrFetch = errors.New("fetch failed")
	// ErrWrite marks a rejected persistence batch.
	ErrWrite = errors.New("write failed")
	// ErrAlreadyRunning is returned when a run is requested while one is in progress.
	ErrAlreadyRunning = errors.New("workflow already running")
	ErrNotFound       = errors.New("not found")
)

// RunLog is the audit record written once per pipeline execution.
type RunLog struct {
	ID            string    `db:"id" json:"id"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	JobsProcessed int       `db:"jobs_processed" json:"jobsProcessed"`
	JobsFiltered  int       `db:"jobs_filtered" json:"jobsFiltered"`
	JobsAdded     int       `db:"jobs_added" json:"jobsAdded"`
	Success       bool      `db:"success" json:"success"`
	Error         *string   `db:"error" json:"error"`
	UserID        *string   `db:"user_id" json:"userId"`
	Source        string    `db:"source" json:"source"`
}

// RunStatus is the in-process view of the workflow.
type RunStatus struct {
	IsRunning     bool       `json:"isRunning"`
	LastRun       *time.Time `json:"lastRun"`
	JobsProcessed int        `json:"jobsProcessed"`
	JobsFiltered  int        `json:"jobsFiltered"`
}

// RunResult summarizes a completed run.
type RunResult struct {
	Success       bool      `json:"success"`
	JobsProcessed int       `json:"jobsProcessed"`
	JobsFiltered  int       `json:"jobsFiltered"`
	JobsAdded     int       `json:"jobsAdded"`
	Timestamp     time.Time `json:"timestamp"`
}

type Notification struct {
	UserID    *string   `json:"userId"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	JobCount  int       `json:"jobCount"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
