package knowdoc

import (
	"context"
	"time"
)

// Run records one pipeline invocation and the artifacts it wrote.
// Page content is never stored; each run starts from a fresh crawl.
type Run struct {
	ID         string      `json:"id"`
	Kind       SourceKind  `json:"kind"`
	SourcePath string      `json:"sourcePath"`
	OutputDir  string      `json:"outputDir"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Artifacts  []*Artifact `json:"artifacts"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Kind == "" {
		return Errorf(EINVALID, "run source kind required")
	}
	if r.SourcePath == "" {
		return Errorf(EINVALID, "run source path required")
	}
	for _, a := range r.Artifacts {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RunService represents a service for recording pipeline runs.
type RunService interface {
	// CreateRun stores a run with its artifacts and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SourcePath *string `json:"sourcePath"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
