package mock

import (
	"context"

	"github.com/fwojciec/knowdoc"
)

var _ knowdoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of knowdoc.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *knowdoc.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*knowdoc.Run, error)
	FindRunsFn    func(ctx context.Context, filter knowdoc.RunFilter) ([]*knowdoc.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *knowdoc.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*knowdoc.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter knowdoc.RunFilter) ([]*knowdoc.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
