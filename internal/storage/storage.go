package storage

import (
	"context"

	"strikebench/internal/model"
)

// Storage is a sink for benchmark runs and their step results.
type Storage interface {
	PutRun(ctx context.Context, run model.Run, steps []model.StepResult) error
}

// Multi fans a run out to every sink, stopping at the first error.
type Multi []Storage

func (m Multi) PutRun(ctx context.Context, run model.Run, steps []model.StepResult) error {
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.PutRun(ctx, run, steps); err != nil {
			return err
		}
	}
	return nil
}
