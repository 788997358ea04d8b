package contract

import (
	"context"

	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"
)

type GenerationRunRepository interface {
	// Save inserts or updates the run keyed by its session id.
	Save(ctx context.Context, run *entity.GenerationRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
