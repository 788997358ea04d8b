package contract

import (
	"context"

	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProblemRepository interface {
	Create(ctx context.Context, problem *entity.Problem) error
	Update(ctx context.Context, problem *entity.Problem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Problem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Problem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
