package unitofwork

import (
	"context"

	"examgen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProblemRepository() contract.ProblemRepository
	ProblemEmbeddingRepository() contract.ProblemEmbeddingRepository
	GenerationRunRepository() contract.GenerationRunRepository
	PromptTemplateRepository() contract.PromptTemplateRepository
}
