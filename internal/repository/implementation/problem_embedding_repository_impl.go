package implementation

import (
	"context"

	"examgen-be/internal/entity"
	"examgen-be/internal/mapper"
	"examgen-be/internal/model"
	"examgen-be/internal/repository/contract"
	"examgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ProblemEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProblemEmbeddingMapper
}

func NewProblemEmbeddingRepository(db *gorm.DB) contract.ProblemEmbeddingRepository {
	return &ProblemEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewProblemEmbeddingMapper(),
	}
}

func (r *ProblemEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProblemEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ProblemEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProblemEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ProblemEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *ProblemEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProblemEmbedding{}, id).Error
}

func (r *ProblemEmbeddingRepositoryImpl) DeleteByProblemId(ctx context.Context, problemId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("problem_id = ?", problemId).Delete(&model.ProblemEmbedding{}).Error
}

func (r *ProblemEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProblemEmbedding, error) {
	var models []*model.ProblemEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProblemEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ProblemEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *ProblemEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredProblemEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type scoredRow struct {
		model.ProblemEmbedding
		Similarity float64
	}

	var rows []scoredRow
	// Cosine distance: similarity = 1 - (embedding_value <=> query).
	// Both sides are stored normalized, so the conversion holds.
	err := r.db.WithContext(ctx).
		Model(&model.ProblemEmbedding{}).
		Select("*, 1 - (embedding_value <=> ?) AS similarity", pgvector.NewVector(embedding)).
		Joins("JOIN problems ON problems.id = problem_embeddings.problem_id").
		Where("problem_embeddings.deleted_at IS NULL").
		Where("problems.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", pgvector.NewVector(embedding), threshold).
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredProblemEmbedding, len(rows))
	for i := range rows {
		scored[i] = &contract.ScoredProblemEmbedding{
			Embedding:  r.mapper.ToEntity(&rows[i].ProblemEmbedding),
			Similarity: rows[i].Similarity,
		}
	}
	return scored, nil
}
