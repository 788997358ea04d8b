package implementation

import (
	"context"
	"errors"

	"examgen-be/internal/entity"
	"examgen-be/internal/mapper"
	"examgen-be/internal/model"
	"examgen-be/internal/repository/contract"
	"examgen-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenerationRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationRunMapper
}

func NewGenerationRunRepository(db *gorm.DB) contract.GenerationRunRepository {
	return &GenerationRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationRunMapper(),
	}
}

func (r *GenerationRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationRunRepositoryImpl) Save(ctx context.Context, run *entity.GenerationRun) error {
	m := r.mapper.ToModel(run)
	// Runs are keyed by session id and re-saved on retry, so upsert.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *GenerationRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationRun, error) {
	var m model.GenerationRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GenerationRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationRun, error) {
	var models []*model.GenerationRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GenerationRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GenerationRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
