package implementation

import (
	"context"
	"errors"

	"examgen-be/internal/entity"
	"examgen-be/internal/mapper"
	"examgen-be/internal/model"
	"examgen-be/internal/repository/contract"
	"examgen-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProblemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProblemMapper
}

func NewProblemRepository(db *gorm.DB) contract.ProblemRepository {
	return &ProblemRepositoryImpl{
		db:     db,
		mapper: mapper.NewProblemMapper(),
	}
}

func (r *ProblemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProblemRepositoryImpl) Create(ctx context.Context, problem *entity.Problem) error {
	m := r.mapper.ToModel(problem)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*problem = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProblemRepositoryImpl) Update(ctx context.Context, problem *entity.Problem) error {
	m := r.mapper.ToModel(problem)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*problem = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProblemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Problem{}, id).Error
}

func (r *ProblemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Problem, error) {
	var m model.Problem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProblemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Problem, error) {
	var models []*model.Problem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProblemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Problem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
