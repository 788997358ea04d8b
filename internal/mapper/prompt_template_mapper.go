package mapper

import (
	"time"

	"examgen-be/internal/entity"
	"examgen-be/internal/model"

	"gorm.io/gorm"
)

type PromptTemplateMapper struct{}

func NewPromptTemplateMapper() *PromptTemplateMapper {
	return &PromptTemplateMapper{}
}

func (m *PromptTemplateMapper) ToEntity(t *model.PromptTemplate) *entity.PromptTemplate {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		tm := t.DeletedAt.Time
		deletedAt = &tm
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		tm := t.UpdatedAt
		updatedAt = &tm
	}

	return &entity.PromptTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		Body:        t.Body,
		Preset:      t.Preset,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   t.DeletedAt.Valid,
	}
}

func (m *PromptTemplateMapper) ToModel(t *entity.PromptTemplate) *model.PromptTemplate {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.PromptTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Description: t.Description,
		Body:        t.Body,
		Preset:      t.Preset,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *PromptTemplateMapper) ToEntities(templates []*model.PromptTemplate) []*entity.PromptTemplate {
	entities := make([]*entity.PromptTemplate, len(templates))
	for i, t := range templates {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
