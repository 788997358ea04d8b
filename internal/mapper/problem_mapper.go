package mapper

import (
	"encoding/json"
	"time"

	"examgen-be/internal/entity"
	"examgen-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProblemMapper struct{}

func NewProblemMapper() *ProblemMapper {
	return &ProblemMapper{}
}

func (m *ProblemMapper) ToEntity(p *model.Problem) *entity.Problem {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var checks []entity.ProblemCheck
	if len(p.Checks) > 0 {
		// A row written by this service always holds a valid check array;
		// tolerate hand-edited rows by leaving checks empty.
		_ = json.Unmarshal(p.Checks, &checks)
	}

	return &entity.Problem{
		Id:              p.Id,
		Stem:            p.Stem,
		StemFormatted:   p.StemFormatted,
		SolutionOutline: p.SolutionOutline,
		Explanation:     p.Explanation,
		AnswerBrief:     p.AnswerBrief,
		FinalAnswer:     p.FinalAnswer,
		Checks:          checks,
		Difficulty:      p.Difficulty,
		Confidence:      p.Confidence,
		Subject:         p.Subject,
		TemplateId:      p.TemplateId,
		SessionId:       p.SessionId,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       p.DeletedAt.Valid,
	}
}

func (m *ProblemMapper) ToModel(p *entity.Problem) *model.Problem {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	checks := datatypes.JSON("[]")
	if p.Checks != nil {
		if raw, err := json.Marshal(p.Checks); err == nil {
			checks = raw
		}
	}

	return &model.Problem{
		Id:              p.Id,
		Stem:            p.Stem,
		StemFormatted:   p.StemFormatted,
		SolutionOutline: p.SolutionOutline,
		Explanation:     p.Explanation,
		AnswerBrief:     p.AnswerBrief,
		FinalAnswer:     p.FinalAnswer,
		Checks:          checks,
		Difficulty:      p.Difficulty,
		Confidence:      p.Confidence,
		Subject:         p.Subject,
		TemplateId:      p.TemplateId,
		SessionId:       p.SessionId,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *ProblemMapper) ToEntities(problems []*model.Problem) []*entity.Problem {
	entities := make([]*entity.Problem, len(problems))
	for i, p := range problems {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
