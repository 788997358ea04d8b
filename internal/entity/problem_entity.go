package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProblemCheck is one verification step attached to a problem. Placeholder
// checks are inserted when the model returned fewer than the minimum.
type ProblemCheck struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

type Problem struct {
	Id              uuid.UUID
	Stem            string
	StemFormatted   string
	SolutionOutline string
	Explanation     string
	AnswerBrief     string
	FinalAnswer     string
	Checks          []ProblemCheck
	Difficulty      *float64
	Confidence      *float64
	Subject         string
	TemplateId      string
	SessionId       string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
