package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckItem struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

type CreateProblemRequest struct {
	Stem            string      `json:"stem" validate:"required"`
	StemFormatted   string      `json:"stem_formatted"`
	SolutionOutline string      `json:"solution_outline"`
	Explanation     string      `json:"explanation"`
	AnswerBrief     string      `json:"answer_brief"`
	FinalAnswer     string      `json:"final_answer"`
	Checks          []CheckItem `json:"checks"`
	Difficulty      *float64    `json:"difficulty"`
	Confidence      *float64    `json:"confidence"`
	Subject         string      `json:"subject"`
	TemplateId      string      `json:"template_id"`
	SessionId       string      `json:"session_id"`
}

type CreateProblemResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProblemResponse struct {
	Id              uuid.UUID   `json:"id"`
	Stem            string      `json:"stem"`
	StemFormatted   string      `json:"stem_formatted,omitempty"`
	SolutionOutline string      `json:"solution_outline,omitempty"`
	Explanation     string      `json:"explanation,omitempty"`
	AnswerBrief     string      `json:"answer_brief,omitempty"`
	FinalAnswer     string      `json:"final_answer,omitempty"`
	Checks          []CheckItem `json:"checks"`
	Difficulty      *float64    `json:"difficulty,omitempty"`
	Confidence      *float64    `json:"confidence,omitempty"`
	Subject         string      `json:"subject,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at"`
}

// PublishEmbedProblemMessage is the in-process queue payload that asks the
// consumer to (re)index one problem.
type PublishEmbedProblemMessage struct {
	ProblemId uuid.UUID `json:"problem_id"`
}
