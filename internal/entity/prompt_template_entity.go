package entity

import (
	"time"

	"github.com/google/uuid"
)

// PromptTemplate is a reusable prompt body with {placeholder} slots.
type PromptTemplate struct {
	Id          uuid.UUID
	Name        string
	Description string
	Body        string
	Preset      string // Default output preset for this template
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
