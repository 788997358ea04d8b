package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptTemplate struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Body        string         `gorm:"type:text;not null"`
	Preset      string         `gorm:"type:varchar(64);default:'exam'"`
	IsActive    bool           `gorm:"default:true"`
	SortOrder   int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}
