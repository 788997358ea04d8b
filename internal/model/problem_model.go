package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Problem struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Stem            string         `gorm:"type:text;not null"`
	StemFormatted   string         `gorm:"type:text"`
	SolutionOutline string         `gorm:"type:text"`
	Explanation     string         `gorm:"type:text"`
	AnswerBrief     string         `gorm:"type:text"`
	FinalAnswer     string         `gorm:"type:varchar(64)"`
	Checks          datatypes.JSON `gorm:"type:jsonb"`
	Difficulty      *float64       `gorm:"type:double precision"`
	Confidence      *float64       `gorm:"type:double precision"`
	Subject         string         `gorm:"type:varchar(255);index"`
	TemplateId      string         `gorm:"type:varchar(255)"`
	SessionId       string         `gorm:"type:varchar(64);index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Problem) TableName() string {
	return "problems"
}
