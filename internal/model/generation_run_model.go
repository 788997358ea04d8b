package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GenerationRun struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Stage         string         `gorm:"type:varchar(32);not null;index"`
	Parameters    datatypes.JSON `gorm:"type:jsonb"`
	Prompt        string         `gorm:"type:text"`
	ChunkCount    int            `gorm:"default:0"`
	RawOutput     string         `gorm:"type:text"`
	ProblemId     *uuid.UUID     `gorm:"type:uuid;index"`
	ArtifactRef   string         `gorm:"type:varchar(255)"`
	CompileFailed bool           `gorm:"default:false"`
	ErrorLog      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (GenerationRun) TableName() string {
	return "generation_runs"
}
