package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Transcript struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceURL    string         `gorm:"type:varchar(512);not null;uniqueIndex"`
	Platform     string         `gorm:"type:varchar(32);not null"`
	VideoId      string         `gorm:"type:varchar(64);index"`
	Title        string         `gorm:"type:varchar(255)"`
	Channel      string         `gorm:"type:varchar(255)"`
	DurationSecs float64        `gorm:"default:0"`
	Language     string         `gorm:"type:varchar(16)"`
	Text         string         `gorm:"type:text"`
	Summary      string         `gorm:"type:text"`
	WordCount    int            `gorm:"default:0"`
	Segments     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Transcript) TableName() string {
	return "transcripts"
}
