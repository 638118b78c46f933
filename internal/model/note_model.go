package model

import (
	"time"

	"gorm.io/datatypes"
)

type Note struct {
	SpaceSlug  string         `gorm:"type:varchar(64);primaryKey"`
	Number     int64          `gorm:"primaryKey;autoIncrement:false"`
	CreatedBy  string         `gorm:"type:varchar(64);not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	EditedAt   *time.Time
	ActivityAt time.Time      `gorm:"not null"`
	Fields     datatypes.JSON `gorm:"not null"`
}

func (Note) TableName() string {
	return "notes"
}

type Attachment struct {
	SpaceSlug  string    `gorm:"type:varchar(64);primaryKey"`
	Number     int64     `gorm:"primaryKey;autoIncrement:false"`
	NoteNumber *int64    `gorm:"index"`
	UploadedBy string    `gorm:"type:varchar(64);not null;index"`
	Filename   string    `gorm:"type:varchar(255);not null"`
	Size       int64     `gorm:"not null"`
	MimeType   string    `gorm:"type:varchar(127);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
