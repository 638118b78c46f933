package model

import (
	"time"

	"gorm.io/datatypes"
)

type Space struct {
	Slug        string         `gorm:"type:varchar(64);primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	FieldSchema datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Space) TableName() string {
	return "spaces"
}

type SpaceMember struct {
	SpaceSlug string    `gorm:"type:varchar(64);primaryKey"`
	Username  string    `gorm:"type:varchar(64);primaryKey;index"`
	AddedAt   time.Time `gorm:"autoCreateTime"`
}

func (SpaceMember) TableName() string {
	return "space_members"
}

// SpaceSequence backs the per-space allocator. One row per (space, kind),
// locked FOR UPDATE while a number is being drawn.
type SpaceSequence struct {
	SpaceSlug string `gorm:"type:varchar(64);primaryKey"`
	Kind      string `gorm:"type:varchar(16);primaryKey"`
	Value     int64  `gorm:"not null"`
}

func (SpaceSequence) TableName() string {
	return "space_sequences"
}
