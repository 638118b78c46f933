package model

import "time"

type User struct {
	Username     string    `gorm:"type:varchar(64);primaryKey"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

type Session struct {
	AuthToken    string    `gorm:"type:char(64);primaryKey"`
	Username     string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	LastActiveAt time.Time `gorm:"not null"`
}

func (Session) TableName() string {
	return "sessions"
}
