package model

import (
	"time"

	"gorm.io/gorm"
)

type TrackedStock struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Symbol    string         `gorm:"not null;uniqueIndex" json:"symbol"`
	Exchange  string         `gorm:"not null" json:"exchange"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

func (TrackedStock) TableName() string {
	return "tracked_stocks"
}
