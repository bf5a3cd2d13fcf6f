package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PositionMonitoring is one trailing-stop refresh snapshot. The engine result
// is stored verbatim as JSON so the history of stops and recommendations can
// be replayed.
type PositionMonitoring struct {
	ID              uint           `gorm:"primaryKey"`
	StockPositionID uint           `gorm:"not null;index"`
	MarketPrice     float64        `gorm:"not null"`
	TrailingStop    float64        `gorm:"not null"`
	Result          datatypes.JSON `gorm:"type:jsonb"`
	Timestamp       time.Time      `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt

	StockPosition StockPosition `gorm:"foreignKey:StockPositionID"`
}

func (PositionMonitoring) TableName() string {
	return "position_monitorings"
}

type PositionMonitoringQueryParam struct {
	StockPositionID uint `json:"stock_position_id"`
	Limit           *int `json:"limit"`
}
