package model

import (
	"time"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
)

// StockPosition is one open or closed position. The trailing-stop ratchet
// lives in the four Trailing* columns; the engine returns a fresh state each
// refresh and the position service writes it back here.
type StockPosition struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Symbol        string        `gorm:"not null;index" json:"symbol"`
	Direction     dto.Direction `gorm:"not null" json:"direction"`
	EntryPrice    float64       `gorm:"not null" json:"entry_price"`
	Shares        int64         `gorm:"not null" json:"shares"`
	ATRMultiplier float64       `gorm:"not null" json:"atr_multiplier"`

	FavorableExtremePrice float64 `gorm:"not null" json:"favorable_extreme_price"`
	CurrentTrailingStop   float64 `gorm:"not null" json:"current_trailing_stop"`
	TrailingInitialized   bool    `gorm:"not null;default:false" json:"trailing_initialized"`

	IsActive  *bool      `gorm:"not null" json:"is_active"`
	ExitPrice *float64   `json:"exit_price"`
	ExitDate  *time.Time `json:"exit_date"`
	OpenedAt  time.Time  `gorm:"not null" json:"opened_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StockPosition) TableName() string {
	return "stock_positions"
}

// TrailingState rebuilds the engine's state record from the persisted columns.
func (p *StockPosition) TrailingState() dto.TrailingStopState {
	return dto.TrailingStopState{
		Direction:             p.Direction,
		EntryPrice:            p.EntryPrice,
		ATRMultiplier:         p.ATRMultiplier,
		FavorableExtremePrice: p.FavorableExtremePrice,
		CurrentTrailingStop:   p.CurrentTrailingStop,
		Initialized:           p.TrailingInitialized,
	}
}

// ApplyTrailingState writes an engine-returned state back onto the row.
func (p *StockPosition) ApplyTrailingState(state dto.TrailingStopState) {
	p.FavorableExtremePrice = state.FavorableExtremePrice
	p.CurrentTrailingStop = state.CurrentTrailingStop
	p.TrailingInitialized = state.Initialized
}

type GetStockPositionsParam struct {
	IDs      []uint   `json:"ids"`
	Symbols  []string `json:"symbols"`
	IsActive *bool    `json:"is_active"`
}
