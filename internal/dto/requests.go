package dto

// ComputeOrderPlanRequest carries every engine input over HTTP. Market fields
// may be omitted, in which case the server fills them from live market data
// for the symbol.
type ComputeOrderPlanRequest struct {
	Symbol            string   `json:"symbol" validate:"required"`
	AccountSize       float64  `json:"account_size" validate:"required,gt=0"`
	RiskPercentage    float64  `json:"risk_percentage" validate:"required,gt=0,lte=1"`
	CurrentPrice      *float64 `json:"current_price,omitempty" validate:"omitempty,gt=0"`
	ATR               *float64 `json:"atr,omitempty" validate:"omitempty,gte=0"`
	NearestSupport    *float64 `json:"nearest_support,omitempty" validate:"omitempty,gt=0"`
	NearestResistance *float64 `json:"nearest_resistance,omitempty" validate:"omitempty,gt=0"`
	Signal            Signal   `json:"signal,omitempty" validate:"omitempty,oneof=BUY SELL HOLD"`
	Confidence        *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// ComputeTrailingStopRequest computes a one-off trailing stop without touching
// any stored position. PriorState is optional; when absent a fresh ratchet is
// initialized from the entry and current prices.
type ComputeTrailingStopRequest struct {
	Direction     Direction          `json:"direction" validate:"required,oneof=LONG SHORT"`
	EntryPrice    float64            `json:"entry_price" validate:"required,gt=0"`
	CurrentPrice  float64            `json:"current_price" validate:"required,gt=0"`
	ATR           float64            `json:"atr" validate:"gte=0"`
	ATRMultiplier float64            `json:"atr_multiplier" validate:"required,gt=0"`
	PriorState    *TrailingStopState `json:"prior_state,omitempty"`
}

type TrackStockRequest struct {
	Symbol   string `json:"symbol" validate:"required,min=1,max=12"`
	Exchange string `json:"exchange" validate:"omitempty,oneof=NASDAQ NYSE"`
}

type OpenPositionRequest struct {
	Symbol        string    `json:"symbol" validate:"required,min=1,max=12"`
	Direction     Direction `json:"direction" validate:"required,oneof=LONG SHORT"`
	EntryPrice    float64   `json:"entry_price" validate:"required,gt=0"`
	Shares        int64     `json:"shares" validate:"required,gt=0"`
	ATRMultiplier float64   `json:"atr_multiplier" validate:"omitempty,gt=0"`
}

type ClosePositionRequest struct {
	ExitPrice float64 `json:"exit_price" validate:"required,gt=0"`
}
