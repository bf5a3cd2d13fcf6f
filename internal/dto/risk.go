package dto

// RiskParameters is the account-side input to position sizing.
type RiskParameters struct {
	AccountSize    float64 `json:"account_size"`
	RiskPercentage float64 `json:"risk_percentage"` // fraction of account risked per trade, e.g. 0.02
}

// OrderPlan is the full risk-bounded order recommendation for one symbol.
// Derived, never persisted; warnings and reasoning are ordered.
type OrderPlan struct {
	Recommendation     Signal   `json:"recommendation"`
	Confidence         *float64 `json:"confidence,omitempty"`
	CurrentPrice       float64  `json:"current_price"`
	EntryPrice         float64  `json:"entry_price"`
	StopLoss           float64  `json:"stop_loss"`
	StopLossPct        float64  `json:"stop_loss_pct"`
	TakeProfit         float64  `json:"take_profit"`
	TakeProfitPct      float64  `json:"take_profit_pct"`
	RiskRewardRatio    float64  `json:"risk_reward_ratio"`
	RiskRewardDefined  bool     `json:"risk_reward_defined"`
	PositionSizeShares int64    `json:"position_size_shares"`
	PositionValue      float64  `json:"position_value"`
	RiskAmount         float64  `json:"risk_amount"`
	NearestSupport     *float64 `json:"nearest_support,omitempty"`
	NearestResistance  *float64 `json:"nearest_resistance,omitempty"`
	ATR                float64  `json:"atr,omitempty"`
	Warnings           []string `json:"warnings"`
	Reasoning          []string `json:"reasoning"`
}

// SizingResult is the PositionSizer output.
type SizingResult struct {
	Shares     int64    `json:"shares"`
	RiskAmount float64  `json:"risk_amount"`
	Warnings   []string `json:"warnings"`
}

// TrailingStopState is the single piece of carried state in the whole engine:
// the ratchet for one open position. It is an immutable value; every update
// returns a fresh one and the caller stores it.
type TrailingStopState struct {
	Direction             Direction `json:"direction"`
	EntryPrice            float64   `json:"entry_price"`
	ATRMultiplier         float64   `json:"atr_multiplier"`
	FavorableExtremePrice float64   `json:"favorable_extreme_price"` // highest seen for LONG, lowest for SHORT
	CurrentTrailingStop   float64   `json:"current_trailing_stop"`
	Initialized           bool      `json:"initialized"`
}

// TrailingStopResult reports one trailing-stop recomputation.
type TrailingStopResult struct {
	TrailingStop      float64        `json:"trailing_stop"`
	Profit            float64        `json:"profit"`
	ProfitATRMultiple float64        `json:"profit_atr_multiple"`
	ProfitATRDefined  bool           `json:"profit_atr_defined"`
	ATR               float64        `json:"atr"`
	ZeroVolatility    bool           `json:"zero_volatility"`
	Recommendation    Recommendation `json:"recommendation,omitempty"`
	Stopped           bool           `json:"stopped"` // price at or through the stop
}

// DashboardEntry is one tracked symbol's aggregated view.
type DashboardEntry struct {
	Symbol       string     `json:"symbol"`
	CurrentPrice float64    `json:"current_price"`
	ATR          float64    `json:"atr"`
	Plan         *OrderPlan `json:"plan,omitempty"`
	Error        string     `json:"error,omitempty"`
}

type DashboardSummary struct {
	Entries []DashboardEntry `json:"entries"`
	Tracked int              `json:"tracked"`
	Failed  int              `json:"failed"`
}
