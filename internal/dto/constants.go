package dto

// Signal is a pre-computed directional call supplied by an external
// classifier. The engine copies it into plans verbatim and never second-guesses
// it.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

func (s Signal) Valid() bool {
	switch s {
	case SignalBuy, SignalSell, SignalHold:
		return true
	}
	return false
}

// Direction of an open position. Fixed for the lifetime of the position;
// flipping direction means closing and re-entering.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Recommendation is a staged profit-protection suggestion from the trailing
// stop engine. Only the highest applicable tier is ever returned.
type Recommendation string

const (
	RecommendationMoveStopToBreakeven   Recommendation = "MOVE_STOP_TO_BREAKEVEN"
	RecommendationConsiderPartialProfit Recommendation = "CONSIDER_PARTIAL_PROFIT"
)

func (r Recommendation) String() string {
	switch r {
	case RecommendationMoveStopToBreakeven:
		return "Move stop to breakeven"
	case RecommendationConsiderPartialProfit:
		return "Consider taking partial profit"
	default:
		return "Unknown"
	}
}

// PositionStatus classifies how an open position sits relative to its levels.
type PositionStatus string

const (
	PositionStatusOpen    PositionStatus = "open"
	PositionStatusStopped PositionStatus = "stopped"
	PositionStatusClosed  PositionStatus = "closed"
)
