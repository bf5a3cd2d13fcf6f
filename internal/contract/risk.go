package contract

import (
	"context"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
)

// RiskEngineContract is the pure calculator surface exposed to any host. No
// call here performs I/O; the only state that ever changes hands is the
// trailing-stop ratchet, returned as a fresh value each call.
type RiskEngineContract interface {
	ComputeOrderPlan(ctx context.Context, snapshot dto.MarketSnapshot, risk dto.RiskParameters) (*dto.OrderPlan, error)
	ComputeTrailingStop(ctx context.Context, state dto.TrailingStopState, currentPrice, atr float64) (dto.TrailingStopState, *dto.TrailingStopResult, error)
	NewTrailingStopState(direction dto.Direction, entryPrice, atrMultiplier float64) (dto.TrailingStopState, error)
}
