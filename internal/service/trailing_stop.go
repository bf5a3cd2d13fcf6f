package service

import (
	"context"
	"fmt"
	"math"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
)

// NewTrailingStopState opens a fresh ratchet for one position. Direction and
// entry price are fixed for the life of the state; flipping direction means
// closing the position and opening a new state.
func (s *riskService) NewTrailingStopState(direction dto.Direction, entryPrice, atrMultiplier float64) (dto.TrailingStopState, error) {
	if !direction.Valid() {
		return dto.TrailingStopState{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}
	if entryPrice <= 0 {
		return dto.TrailingStopState{}, fmt.Errorf("%w: entry price must be positive, got %.4f", ErrInvalidInput, entryPrice)
	}
	if atrMultiplier <= 0 {
		return dto.TrailingStopState{}, fmt.Errorf("%w: ATR multiplier must be positive, got %.4f", ErrInvalidInput, atrMultiplier)
	}

	return dto.TrailingStopState{
		Direction:             direction,
		EntryPrice:            entryPrice,
		ATRMultiplier:         atrMultiplier,
		FavorableExtremePrice: entryPrice,
	}, nil
}

// ComputeTrailingStop advances the ratchet with a fresh price and ATR and
// returns the new state plus the computed result. The input state is never
// mutated; the caller stores the returned value and supplies it on the next
// call.
//
// The stop is monotonic: for LONG it only ever rises, for SHORT it only ever
// falls, even when a widening ATR would push the raw candidate the other way.
// ATR of exactly zero is a supported degenerate mode where the stop collapses
// onto the favorable extreme; a negative ATR is rejected.
func (s *riskService) ComputeTrailingStop(ctx context.Context, state dto.TrailingStopState, currentPrice, atr float64) (dto.TrailingStopState, *dto.TrailingStopResult, error) {
	if !state.Direction.Valid() {
		return state, nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, state.Direction)
	}
	if state.EntryPrice <= 0 {
		return state, nil, fmt.Errorf("%w: entry price must be positive, got %.4f", ErrInvalidInput, state.EntryPrice)
	}
	if currentPrice <= 0 {
		return state, nil, fmt.Errorf("%w: current price must be positive, got %.4f", ErrInvalidInput, currentPrice)
	}
	if state.ATRMultiplier <= 0 {
		return state, nil, fmt.Errorf("%w: ATR multiplier must be positive, got %.4f", ErrInvalidInput, state.ATRMultiplier)
	}
	if atr < 0 {
		return state, nil, fmt.Errorf("%w: ATR must be non-negative, got %.4f", ErrInvalidInput, atr)
	}

	next := state
	long := state.Direction == dto.DirectionLong

	if next.FavorableExtremePrice == 0 {
		next.FavorableExtremePrice = next.EntryPrice
	}
	if long {
		next.FavorableExtremePrice = math.Max(next.FavorableExtremePrice, currentPrice)
	} else {
		next.FavorableExtremePrice = math.Min(next.FavorableExtremePrice, currentPrice)
	}

	trailDistance := state.ATRMultiplier * atr
	candidate := next.FavorableExtremePrice - trailDistance
	if !long {
		candidate = next.FavorableExtremePrice + trailDistance
	}

	// Ratchet: compare-and-raise for LONG, compare-and-lower for SHORT. The
	// first update simply adopts the candidate.
	if !next.Initialized {
		next.CurrentTrailingStop = candidate
		next.Initialized = true
	} else if long {
		next.CurrentTrailingStop = math.Max(next.CurrentTrailingStop, candidate)
	} else {
		next.CurrentTrailingStop = math.Min(next.CurrentTrailingStop, candidate)
	}

	profit := currentPrice - state.EntryPrice
	if !long {
		profit = state.EntryPrice - currentPrice
	}

	result := &dto.TrailingStopResult{
		TrailingStop:   next.CurrentTrailingStop,
		Profit:         profit,
		ATR:            atr,
		ZeroVolatility: atr == 0,
	}

	if atr > 0 {
		result.ProfitATRMultiple = profit / atr
		result.ProfitATRDefined = true
		result.Recommendation = s.stageRecommendation(result.ProfitATRMultiple)
	}

	if long {
		result.Stopped = currentPrice <= next.CurrentTrailingStop
	} else {
		result.Stopped = currentPrice >= next.CurrentTrailingStop
	}

	return next, result, nil
}

// stageRecommendation returns only the highest applicable tier.
func (s *riskService) stageRecommendation(profitATRMultiple float64) dto.Recommendation {
	engineCfg := s.cfg.Engine
	switch {
	case profitATRMultiple >= engineCfg.PartialProfitATRTier:
		return dto.RecommendationConsiderPartialProfit
	case profitATRMultiple >= engineCfg.BreakevenATRTier:
		return dto.RecommendationMoveStopToBreakeven
	default:
		return ""
	}
}
