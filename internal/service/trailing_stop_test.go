package service

import (
	"context"
	"testing"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrailingStopState(t *testing.T) {
	svc := newTestRiskEngine(t)

	tests := []struct {
		name          string
		direction     dto.Direction
		entryPrice    float64
		atrMultiplier float64
		wantErr       error
	}{
		{
			name:          "valid long",
			direction:     dto.DirectionLong,
			entryPrice:    100,
			atrMultiplier: 2.0,
		},
		{
			name:          "valid short",
			direction:     dto.DirectionShort,
			entryPrice:    55.5,
			atrMultiplier: 1.5,
		},
		{
			name:          "unknown direction",
			direction:     "SIDEWAYS",
			entryPrice:    100,
			atrMultiplier: 2.0,
			wantErr:       ErrInvalidInput,
		},
		{
			name:          "zero entry price",
			direction:     dto.DirectionLong,
			entryPrice:    0,
			atrMultiplier: 2.0,
			wantErr:       ErrInvalidInput,
		},
		{
			name:          "negative multiplier",
			direction:     dto.DirectionLong,
			entryPrice:    100,
			atrMultiplier: -1,
			wantErr:       ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := svc.NewTrailingStopState(tt.direction, tt.entryPrice, tt.atrMultiplier)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.direction, state.Direction)
			assert.Equal(t, tt.entryPrice, state.EntryPrice)
			assert.Equal(t, tt.entryPrice, state.FavorableExtremePrice)
			assert.False(t, state.Initialized)
		})
	}
}

func TestComputeTrailingStop_LongScenario(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 1.0)
	require.NoError(t, err)

	state, result, err := svc.ComputeTrailingStop(ctx, state, 110, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 110.0, state.FavorableExtremePrice)
	assert.Equal(t, 108.0, state.CurrentTrailingStop)
	assert.Equal(t, 108.0, result.TrailingStop)
	assert.Equal(t, 10.0, result.Profit)
	assert.True(t, result.ProfitATRDefined)
	assert.Equal(t, 5.0, result.ProfitATRMultiple)
	assert.Equal(t, dto.RecommendationConsiderPartialProfit, result.Recommendation)
	assert.False(t, result.Stopped)
	assert.False(t, result.ZeroVolatility)
}

func TestComputeTrailingStop_MonotonicRatchetLong(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 2.0)
	require.NoError(t, err)

	prices := []float64{100, 102, 105, 103, 108, 104, 104, 120}
	prevStop := 0.0
	for i, price := range prices {
		var result *dto.TrailingStopResult
		state, result, err = svc.ComputeTrailingStop(ctx, state, price, 1.5)
		require.NoError(t, err)
		if i > 0 {
			assert.GreaterOrEqual(t, result.TrailingStop, prevStop,
				"stop regressed at price %.2f", price)
		}
		prevStop = result.TrailingStop
	}

	// Extreme is the running high, stop trails it by 2 * 1.5.
	assert.Equal(t, 120.0, state.FavorableExtremePrice)
	assert.Equal(t, 117.0, state.CurrentTrailingStop)
}

func TestComputeTrailingStop_MonotonicRatchetShort(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionShort, 100, 2.0)
	require.NoError(t, err)

	prices := []float64{100, 98, 95, 97, 92, 96}
	prevStop := 0.0
	for i, price := range prices {
		var result *dto.TrailingStopResult
		state, result, err = svc.ComputeTrailingStop(ctx, state, price, 1.0)
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, result.TrailingStop, prevStop,
				"stop regressed at price %.2f", price)
		}
		prevStop = result.TrailingStop
	}

	assert.Equal(t, 92.0, state.FavorableExtremePrice)
	assert.Equal(t, 94.0, state.CurrentTrailingStop)
}

func TestComputeTrailingStop_WideningATRDoesNotLowerStop(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 1.0)
	require.NoError(t, err)

	state, _, err = svc.ComputeTrailingStop(ctx, state, 110, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 108.0, state.CurrentTrailingStop)

	// Same price, ATR triples: the raw candidate 104 must not displace 108.
	state, result, err := svc.ComputeTrailingStop(ctx, state, 110, 6.0)
	require.NoError(t, err)
	assert.Equal(t, 108.0, result.TrailingStop)
}

func TestComputeTrailingStop_ZeroATR(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 2.0)
	require.NoError(t, err)

	state, result, err := svc.ComputeTrailingStop(ctx, state, 105, 0)
	require.NoError(t, err)

	// Degenerate mode: stop collapses onto the favorable extreme.
	assert.Equal(t, 105.0, result.TrailingStop)
	assert.True(t, result.ZeroVolatility)
	assert.False(t, result.ProfitATRDefined)
	assert.Empty(t, result.Recommendation)
	assert.True(t, result.Stopped)
	assert.Equal(t, 105.0, state.CurrentTrailingStop)
}

func TestComputeTrailingStop_RecommendationTiers(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	// Entry 100, ATR 2, multiplier chosen large so the stop never triggers.
	tests := []struct {
		name  string
		price float64
		want  dto.Recommendation
	}{
		{name: "below breakeven tier", price: 102.98, want: ""},
		{name: "exactly breakeven tier", price: 103.00, want: dto.RecommendationMoveStopToBreakeven},
		{name: "just above breakeven tier", price: 103.02, want: dto.RecommendationMoveStopToBreakeven},
		{name: "just below partial tier", price: 105.98, want: dto.RecommendationMoveStopToBreakeven},
		{name: "exactly partial tier", price: 106.00, want: dto.RecommendationConsiderPartialProfit},
		{name: "just above partial tier", price: 106.02, want: dto.RecommendationConsiderPartialProfit},
		{name: "far above partial tier", price: 140.00, want: dto.RecommendationConsiderPartialProfit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 50)
			require.NoError(t, err)
			_, result, err := svc.ComputeTrailingStop(ctx, state, tt.price, 2.0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Recommendation)
		})
	}
}

func TestComputeTrailingStop_StoppedDetection(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 1.0)
	require.NoError(t, err)

	state, result, err := svc.ComputeTrailingStop(ctx, state, 110, 2.0)
	require.NoError(t, err)
	assert.False(t, result.Stopped)

	// Pullback to the stop level.
	state, result, err = svc.ComputeTrailingStop(ctx, state, 108, 2.0)
	require.NoError(t, err)
	assert.True(t, result.Stopped)

	// Pullback through the stop level.
	_, result, err = svc.ComputeTrailingStop(ctx, state, 101, 2.0)
	require.NoError(t, err)
	assert.True(t, result.Stopped)
	assert.Equal(t, 108.0, result.TrailingStop)
}

func TestComputeTrailingStop_ShortProfitSign(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	state, err := svc.NewTrailingStopState(dto.DirectionShort, 100, 1.0)
	require.NoError(t, err)

	_, result, err := svc.ComputeTrailingStop(ctx, state, 94, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 6.0, result.Profit)
	assert.Equal(t, 3.0, result.ProfitATRMultiple)
	assert.Equal(t, dto.RecommendationConsiderPartialProfit, result.Recommendation)
	assert.Equal(t, 96.0, result.TrailingStop)
}

func TestComputeTrailingStop_InputNotMutated(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	original, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 2.0)
	require.NoError(t, err)
	before := original

	next, _, err := svc.ComputeTrailingStop(ctx, original, 120, 2.0)
	require.NoError(t, err)

	assert.Equal(t, before, original)
	assert.NotEqual(t, original.CurrentTrailingStop, next.CurrentTrailingStop)
}

func TestComputeTrailingStop_InvalidInputs(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	valid, err := svc.NewTrailingStopState(dto.DirectionLong, 100, 2.0)
	require.NoError(t, err)

	tests := []struct {
		name         string
		state        dto.TrailingStopState
		currentPrice float64
		atr          float64
	}{
		{name: "negative ATR", state: valid, currentPrice: 100, atr: -0.5},
		{name: "zero current price", state: valid, currentPrice: 0, atr: 1},
		{name: "negative current price", state: valid, currentPrice: -10, atr: 1},
		{
			name:         "corrupt direction",
			state:        dto.TrailingStopState{Direction: "UP", EntryPrice: 100, ATRMultiplier: 2},
			currentPrice: 100,
			atr:          1,
		},
		{
			name:         "zero multiplier",
			state:        dto.TrailingStopState{Direction: dto.DirectionLong, EntryPrice: 100},
			currentPrice: 100,
			atr:          1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result, err := svc.ComputeTrailingStop(ctx, tt.state, tt.currentPrice, tt.atr)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}
