package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRisk() dto.RiskParameters {
	return dto.RiskParameters{AccountSize: 10000, RiskPercentage: 0.02}
}

func TestComputeOrderPlan_ATRFallback(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshot := dto.MarketSnapshot{
		Symbol:       "AAPL",
		CurrentPrice: 100,
		ATR:          2,
		Signal:       dto.SignalBuy,
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	assert.Equal(t, 100.0, plan.EntryPrice)
	assert.Equal(t, 96.0, plan.StopLoss)   // entry - 2x ATR
	assert.Equal(t, 106.0, plan.TakeProfit) // entry + 3x ATR
	assert.True(t, plan.RiskRewardDefined)
	assert.InDelta(t, 1.5, plan.RiskRewardRatio, 1e-9)
	assert.Equal(t, int64(50), plan.PositionSizeShares)
	assert.InDelta(t, 200.0, plan.RiskAmount, 1e-9)
	assert.Equal(t, dto.SignalBuy, plan.Recommendation)
	assert.Empty(t, plan.Warnings)

	require.Len(t, plan.Reasoning, 3)
	assert.Contains(t, plan.Reasoning[0], ruleSLATRFallback)
	assert.Contains(t, plan.Reasoning[1], ruleTPATRFallback)
}

func TestComputeOrderPlan_StructuralLevels(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshot := dto.MarketSnapshot{
		Symbol:            "MSFT",
		CurrentPrice:      100,
		ATR:               2,
		Signal:            dto.SignalBuy,
		NearestSupport:    utils.ToPointer(97.0),
		NearestResistance: utils.ToPointer(105.0),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	// Support within 3x ATR: stop nudged 0.1x ATR below it.
	assert.InDelta(t, 96.8, plan.StopLoss, 1e-9)
	// Resistance within 3x ATR: target nudged 0.1x ATR below it.
	assert.InDelta(t, 104.8, plan.TakeProfit, 1e-9)
	assert.Contains(t, plan.Reasoning[0], ruleSLSupport)
	assert.Contains(t, plan.Reasoning[1], ruleTPResistance)
}

func TestComputeOrderPlan_LevelTooFarFallsBack(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	// Support sits 7 below entry, past the 3x ATR = 6 ceiling.
	snapshot := dto.MarketSnapshot{
		Symbol:            "NVDA",
		CurrentPrice:      100,
		ATR:               2,
		Signal:            dto.SignalBuy,
		NearestSupport:    utils.ToPointer(93.0),
		NearestResistance: utils.ToPointer(115.0),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	assert.Equal(t, 96.0, plan.StopLoss)
	assert.Equal(t, 106.0, plan.TakeProfit)
	assert.Contains(t, plan.Reasoning[0], ruleSLATRFallback)
	assert.Contains(t, plan.Reasoning[1], ruleTPATRFallback)
}

func TestComputeOrderPlan_ShortBias(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshot := dto.MarketSnapshot{
		Symbol:            "TSLA",
		CurrentPrice:      100,
		ATR:               2,
		Signal:            dto.SignalSell,
		NearestSupport:    utils.ToPointer(95.0),
		NearestResistance: utils.ToPointer(103.0),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	// Short: stop above entry off resistance, target below entry off support.
	assert.InDelta(t, 103.2, plan.StopLoss, 1e-9)
	assert.InDelta(t, 95.2, plan.TakeProfit, 1e-9)
	assert.Greater(t, plan.StopLoss, plan.EntryPrice)
	assert.Less(t, plan.TakeProfit, plan.EntryPrice)
	assert.Contains(t, plan.Reasoning[0], ruleSLResistance)
	assert.Contains(t, plan.Reasoning[1], ruleTPSupport)
}

func TestComputeOrderPlan_LevelOrderingInvariant(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshots := []dto.MarketSnapshot{
		{CurrentPrice: 100, ATR: 2, Signal: dto.SignalBuy},
		{CurrentPrice: 100, ATR: 2, Signal: dto.SignalBuy, NearestSupport: utils.ToPointer(99.5)},
		{CurrentPrice: 100, ATR: 0.01, Signal: dto.SignalHold},
		{CurrentPrice: 3.5, ATR: 0.4, Signal: dto.SignalBuy, NearestResistance: utils.ToPointer(4.2)},
	}
	for _, snapshot := range snapshots {
		plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
		require.NoError(t, err)
		assert.Less(t, plan.StopLoss, plan.EntryPrice, "snapshot %+v", snapshot)
		assert.Greater(t, plan.TakeProfit, plan.EntryPrice, "snapshot %+v", snapshot)
	}
}

func TestComputeOrderPlan_ConfidencePassthrough(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshot := dto.MarketSnapshot{
		CurrentPrice: 100,
		ATR:          2,
		Signal:       dto.SignalHold,
		Confidence:   utils.ToPointer(0.65),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	assert.Equal(t, dto.SignalHold, plan.Recommendation)
	require.NotNil(t, plan.Confidence)
	assert.Equal(t, 0.65, *plan.Confidence)
}

func TestComputeOrderPlan_LowRiskRewardWarns(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	// Tight resistance caps the target while the stop falls back to 2x ATR,
	// pushing reward/risk below 1.
	snapshot := dto.MarketSnapshot{
		CurrentPrice:      100,
		ATR:               2,
		Signal:            dto.SignalBuy,
		NearestResistance: utils.ToPointer(101.0),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	assert.True(t, plan.RiskRewardDefined)
	assert.Less(t, plan.RiskRewardRatio, 1.0)

	found := false
	for _, w := range plan.Warnings {
		if strings.Contains(w, "risk/reward") {
			found = true
		}
	}
	assert.True(t, found, "expected a low risk/reward warning, got %v", plan.Warnings)
}

func TestComputeOrderPlan_InvalidInputs(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		snapshot dto.MarketSnapshot
		risk     dto.RiskParameters
	}{
		{
			name:     "zero price",
			snapshot: dto.MarketSnapshot{CurrentPrice: 0, ATR: 2, Signal: dto.SignalBuy},
			risk:     defaultRisk(),
		},
		{
			name:     "zero ATR",
			snapshot: dto.MarketSnapshot{CurrentPrice: 100, ATR: 0, Signal: dto.SignalBuy},
			risk:     defaultRisk(),
		},
		{
			name:     "negative ATR",
			snapshot: dto.MarketSnapshot{CurrentPrice: 100, ATR: -1, Signal: dto.SignalBuy},
			risk:     defaultRisk(),
		},
		{
			name:     "account size below supported range",
			snapshot: dto.MarketSnapshot{CurrentPrice: 100, ATR: 2, Signal: dto.SignalBuy},
			risk:     dto.RiskParameters{AccountSize: 50, RiskPercentage: 0.02},
		},
		{
			name:     "risk percentage above one",
			snapshot: dto.MarketSnapshot{CurrentPrice: 100, ATR: 2, Signal: dto.SignalBuy},
			risk:     dto.RiskParameters{AccountSize: 10000, RiskPercentage: 2},
		},
		{
			name: "support above price",
			snapshot: dto.MarketSnapshot{
				CurrentPrice:   100,
				ATR:            2,
				Signal:         dto.SignalBuy,
				NearestSupport: utils.ToPointer(101.0),
			},
			risk: defaultRisk(),
		},
		{
			name: "resistance below price",
			snapshot: dto.MarketSnapshot{
				CurrentPrice:      100,
				ATR:               2,
				Signal:            dto.SignalBuy,
				NearestResistance: utils.ToPointer(99.0),
			},
			risk: defaultRisk(),
		},
		{
			name: "confidence out of range",
			snapshot: dto.MarketSnapshot{
				CurrentPrice: 100,
				ATR:          2,
				Signal:       dto.SignalBuy,
				Confidence:   utils.ToPointer(1.2),
			},
			risk: defaultRisk(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := svc.ComputeOrderPlan(ctx, tt.snapshot, tt.risk)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, plan)
		})
	}
}

func TestComputeOrderPlan_RiskAmountMatchesStopDistance(t *testing.T) {
	svc := newTestRiskEngine(t)
	ctx := context.Background()

	snapshot := dto.MarketSnapshot{
		CurrentPrice:   54.3,
		ATR:            1.7,
		Signal:         dto.SignalBuy,
		NearestSupport: utils.ToPointer(52.0),
	}

	plan, err := svc.ComputeOrderPlan(ctx, snapshot, defaultRisk())
	require.NoError(t, err)

	perShareRisk := plan.EntryPrice - plan.StopLoss
	assert.InDelta(t, float64(plan.PositionSizeShares)*perShareRisk, plan.RiskAmount, 1e-9)
	assert.InDelta(t, float64(plan.PositionSizeShares)*plan.EntryPrice, plan.PositionValue, 1e-9)
}
