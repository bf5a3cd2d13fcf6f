package service

import (
	"testing"

	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRiskService(t *testing.T) *riskService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return &riskService{cfg: testEngineConfig(), log: log}
}

func TestSizePosition(t *testing.T) {
	svc := newTestRiskService(t)

	type args struct {
		accountSize    float64
		riskPercentage float64
		entryPrice     float64
		stopLoss       float64
	}
	tests := []struct {
		name           string
		args           args
		wantShares     int64
		wantRiskAmount float64
		wantWarnings   int
		wantErr        error
	}{
		{
			name:           "whole budget fits exactly",
			args:           args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 50, stopLoss: 48},
			wantShares:     100,
			wantRiskAmount: 200,
			wantWarnings:   0,
		},
		{
			name:           "fractional shares round down",
			args:           args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 50, stopLoss: 48.5},
			wantShares:     133,
			wantRiskAmount: 199.5,
			wantWarnings:   0,
		},
		{
			name:           "short side stop above entry",
			args:           args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 50, stopLoss: 52},
			wantShares:     100,
			wantRiskAmount: 200,
			wantWarnings:   0,
		},
		{
			name:         "budget too small rounds to zero shares",
			args:         args{accountSize: 100, riskPercentage: 0.01, entryPrice: 500, stopLoss: 490},
			wantShares:   0,
			wantWarnings: 1,
		},
		{
			name:           "tight stop implies leverage",
			args:           args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 100, stopLoss: 99.9},
			wantShares:     2000,
			wantRiskAmount: 200,
			wantWarnings:   1,
		},
		{
			name:           "risk percentage above configured bound warns",
			args:           args{accountSize: 10000, riskPercentage: 0.5, entryPrice: 50, stopLoss: 40},
			wantShares:     500,
			wantRiskAmount: 5000,
			wantWarnings:   2, // leverage plus out-of-bounds risk
		},
		{
			name:    "stop equals entry",
			args:    args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 50, stopLoss: 50},
			wantErr: ErrDegenerateStop,
		},
		{
			name:    "stop within epsilon of entry",
			args:    args{accountSize: 10000, riskPercentage: 0.02, entryPrice: 50, stopLoss: 50 + 1e-12},
			wantErr: ErrDegenerateStop,
		},
		{
			name:    "zero account size",
			args:    args{accountSize: 0, riskPercentage: 0.02, entryPrice: 50, stopLoss: 48},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "risk percentage above one",
			args:    args{accountSize: 10000, riskPercentage: 1.5, entryPrice: 50, stopLoss: 48},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero risk percentage",
			args:    args{accountSize: 10000, riskPercentage: 0, entryPrice: 50, stopLoss: 48},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative entry price",
			args:    args{accountSize: 10000, riskPercentage: 0.02, entryPrice: -50, stopLoss: 48},
			wantErr: ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.sizePosition(tt.args.accountSize, tt.args.riskPercentage, tt.args.entryPrice, tt.args.stopLoss)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantShares, got.Shares)
			if tt.wantShares > 0 {
				assert.InDelta(t, tt.wantRiskAmount, got.RiskAmount, 1e-9)
			}
			assert.Len(t, got.Warnings, tt.wantWarnings)

			// Realized risk never exceeds the budget.
			assert.LessOrEqual(t, got.RiskAmount, tt.args.accountSize*tt.args.riskPercentage+1e-9)
		})
	}
}

func TestSizePosition_Deterministic(t *testing.T) {
	svc := newTestRiskService(t)

	first, err := svc.sizePosition(25000, 0.015, 87.35, 84.10)
	require.NoError(t, err)
	second, err := svc.sizePosition(25000, 0.015, 87.35, 84.10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
