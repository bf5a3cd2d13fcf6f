package service

import (
	"testing"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"github.com/stretchr/testify/require"
)

func testEngineConfig() *config.Config {
	return &config.Config{
		Engine: config.Engine{
			StopATRMultiplier:     2.0,
			TargetATRMultiplier:   3.0,
			LevelMaxATRDistance:   3.0,
			LevelNudgeATRFraction: 0.1,
			TrailATRMultiplier:    2.0,
			BreakevenATRTier:      1.5,
			PartialProfitATRTier:  3.0,
			MinRiskRewardRatio:    1.0,
			MinRiskPercentage:     0.005,
			MaxRiskPercentage:     0.10,
			MinAccountSize:        100,
			MaxAccountSize:        10000000,
			DefaultAccountSize:    10000,
			DefaultRiskPercentage: 0.02,
		},
	}
}

func newTestRiskEngine(t *testing.T) RiskEngineService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewRiskEngineService(testEngineConfig(), log)
}
