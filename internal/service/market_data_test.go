package service

import (
	"testing"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMarketDataService(t *testing.T) *marketDataService {
	t.Helper()
	cfg := testEngineConfig()
	cfg.YahooFinance.ATRPeriod = 14
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return &marketDataService{cfg: cfg, log: log}
}

func flatCandles(n int, rangeSize float64) []dto.StockOHLCV {
	candles := make([]dto.StockOHLCV, n)
	for i := range candles {
		candles[i] = dto.StockOHLCV{
			Open:  100,
			High:  100 + rangeSize/2,
			Low:   100 - rangeSize/2,
			Close: 100,
		}
	}
	return candles
}

func TestCalculateATR(t *testing.T) {
	svc := newTestMarketDataService(t)

	t.Run("not enough candles returns zero", func(t *testing.T) {
		atr := svc.calculateATR(flatCandles(14, 2), 14)
		assert.Equal(t, 0.0, atr)
	})

	t.Run("constant range converges to the range", func(t *testing.T) {
		atr := svc.calculateATR(flatCandles(60, 2), 14)
		assert.InDelta(t, 2.0, atr, 1e-9)
	})

	t.Run("gap widens the true range", func(t *testing.T) {
		candles := flatCandles(20, 2)
		// One candle gapping well above the prior close.
		candles[19] = dto.StockOHLCV{Open: 110, High: 111, Low: 109, Close: 110}
		withGap := svc.calculateATR(candles, 14)
		flat := svc.calculateATR(flatCandles(20, 2), 14)
		assert.Greater(t, withGap, flat)
	})
}

func TestClusterLevels(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, clusterLevels(nil, 1))
	})

	t.Run("nearby pivots merge with touch count", func(t *testing.T) {
		levels := clusterLevels([]float64{99.8, 100.0, 100.2, 110.0}, 0.5)
		require.Len(t, levels, 2)
		assert.InDelta(t, 100.0, levels[0].Price, 1e-9)
		assert.Equal(t, 3, levels[0].Touches)
		assert.InDelta(t, 110.0, levels[1].Price, 1e-9)
		assert.Equal(t, 1, levels[1].Touches)
	})

	t.Run("distant pivots stay separate", func(t *testing.T) {
		levels := clusterLevels([]float64{90, 100, 110}, 0.5)
		assert.Len(t, levels, 3)
	})
}

func TestDetectSwingLevels(t *testing.T) {
	svc := newTestMarketDataService(t)

	// A valley at index 3 and a peak at index 8, flat elsewhere.
	candles := flatCandles(12, 2)
	candles[3] = dto.StockOHLCV{Open: 100, High: 100.5, Low: 95, Close: 100}
	candles[8] = dto.StockOHLCV{Open: 100, High: 107, Low: 99.5, Close: 100}

	supports, resistances := svc.detectSwingLevels(candles, 100, 1.0)

	require.Len(t, supports, 1)
	assert.InDelta(t, 95.0, supports[0].Price, 1e-9)

	require.Len(t, resistances, 1)
	assert.InDelta(t, 107.0, resistances[0].Price, 1e-9)
}

func TestMarketContextSnapshot(t *testing.T) {
	mc := &dto.MarketContext{
		Symbol:       "AAPL",
		CurrentPrice: 100,
		ATR:          2,
		Supports: []dto.Level{
			{Price: 90, Touches: 2},
			{Price: 97, Touches: 3},
		},
		Resistances: []dto.Level{
			{Price: 112, Touches: 1},
			{Price: 104, Touches: 2},
		},
	}

	snapshot := mc.Snapshot()

	require.NotNil(t, snapshot.NearestSupport)
	assert.Equal(t, 97.0, *snapshot.NearestSupport)
	require.NotNil(t, snapshot.NearestResistance)
	assert.Equal(t, 104.0, *snapshot.NearestResistance)
	assert.Equal(t, "AAPL", snapshot.Symbol)
	assert.Equal(t, 2.0, snapshot.ATR)
}
