package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/contract"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/repository"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/cache"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/common"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"
)

// swingWindow is the number of candles on each side a pivot must dominate.
const swingWindow = 2

type MarketDataService interface {
	contract.MarketDataContract
}

type marketDataService struct {
	cfg       *config.Config
	log       *logger.Logger
	yahooRepo repository.YahooFinanceRepository
	cache     cache.Cache
}

func NewMarketDataService(cfg *config.Config, log *logger.Logger, yahooRepo repository.YahooFinanceRepository, inmemoryCache cache.Cache) MarketDataService {
	return &marketDataService{
		cfg:       cfg,
		log:       log,
		yahooRepo: yahooRepo,
		cache:     inmemoryCache,
	}
}

// GetMarketContext fetches daily candles for the symbol and derives the
// engine inputs: last price, Wilder-smoothed ATR and swing-point
// support/resistance levels. Results are cached briefly so dashboard fan-out
// and position refreshes do not hammer the quote API.
func (s *marketDataService) GetMarketContext(ctx context.Context, symbol string) (*dto.MarketContext, error) {
	cacheKey := fmt.Sprintf(common.KEY_MARKET_CONTEXT, symbol)
	if cached, found := cache.GetTyped[*dto.MarketContext](s.cache, cacheKey); found {
		return cached, nil
	}

	data, err := s.yahooRepo.Get(ctx, dto.GetStockDataParam{
		Symbol:   symbol,
		Interval: "1d",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get market data for %s: %w", symbol, err)
	}

	atr := s.calculateATR(data.OHLCV, s.cfg.YahooFinance.ATRPeriod)
	supports, resistances := s.detectSwingLevels(data.OHLCV, data.MarketPrice, atr)

	result := &dto.MarketContext{
		Symbol:       symbol,
		CurrentPrice: data.MarketPrice,
		ATR:          atr,
		Supports:     supports,
		Resistances:  resistances,
		OHLCV:        data.OHLCV,
	}

	s.cache.Set(cacheKey, result, s.cfg.Cache.QuoteExpiration)
	s.cache.Set(fmt.Sprintf(common.KEY_LAST_QUOTE, symbol), data.MarketPrice, s.cfg.Cache.QuoteExpiration)

	return result, nil
}

// calculateATR uses Wilder's smoothing over true ranges.
func (s *marketDataService) calculateATR(candles []dto.StockOHLCV, period int) float64 {
	if len(candles) <= period {
		return 0 // Not enough data
	}

	trueRanges := make([]float64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		high := candles[i].High
		low := candles[i].Low
		prevClose := candles[i-1].Close

		tr1 := high - low
		tr2 := math.Abs(high - prevClose)
		tr3 := math.Abs(low - prevClose)

		trueRanges[i-1] = math.Max(tr1, math.Max(tr2, tr3))
	}

	atr := 0.0
	for i := 0; i < period; i++ {
		atr += trueRanges[i]
	}
	atr /= float64(period)

	for i := period; i < len(trueRanges); i++ {
		atr = (atr*float64(period-1) + trueRanges[i]) / float64(period)
	}

	return atr
}

// detectSwingLevels finds pivot highs/lows that dominate swingWindow candles
// on both sides, then clusters pivots closer than half an ATR into one level
// with a touch count. Supports sit below the market price, resistances above.
func (s *marketDataService) detectSwingLevels(candles []dto.StockOHLCV, marketPrice, atr float64) ([]dto.Level, []dto.Level) {
	var pivotHighs, pivotLows []float64

	for i := swingWindow; i < len(candles)-swingWindow; i++ {
		isHigh, isLow := true, true
		for j := i - swingWindow; j <= i+swingWindow; j++ {
			if j == i {
				continue
			}
			if candles[j].High >= candles[i].High {
				isHigh = false
			}
			if candles[j].Low <= candles[i].Low {
				isLow = false
			}
		}
		if isHigh {
			pivotHighs = append(pivotHighs, candles[i].High)
		}
		if isLow {
			pivotLows = append(pivotLows, candles[i].Low)
		}
	}

	tolerance := atr / 2
	if tolerance <= 0 {
		tolerance = marketPrice * 0.005
	}

	var supports, resistances []dto.Level
	for _, level := range clusterLevels(pivotLows, tolerance) {
		if level.Price <= marketPrice {
			supports = append(supports, level)
		}
	}
	for _, level := range clusterLevels(pivotHighs, tolerance) {
		if level.Price >= marketPrice {
			resistances = append(resistances, level)
		}
	}

	return supports, resistances
}

func clusterLevels(pivots []float64, tolerance float64) []dto.Level {
	if len(pivots) == 0 {
		return nil
	}

	sorted := make([]float64, len(pivots))
	copy(sorted, pivots)
	sort.Float64s(sorted)

	var levels []dto.Level
	clusterSum := sorted[0]
	clusterCount := 1

	flush := func() {
		levels = append(levels, dto.Level{
			Price:   clusterSum / float64(clusterCount),
			Touches: clusterCount,
		})
	}

	for _, price := range sorted[1:] {
		mean := clusterSum / float64(clusterCount)
		if price-mean <= tolerance {
			clusterSum += price
			clusterCount++
			continue
		}
		flush()
		clusterSum = price
		clusterCount = 1
	}
	flush()

	return levels
}
