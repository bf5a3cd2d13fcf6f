package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/httpclient"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"golang.org/x/time/rate"
)

type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	mu             sync.Mutex
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	r.mu.Lock()
	if !r.requestLimiter.Allow() {
		r.logger.WarnContext(ctx, "Yahoo Finance API request limit exceeded, waiting",
			logger.IntField("max_request_per_minute", r.cfg.YahooFinance.MaxRequestPerMinute),
		)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()

	endpoint := "/" + param.Symbol

	period2 := time.Now().Unix()
	period1 := time.Now().AddDate(0, 0, -r.cfg.YahooFinance.LookbackDays).Unix()

	interval := param.Interval
	if interval == "" {
		interval = "1d"
	}

	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("yahoo finance returned status %d for %s", resp.StatusCode, param.Symbol)
	}
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo finance returned no chart data for %s", param.Symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo finance returned no quote data for %s", param.Symbol)
	}
	quote := result.Indicators.Quote[0]

	data := &dto.StockData{
		MarketPrice: result.Meta.RegularMarketPrice,
	}

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// Yahoo pads incomplete candles with zeros
		if quote.Close[i] == 0 {
			continue
		}
		candle := dto.StockOHLCV{
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Timestamp: ts,
		}
		if i < len(quote.Volume) {
			candle.Volume = quote.Volume[i]
		}
		data.OHLCV = append(data.OHLCV, candle)
	}

	if len(data.OHLCV) == 0 {
		return nil, fmt.Errorf("yahoo finance returned empty candle series for %s", param.Symbol)
	}

	if data.MarketPrice == 0 {
		data.MarketPrice = data.OHLCV[len(data.OHLCV)-1].Close
	}

	return data, nil
}
