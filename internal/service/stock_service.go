package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/model"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/repository"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"
)

type StockService interface {
	Track(ctx context.Context, symbol, exchange string) (*model.TrackedStock, error)
	Untrack(ctx context.Context, symbol string) error
	List(ctx context.Context) ([]model.TrackedStock, error)
}

type stockService struct {
	cfg              *config.Config
	log              *logger.Logger
	trackedStockRepo repository.TrackedStockRepository
	marketData       MarketDataService
}

func NewStockService(cfg *config.Config, log *logger.Logger, trackedStockRepo repository.TrackedStockRepository, marketData MarketDataService) StockService {
	return &stockService{
		cfg:              cfg,
		log:              log,
		trackedStockRepo: trackedStockRepo,
		marketData:       marketData,
	}
}

// Track registers a symbol after verifying quote data actually exists for it.
func (s *stockService) Track(ctx context.Context, symbol, exchange string) (*model.TrackedStock, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	existing, err := s.trackedStockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("stock %s is already tracked", symbol)
	}

	if _, err := s.marketData.GetMarketContext(ctx, symbol); err != nil {
		return nil, fmt.Errorf("cannot track %s, no market data available: %w", symbol, err)
	}

	stock := &model.TrackedStock{
		Symbol:   symbol,
		Exchange: exchange,
	}
	if err := s.trackedStockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Tracking new stock", logger.StringField("symbol", symbol))
	return stock, nil
}

func (s *stockService) Untrack(ctx context.Context, symbol string) error {
	if err := s.trackedStockRepo.Delete(ctx, symbol); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "Untracked stock", logger.StringField("symbol", symbol))
	return nil
}

func (s *stockService) List(ctx context.Context) ([]model.TrackedStock, error) {
	return s.trackedStockRepo.GetAll(ctx)
}
