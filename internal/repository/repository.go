package repository

import (
	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	TrackedStockRepo       TrackedStockRepository
	StockPositionsRepo     StockPositionsRepository
	PositionMonitoringRepo PositionMonitoringRepository
	YahooFinanceRepo       YahooFinanceRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		TrackedStockRepo:       NewTrackedStockRepository(db),
		StockPositionsRepo:     NewStockPositionsRepository(db),
		PositionMonitoringRepo: NewPositionMonitoringRepository(db),
		YahooFinanceRepo:       NewYahooFinanceRepository(cfg, log),
	}, nil
}
