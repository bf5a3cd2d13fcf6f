package service

import (
	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/repository"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/cache"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"
)

type Service struct {
	RiskEngineService RiskEngineService
	MarketDataService MarketDataService
	StockService      StockService
	PositionService   PositionService
	DashboardService  DashboardService
	SchedulerService  SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	riskEngine := NewRiskEngineService(cfg, log)
	marketData := NewMarketDataService(cfg, log, repo.YahooFinanceRepo, inmemoryCache)
	stockService := NewStockService(cfg, log, repo.TrackedStockRepo, marketData)
	positionService := NewPositionService(cfg, log, repo.StockPositionsRepo, repo.PositionMonitoringRepo, marketData, riskEngine)
	dashboardService := NewDashboardService(cfg, log, repo.TrackedStockRepo, marketData, riskEngine)
	schedulerService := NewSchedulerService(cfg, log, positionService)

	return &Service{
		RiskEngineService: riskEngine,
		MarketDataService: marketData,
		StockService:      stockService,
		PositionService:   positionService,
		DashboardService:  dashboardService,
		SchedulerService:  schedulerService,
	}
}
