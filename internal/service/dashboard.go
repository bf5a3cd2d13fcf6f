package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/repository"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, error)
}

type dashboardService struct {
	cfg              *config.Config
	log              *logger.Logger
	trackedStockRepo repository.TrackedStockRepository
	marketData       MarketDataService
	riskEngine       RiskEngineService
}

func NewDashboardService(
	cfg *config.Config,
	log *logger.Logger,
	trackedStockRepo repository.TrackedStockRepository,
	marketData MarketDataService,
	riskEngine RiskEngineService,
) DashboardService {
	return &dashboardService{
		cfg:              cfg,
		log:              log,
		trackedStockRepo: trackedStockRepo,
		marketData:       marketData,
		riskEngine:       riskEngine,
	}
}

// Summary computes an order plan for every tracked symbol using the account
// defaults from config. Symbols fan out concurrently; one failing symbol is
// reported in its entry instead of failing the whole dashboard.
func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	stocks, err := s.trackedStockRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		Entries: make([]dto.DashboardEntry, 0, len(stocks)),
		Tracked: len(stocks),
	}

	risk := dto.RiskParameters{
		AccountSize:    s.cfg.Engine.DefaultAccountSize,
		RiskPercentage: s.cfg.Engine.DefaultRiskPercentage,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Dashboard.MaxConcurrency)

	for _, stock := range stocks {
		symbol := stock.Symbol
		g.Go(func() error {
			entry := s.buildEntry(gctx, symbol, risk)
			mu.Lock()
			summary.Entries = append(summary.Entries, entry)
			if entry.Error != "" {
				summary.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Symbol < summary.Entries[j].Symbol
	})

	return summary, nil
}

func (s *dashboardService) buildEntry(ctx context.Context, symbol string, risk dto.RiskParameters) dto.DashboardEntry {
	entry := dto.DashboardEntry{Symbol: symbol}

	marketCtx, err := s.marketData.GetMarketContext(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Dashboard entry failed on market data",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		entry.Error = err.Error()
		return entry
	}

	entry.CurrentPrice = marketCtx.CurrentPrice
	entry.ATR = marketCtx.ATR

	plan, err := s.riskEngine.ComputeOrderPlan(ctx, marketCtx.Snapshot(), risk)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.Plan = plan

	return entry
}
