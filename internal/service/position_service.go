package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/model"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/repository"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type PositionService interface {
	Open(ctx context.Context, req dto.OpenPositionRequest) (*model.StockPosition, error)
	List(ctx context.Context, activeOnly bool) ([]model.StockPosition, error)
	Get(ctx context.Context, id uint) (*model.StockPosition, []model.PositionMonitoring, error)
	Close(ctx context.Context, id uint, exitPrice float64) (*model.StockPosition, error)
	Refresh(ctx context.Context, id uint) (*dto.TrailingStopResult, error)
	RefreshAll(ctx context.Context) error
}

// positionService owns the persisted trailing-stop ratchets. Updates to one
// position are serialized through a per-position lock: the ratchet is a
// compare-and-raise that must not see interleaved snapshots out of order.
type positionService struct {
	cfg            *config.Config
	log            *logger.Logger
	positionsRepo  repository.StockPositionsRepository
	monitoringRepo repository.PositionMonitoringRepository
	marketData     MarketDataService
	riskEngine     RiskEngineService

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewPositionService(
	cfg *config.Config,
	log *logger.Logger,
	positionsRepo repository.StockPositionsRepository,
	monitoringRepo repository.PositionMonitoringRepository,
	marketData MarketDataService,
	riskEngine RiskEngineService,
) PositionService {
	return &positionService{
		cfg:            cfg,
		log:            log,
		positionsRepo:  positionsRepo,
		monitoringRepo: monitoringRepo,
		marketData:     marketData,
		riskEngine:     riskEngine,
		locks:          make(map[uint]*sync.Mutex),
	}
}

func (s *positionService) positionLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *positionService) releaseLock(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// Open creates the position together with its trailing-stop state and runs
// one refresh so the stop is set from live market data immediately.
func (s *positionService) Open(ctx context.Context, req dto.OpenPositionRequest) (*model.StockPosition, error) {
	atrMultiplier := req.ATRMultiplier
	if atrMultiplier == 0 {
		atrMultiplier = s.cfg.Engine.TrailATRMultiplier
	}

	state, err := s.riskEngine.NewTrailingStopState(req.Direction, req.EntryPrice, atrMultiplier)
	if err != nil {
		return nil, err
	}

	position := &model.StockPosition{
		Symbol:        req.Symbol,
		Direction:     req.Direction,
		EntryPrice:    req.EntryPrice,
		Shares:        req.Shares,
		ATRMultiplier: atrMultiplier,
		IsActive:      utils.ToPointer(true),
		OpenedAt:      time.Now(),
	}
	position.ApplyTrailingState(state)

	if err := s.positionsRepo.Create(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to open position: %w", err)
	}

	if _, err := s.Refresh(ctx, position.ID); err != nil {
		s.log.WarnContext(ctx, "Initial trailing-stop refresh failed, position opened without a stop",
			logger.IntField("position_id", int(position.ID)),
			logger.ErrorField(err),
		)
	}

	refreshed, err := s.positionsRepo.GetByID(ctx, position.ID)
	if err != nil || refreshed == nil {
		return position, nil
	}
	return refreshed, nil
}

func (s *positionService) List(ctx context.Context, activeOnly bool) ([]model.StockPosition, error) {
	param := model.GetStockPositionsParam{}
	if activeOnly {
		param.IsActive = utils.ToPointer(true)
	}
	return s.positionsRepo.Get(ctx, param)
}

func (s *positionService) Get(ctx context.Context, id uint) (*model.StockPosition, []model.PositionMonitoring, error) {
	position, err := s.positionsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if position == nil {
		return nil, nil, fmt.Errorf("position %d not found", id)
	}

	history, err := s.monitoringRepo.Get(ctx, model.PositionMonitoringQueryParam{
		StockPositionID: id,
		Limit:           utils.ToPointer(20),
	})
	if err != nil {
		return nil, nil, err
	}

	return position, history, nil
}

func (s *positionService) Close(ctx context.Context, id uint, exitPrice float64) (*model.StockPosition, error) {
	lock := s.positionLock(id)
	lock.Lock()
	defer lock.Unlock()

	position, err := s.positionsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("position %d not found", id)
	}
	if position.IsActive == nil || !*position.IsActive {
		return nil, fmt.Errorf("position %d is already closed", id)
	}

	position.IsActive = utils.ToPointer(false)
	position.ExitPrice = &exitPrice
	position.ExitDate = utils.ToPointer(time.Now())

	if err := s.positionsRepo.Update(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to close position %d: %w", id, err)
	}

	// The ratchet dies with the position.
	s.releaseLock(id)

	s.log.InfoContext(ctx, "Closed position",
		logger.IntField("position_id", int(id)),
		logger.StringField("symbol", position.Symbol),
		logger.Float64Field("exit_price", exitPrice),
	)
	return position, nil
}

// Refresh feeds a fresh market snapshot through the trailing-stop engine,
// persists the returned state and appends a monitoring row.
func (s *positionService) Refresh(ctx context.Context, id uint) (*dto.TrailingStopResult, error) {
	lock := s.positionLock(id)
	lock.Lock()
	defer lock.Unlock()

	position, err := s.positionsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("position %d not found", id)
	}
	if position.IsActive == nil || !*position.IsActive {
		return nil, fmt.Errorf("position %d is closed", id)
	}

	marketCtx, err := s.marketData.GetMarketContext(ctx, position.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh position %d: %w", id, err)
	}

	state, result, err := s.riskEngine.ComputeTrailingStop(ctx, position.TrailingState(), marketCtx.CurrentPrice, marketCtx.ATR)
	if err != nil {
		return nil, err
	}

	position.ApplyTrailingState(state)
	if err := s.positionsRepo.Update(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to persist trailing state for position %d: %w", id, err)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize trailing result: %w", err)
	}
	monitoring := &model.PositionMonitoring{
		StockPositionID: position.ID,
		MarketPrice:     marketCtx.CurrentPrice,
		TrailingStop:    result.TrailingStop,
		Result:          resultJSON,
		Timestamp:       time.Now(),
	}
	if err := s.monitoringRepo.Create(ctx, monitoring); err != nil {
		s.log.WarnContext(ctx, "Failed to record monitoring snapshot",
			logger.IntField("position_id", int(position.ID)),
			logger.ErrorField(err),
		)
	}

	if result.Stopped {
		s.log.WarnContext(ctx, "Price is at or through the trailing stop",
			logger.IntField("position_id", int(position.ID)),
			logger.StringField("symbol", position.Symbol),
			logger.Float64Field("price", marketCtx.CurrentPrice),
			logger.Float64Field("trailing_stop", result.TrailingStop),
		)
	}
	if result.Recommendation != "" {
		s.log.InfoContext(ctx, "Profit-protection recommendation",
			logger.IntField("position_id", int(position.ID)),
			logger.StringField("symbol", position.Symbol),
			logger.StringField("recommendation", string(result.Recommendation)),
			logger.Float64Field("profit_atr_multiple", result.ProfitATRMultiple),
		)
	}

	return result, nil
}

// RefreshAll updates every active position, bounded by the scheduler's
// concurrency limit. Failures are logged per position and do not abort the
// batch.
func (s *positionService) RefreshAll(ctx context.Context) error {
	positions, err := s.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list active positions: %w", err)
	}
	if len(positions) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for _, position := range positions {
		id := position.ID
		g.Go(func() error {
			if !utils.ShouldContinue(gctx, s.log) {
				return gctx.Err()
			}
			if _, err := s.Refresh(gctx, id); err != nil {
				s.log.ErrorContext(gctx, "Failed to refresh position",
					logger.IntField("position_id", int(id)),
					logger.ErrorField(err),
				)
			}
			return nil
		})
	}

	return g.Wait()
}
