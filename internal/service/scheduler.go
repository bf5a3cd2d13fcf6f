package service

import (
	"context"

	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// schedulerService drives periodic trailing-stop refreshes for every active
// position.
type schedulerService struct {
	cfg       *config.Config
	log       *logger.Logger
	positions PositionService
	cron      *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, positions PositionService) SchedulerService {
	return &schedulerService{
		cfg:       cfg,
		log:       log,
		positions: positions,
		cron:      cron.New(),
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Scheduler.PositionRefreshCron, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		s.log.Info("Running scheduled position refresh")
		if err := s.positions.RefreshAll(runCtx); err != nil {
			s.log.Error("Scheduled position refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("position_refresh_cron", s.cfg.Scheduler.PositionRefreshCron),
	)
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}
