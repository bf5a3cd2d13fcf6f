package service

import (
	"github.com/Charvi99/StockAnalyzer-sub001/config"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/contract"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/logger"
)

// Entry and stop closer than this are treated as coinciding.
const perShareRiskEpsilon = 1e-9

type RiskEngineService interface {
	contract.RiskEngineContract
}

// riskService implements the order-level, position-sizing and trailing-stop
// calculators. It holds no per-call state; every method is a pure function of
// its inputs and the policy in cfg.Engine.
type riskService struct {
	cfg *config.Config
	log *logger.Logger
}

func NewRiskEngineService(cfg *config.Config, log *logger.Logger) RiskEngineService {
	return &riskService{
		cfg: cfg,
		log: log,
	}
}
