package service

import (
	"fmt"
	"math"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
)

// sizePosition converts the account's risk budget and a stop distance into a
// whole-share position size. Fixed-fractional sizing: the dollar risk is
// accountSize * riskPercentage, and the stop distance decides how many shares
// that buys.
//
// The returned RiskAmount is the risk actually taken after rounding down to
// whole shares, not the raw budget.
func (s *riskService) sizePosition(accountSize, riskPercentage, entryPrice, stopLoss float64) (*dto.SizingResult, error) {
	if accountSize <= 0 {
		return nil, fmt.Errorf("%w: account size must be positive, got %.2f", ErrInvalidInput, accountSize)
	}
	if riskPercentage <= 0 || riskPercentage > 1 {
		return nil, fmt.Errorf("%w: risk percentage must be in (0, 1], got %.4f", ErrInvalidInput, riskPercentage)
	}
	if entryPrice <= 0 {
		return nil, fmt.Errorf("%w: entry price must be positive, got %.4f", ErrInvalidInput, entryPrice)
	}

	perShareRisk := math.Abs(entryPrice - stopLoss)
	if perShareRisk <= perShareRiskEpsilon {
		return nil, fmt.Errorf("%w: entry %.4f and stop-loss %.4f coincide", ErrDegenerateStop, entryPrice, stopLoss)
	}

	riskBudget := accountSize * riskPercentage
	shares := int64(math.Floor(riskBudget / perShareRisk))

	result := &dto.SizingResult{
		Shares:     shares,
		RiskAmount: float64(shares) * perShareRisk,
		Warnings:   []string{},
	}

	// Each warning is checked independently; none of them rejects the result.
	if shares == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("risk budget %.2f is too small for the stop distance %.4f, position rounds to zero shares", riskBudget, perShareRisk))
	}

	positionValue := float64(shares) * entryPrice
	if positionValue > accountSize {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("position value %.2f exceeds account size %.2f, this implies leverage", positionValue, accountSize))
	}

	engineCfg := s.cfg.Engine
	if riskPercentage < engineCfg.MinRiskPercentage || riskPercentage > engineCfg.MaxRiskPercentage {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("risk percentage %.2f%% is outside the configured bounds [%.2f%%, %.2f%%]",
				riskPercentage*100, engineCfg.MinRiskPercentage*100, engineCfg.MaxRiskPercentage*100))
	}

	return result, nil
}
