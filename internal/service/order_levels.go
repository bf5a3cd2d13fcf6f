package service

import (
	"context"
	"fmt"
	"math"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/utils"
)

// Rule names recorded in the plan's reasoning trail.
const (
	ruleSLSupport     = "SL_SUPPORT"
	ruleSLResistance  = "SL_RESISTANCE"
	ruleSLATRFallback = "SL_ATR_FALLBACK"
	ruleTPSupport     = "TP_SUPPORT"
	ruleTPResistance  = "TP_RESISTANCE"
	ruleTPATRFallback = "TP_ATR_FALLBACK"
)

type levelChoice struct {
	price  float64
	rule   string
	reason string
}

// ComputeOrderPlan derives entry, stop-loss, take-profit and position size
// from one market snapshot. The plan is always returned once inputs validate;
// low reward/risk or oversized positions only add warnings because the final
// decision belongs to the caller.
//
// The directional signal is copied into the plan verbatim. A SELL signal
// flips the level placement to a short bias; the engine never invents or
// overrides a direction on its own.
func (s *riskService) ComputeOrderPlan(ctx context.Context, snapshot dto.MarketSnapshot, risk dto.RiskParameters) (*dto.OrderPlan, error) {
	if err := s.validatePlanInput(snapshot, risk); err != nil {
		return nil, err
	}

	engineCfg := s.cfg.Engine
	entry := snapshot.CurrentPrice
	atr := snapshot.ATR
	short := snapshot.Signal == dto.SignalSell

	var stop, target levelChoice
	if short {
		stop = s.placeStop(entry, atr, snapshot.NearestResistance, true)
		target = s.placeTarget(entry, atr, snapshot.NearestSupport, true)
	} else {
		stop = s.placeStop(entry, atr, snapshot.NearestSupport, false)
		target = s.placeTarget(entry, atr, snapshot.NearestResistance, false)
	}

	plan := &dto.OrderPlan{
		Recommendation:    snapshot.Signal,
		Confidence:        snapshot.Confidence,
		CurrentPrice:      snapshot.CurrentPrice,
		EntryPrice:        entry,
		StopLoss:          stop.price,
		TakeProfit:        target.price,
		NearestSupport:    snapshot.NearestSupport,
		NearestResistance: snapshot.NearestResistance,
		ATR:               atr,
		Warnings:          []string{},
		Reasoning:         []string{stop.reason, target.reason},
	}

	riskDistance := math.Abs(entry - plan.StopLoss)
	rewardDistance := math.Abs(plan.TakeProfit - entry)
	plan.StopLossPct = utils.RoundTo(riskDistance/entry*100, 2)
	plan.TakeProfitPct = utils.RoundTo(rewardDistance/entry*100, 2)

	if riskDistance > perShareRiskEpsilon {
		plan.RiskRewardRatio = rewardDistance / riskDistance
		plan.RiskRewardDefined = true
	}

	sizing, err := s.sizePosition(risk.AccountSize, risk.RiskPercentage, entry, plan.StopLoss)
	if err != nil {
		// DegenerateStop and InvalidInput pass through unchanged.
		return nil, err
	}
	plan.PositionSizeShares = sizing.Shares
	plan.PositionValue = float64(sizing.Shares) * entry
	plan.RiskAmount = sizing.RiskAmount
	plan.Warnings = append(plan.Warnings, sizing.Warnings...)

	if plan.RiskRewardDefined && plan.RiskRewardRatio < engineCfg.MinRiskRewardRatio {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("risk/reward ratio %.2f is below the configured floor %.2f", plan.RiskRewardRatio, engineCfg.MinRiskRewardRatio))
	}
	plan.Reasoning = append(plan.Reasoning,
		fmt.Sprintf("sizing: %d shares risk %.2f of a %.2f account at %.2f%% per trade",
			sizing.Shares, sizing.RiskAmount, risk.AccountSize, risk.RiskPercentage*100))

	return plan, nil
}

func (s *riskService) validatePlanInput(snapshot dto.MarketSnapshot, risk dto.RiskParameters) error {
	engineCfg := s.cfg.Engine

	if snapshot.CurrentPrice <= 0 {
		return fmt.Errorf("%w: current price must be positive, got %.4f", ErrInvalidInput, snapshot.CurrentPrice)
	}
	if snapshot.ATR <= 0 {
		return fmt.Errorf("%w: ATR must be positive for order planning, got %.4f", ErrInvalidInput, snapshot.ATR)
	}
	if risk.AccountSize <= 0 {
		return fmt.Errorf("%w: account size must be positive, got %.2f", ErrInvalidInput, risk.AccountSize)
	}
	if risk.AccountSize < engineCfg.MinAccountSize || risk.AccountSize > engineCfg.MaxAccountSize {
		return fmt.Errorf("%w: account size %.2f outside supported range [%.0f, %.0f]",
			ErrInvalidInput, risk.AccountSize, engineCfg.MinAccountSize, engineCfg.MaxAccountSize)
	}
	if risk.RiskPercentage <= 0 || risk.RiskPercentage > 1 {
		return fmt.Errorf("%w: risk percentage must be in (0, 1], got %.4f", ErrInvalidInput, risk.RiskPercentage)
	}
	if snapshot.NearestSupport != nil && *snapshot.NearestSupport > snapshot.CurrentPrice {
		return fmt.Errorf("%w: nearest support %.4f above current price %.4f", ErrInvalidInput, *snapshot.NearestSupport, snapshot.CurrentPrice)
	}
	if snapshot.NearestResistance != nil && *snapshot.NearestResistance < snapshot.CurrentPrice {
		return fmt.Errorf("%w: nearest resistance %.4f below current price %.4f", ErrInvalidInput, *snapshot.NearestResistance, snapshot.CurrentPrice)
	}
	if snapshot.Confidence != nil && (*snapshot.Confidence < 0 || *snapshot.Confidence > 1) {
		return fmt.Errorf("%w: confidence %.4f outside [0, 1]", ErrInvalidInput, *snapshot.Confidence)
	}
	return nil
}

// placeStop walks the stop-loss preference chain: a structural level within
// the bounded ATR distance wins, nudged a fraction of an ATR past the level so
// the level itself is not the trigger; otherwise the plain ATR multiple.
func (s *riskService) placeStop(entry, atr float64, level *float64, short bool) levelChoice {
	engineCfg := s.cfg.Engine
	nudge := engineCfg.LevelNudgeATRFraction * atr
	maxDistance := engineCfg.LevelMaxATRDistance * atr

	if level != nil {
		distance := math.Abs(entry - *level)
		if distance <= maxDistance {
			if short {
				candidate := *level + nudge
				if candidate > entry {
					return levelChoice{
						price: candidate,
						rule:  ruleSLResistance,
						reason: fmt.Sprintf("%s: stop-loss %.2f from nearest resistance %.2f nudged %.2gx ATR above the level",
							ruleSLResistance, candidate, *level, engineCfg.LevelNudgeATRFraction),
					}
				}
			} else {
				candidate := *level - nudge
				if candidate < entry {
					return levelChoice{
						price: candidate,
						rule:  ruleSLSupport,
						reason: fmt.Sprintf("%s: stop-loss %.2f from nearest support %.2f nudged %.2gx ATR below the level",
							ruleSLSupport, candidate, *level, engineCfg.LevelNudgeATRFraction),
					}
				}
			}
		}
	}

	fallbackDistance := engineCfg.StopATRMultiplier * atr
	price := entry - fallbackDistance
	if short {
		price = entry + fallbackDistance
	}
	return levelChoice{
		price: price,
		rule:  ruleSLATRFallback,
		reason: fmt.Sprintf("%s: stop-loss %.2f at %.1fx ATR (%.2f) from entry, no usable structural level",
			ruleSLATRFallback, price, engineCfg.StopATRMultiplier, atr),
	}
}

// placeTarget mirrors placeStop for the take-profit side. The target sits a
// fraction of an ATR inside the structural level so fills do not depend on the
// level breaking.
func (s *riskService) placeTarget(entry, atr float64, level *float64, short bool) levelChoice {
	engineCfg := s.cfg.Engine
	nudge := engineCfg.LevelNudgeATRFraction * atr
	maxDistance := engineCfg.LevelMaxATRDistance * atr

	if level != nil {
		distance := math.Abs(*level - entry)
		if distance <= maxDistance {
			if short {
				candidate := *level + nudge
				if candidate < entry {
					return levelChoice{
						price: candidate,
						rule:  ruleTPSupport,
						reason: fmt.Sprintf("%s: take-profit %.2f just above nearest support %.2f",
							ruleTPSupport, candidate, *level),
					}
				}
			} else {
				candidate := *level - nudge
				if candidate > entry {
					return levelChoice{
						price: candidate,
						rule:  ruleTPResistance,
						reason: fmt.Sprintf("%s: take-profit %.2f just below nearest resistance %.2f",
							ruleTPResistance, candidate, *level),
					}
				}
			}
		}
	}

	fallbackDistance := engineCfg.TargetATRMultiplier * atr
	price := entry + fallbackDistance
	if short {
		price = entry - fallbackDistance
	}
	return levelChoice{
		price: price,
		rule:  ruleTPATRFallback,
		reason: fmt.Sprintf("%s: take-profit %.2f at %.1fx ATR (%.2f) from entry, no usable structural level",
			ruleTPATRFallback, price, engineCfg.TargetATRMultiplier, atr),
	}
}
