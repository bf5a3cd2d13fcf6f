package contract

import (
	"context"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
)

// MarketDataContract supplies the engine's inputs: last price, ATR and
// structural levels derived from historical candles.
type MarketDataContract interface {
	GetMarketContext(ctx context.Context, symbol string) (*dto.MarketContext, error)
}
