package dto

// StockOHLCV is a single candle.
type StockOHLCV struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Timestamp int64   `json:"timestamp"`
}

// Level is a structural price level detected from historical candles.
type Level struct {
	Price   float64 `json:"price"`
	Touches int     `json:"touches"`
}

// MarketSnapshot is the full market-state input consumed by the risk engine.
// Everything here is supplied by the market-data collaborator; the engine
// itself fetches nothing.
type MarketSnapshot struct {
	Symbol            string   `json:"symbol"`
	CurrentPrice      float64  `json:"current_price"`
	ATR               float64  `json:"atr"`
	NearestSupport    *float64 `json:"nearest_support,omitempty"`
	NearestResistance *float64 `json:"nearest_resistance,omitempty"`
	Signal            Signal   `json:"signal,omitempty"`
	Confidence        *float64 `json:"confidence,omitempty"`
}

// MarketContext is what the market-data service derives from raw candles for a
// symbol: last price plus the indicator inputs the engine needs.
type MarketContext struct {
	Symbol       string       `json:"symbol"`
	CurrentPrice float64      `json:"current_price"`
	ATR          float64      `json:"atr"`
	Supports     []Level      `json:"supports"`
	Resistances  []Level      `json:"resistances"`
	OHLCV        []StockOHLCV `json:"ohlcv"`
}

// Snapshot reduces a MarketContext to the engine's input record, taking the
// nearest support below and nearest resistance above the current price.
func (m *MarketContext) Snapshot() MarketSnapshot {
	snapshot := MarketSnapshot{
		Symbol:       m.Symbol,
		CurrentPrice: m.CurrentPrice,
		ATR:          m.ATR,
	}

	for i := range m.Supports {
		level := m.Supports[i]
		if level.Price > m.CurrentPrice {
			continue
		}
		if snapshot.NearestSupport == nil || level.Price > *snapshot.NearestSupport {
			price := level.Price
			snapshot.NearestSupport = &price
		}
	}

	for i := range m.Resistances {
		level := m.Resistances[i]
		if level.Price < m.CurrentPrice {
			continue
		}
		if snapshot.NearestResistance == nil || level.Price < *snapshot.NearestResistance {
			price := level.Price
			snapshot.NearestResistance = &price
		}
	}

	return snapshot
}

type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

type GetStockDataParam struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Range    string `json:"range"`
}

type StockData struct {
	MarketPrice float64      `json:"market_price"`
	OHLCV       []StockOHLCV `json:"ohlcv"`
}
