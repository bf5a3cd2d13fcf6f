package common

const (
	KEY_LAST_QUOTE     = "last_quote:%s"
	KEY_MARKET_CONTEXT = "market_context:%s"
)

const (
	EXCHANGE_NASDAQ = "NASDAQ"
	EXCHANGE_NYSE   = "NYSE"
)
