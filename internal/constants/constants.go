package constants

import "time"

// Redis keys
const (
	RedisKeySessionPrefix = "chat:session:"
	RedisKeyUsagePrefix   = "chat:usage:"
)

// Limits
const (
	MaxRecentAssets   = 10 // per-session rolling symbol memory
	MaxAssetsPerTurn  = 5
	MaxHistoryScanned = 10 // visible turns mined for context entities
)

// Timeouts
const (
	ToolFetchTimeout = 5 * time.Second
	ProviderTimeout  = 60 * time.Second
	PersistTimeout   = 10 * time.Second
)

// SecurityChainCandidates is the ordered list of chain ids tried by the
// token-security scan when the chain cannot be inferred from context.
var SecurityChainCandidates = []string{"1", "56", "8453", "137", "42161"}

// PopularMajors maps well-known symbols to their kind for the last-resort
// popularity guess during entity resolution.
var PopularMajors = map[string]string{
	"BTC":  "crypto",
	"ETH":  "crypto",
	"SOL":  "crypto",
	"XRP":  "crypto",
	"BNB":  "crypto",
	"DOGE": "crypto",
	"ADA":  "crypto",
	"AVAX": "crypto",
	"LINK": "crypto",
	"DOT":  "crypto",
	"PEPE": "crypto",
	"SHIB": "crypto",
	"SUI":  "crypto",
	"TON":  "crypto",
	"LTC":  "crypto",
	"TRX":  "crypto",
	"AAPL": "stock",
	"TSLA": "stock",
	"NVDA": "stock",
	"MSFT": "stock",
	"AMZN": "stock",
	"GOOG": "stock",
	"META": "stock",
	"AMD":  "stock",
	"COIN": "stock",
	"MSTR": "stock",
	"HOOD": "stock",
	"SPY":  "stock",
	"QQQ":  "stock",
}
