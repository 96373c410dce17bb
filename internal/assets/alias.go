package assets

// aliasTable maps full names and common misspellings to canonical tickers.
// Keys are lowercase. Checked before the stopword set, so a full name like
// "bitcoin" never gets filtered as a generic word.
var aliasTable = map[string]string{
	// crypto full names
	"bitcoin":   "BTC",
	"ethereum":  "ETH",
	"ether":     "ETH",
	"solana":    "SOL",
	"ripple":    "XRP",
	"dogecoin":  "DOGE",
	"cardano":   "ADA",
	"avalanche": "AVAX",
	"chainlink": "LINK",
	"polkadot":  "DOT",
	"litecoin":  "LTC",
	"tron":      "TRX",
	"binance":   "BNB",
	"shiba":     "SHIB",

	// common misspellings
	"bitcon":  "BTC",
	"bitcoim": "BTC",
	"etherum": "ETH",
	"solona":  "SOL",
	"dodge":   "DOGE",

	// stock full names
	"apple":     "AAPL",
	"tesla":     "TSLA",
	"nvidia":    "NVDA",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"google":    "GOOG",
	"alphabet":  "GOOG",
	"meta":      "META",
	"coinbase":  "COIN",
	"robinhood": "HOOD",
}
