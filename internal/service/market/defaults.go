package market

import "github.com/shopspring/decimal"

// CoinIDs maps a ticker to its CoinGecko id.
var CoinIDs = map[string]string{
	"BTC":      "bitcoin",
	"ETH":      "ethereum",
	"SOL":      "solana",
	"HYPE":     "hyperliquid",
	"MOODENG":  "moo-deng",
	"PNUT":     "peanut-the-squirrel",
	"FARTCOIN": "fartcoin",
	"VINE":     "vine",
	"DOGE":     "dogecoin",
	"XRP":      "ripple",
	"ADA":      "cardano",
	"LINK":     "chainlink",
	"AVAX":     "avalanche-2",
	"DOT":      "polkadot",
	"LTC":      "litecoin",
	"BNB":      "binancecoin",
	"SHIB":     "shiba-inu",
	"TON":      "the-open-network",
	"PEPE":     "pepe",
	"WIF":      "dogwifcoin",
	"JUP":      "jupiter-exchange-solana",
	"ARB":      "arbitrum",
	"OP":       "optimism",
	"TIA":      "celestia",
	"INJ":      "injective-protocol",
	"ATOM":     "cosmos",
	"APT":      "aptos",
	"SUI":      "sui",
}

// defaultPrices backs Quote when the live lookup fails.
var defaultPrices = map[string]decimal.Decimal{
	"BTC":      decimal.RequireFromString("107607"),
	"ETH":      decimal.RequireFromString("2740.4"),
	"SOL":      decimal.RequireFromString("158.63"),
	"HYPE":     decimal.RequireFromString("41.48"),
	"MOODENG":  decimal.RequireFromString("0.18271"),
	"PNUT":     decimal.RequireFromString("0.25982"),
	"FARTCOIN": decimal.RequireFromString("1.3412"),
	"VINE":     decimal.RequireFromString("0.035243"),
}

// DefaultPrice returns the built-in price for symbol, if there is one.
func DefaultPrice(symbol string) (decimal.Decimal, bool) {
	p, ok := defaultPrices[symbol]
	return p, ok
}
