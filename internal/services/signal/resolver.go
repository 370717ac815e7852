package signal

import (
	"regexp"
	"strings"
	"unicode"

	domsvc "Traxor/internal/domain/service"
)

// DefaultSymbol is used when a query names no recognizable asset.
const DefaultSymbol = "SOL"

type alias struct {
	name   string
	symbol string
}

// aliases is matched in order against whole words of the lowercased query.
var aliases = []alias{
	{"bitcoin", "BTC"},
	{"ethereum", "ETH"},
	{"ether", "ETH"},
	{"solana", "SOL"},
	{"hyperliquid", "HYPE"},
	{"moo deng", "MOODENG"},
	{"moodeng", "MOODENG"},
	{"peanut", "PNUT"},
	{"fartcoin", "FARTCOIN"},
	{"dogecoin", "DOGE"},
	{"cardano", "ADA"},
	{"ripple", "XRP"},
	{"chainlink", "LINK"},
	{"avalanche", "AVAX"},
	{"polkadot", "DOT"},
	{"litecoin", "LTC"},
	{"binance coin", "BNB"},
	{"shiba inu", "SHIB"},
	{"toncoin", "TON"},
	{"pepe", "PEPE"},
	{"dogwifhat", "WIF"},
	{"jupiter", "JUP"},
	{"arbitrum", "ARB"},
	{"optimism", "OP"},
	{"celestia", "TIA"},
	{"injective", "INJ"},
	{"cosmos", "ATOM"},
	{"aptos", "APT"},
	{"sui network", "SUI"},
}

// plainSymbols may be written in lower case and still count as a ticker.
// Tickers that are also common English words are left out.
var plainSymbols = map[string]struct{}{
	"BTC": {}, "ETH": {}, "SOL": {}, "HYPE": {}, "MOODENG": {}, "PNUT": {},
	"FARTCOIN": {}, "VINE": {}, "DOGE": {}, "ADA": {}, "XRP": {}, "AVAX": {},
	"LTC": {}, "BNB": {}, "SHIB": {}, "PEPE": {}, "WIF": {}, "BONK": {},
	"JUP": {}, "ARB": {}, "TIA": {}, "INJ": {}, "ATOM": {}, "APT": {},
	"SUI": {}, "TRX": {}, "XLM": {}, "HBAR": {},
}

// stopwords are never taken as tickers, in any case.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		THE AND FOR WHAT WHATS IS ARE AM ME MY GIVE TELL ABOUT SETUP SETUPS LOOKING LOOK LIKE
		SIGNAL SIGNALS TRADE TRADING PRICE PRICES NOW TODAY TONIGHT SHOULD BUY SELL LONG SHORT
		HOW WHY WHEN WHERE WHO CAN YOU YOUR IT ITS IN ON AT TO OF OR AN BE DO DOES IF SO UP
		THIS THAT THESE WITH WILL GO GOING ANY GET SEE NEWS SHOW MARKET MARKETS CRYPTO COIN COINS
		TOKEN TOKENS CHART CHARTS BULL BEAR BULLISH BEARISH VIEW ENTRY STOP LOSS TAKE PROFIT
		PROFITS TARGET TARGETS ZONE PUMP DUMP MOON WEEK DAY HOUR NEXT OUTLOOK ANALYSIS PLEASE
		HI HEY HELLO OK OKAY YES NO NOT BUT ALL IM WE US OUR THEY THEM HAS HAVE HAD WAS WERE
		FROM INTO OVER UNDER AFTER BEFORE THAN THEN ALSO JUST SOME MORE MOST VERY ABOVE BELOW
		I AI USD USDT USDC ATH ATL TP SL RSI MACD EMA SMA ETF CEO FOMC CPI FED GDP NFA DYOR FUD
		FOMO GM GN ETC VS UK EU API
	`) {
		stopwords[w] = struct{}{}
	}
}

var tokenPattern = regexp.MustCompile(`\b[A-Za-z]{2,10}\b`)

// Resolver maps a free-text query to an asset symbol.
type Resolver struct {
	defaultSymbol string
}

// NewResolver returns a resolver falling back to defaultSymbol (SOL when empty).
func NewResolver(defaultSymbol string) *Resolver {
	defaultSymbol = strings.ToUpper(strings.TrimSpace(defaultSymbol))
	if defaultSymbol == "" {
		defaultSymbol = DefaultSymbol
	}
	return &Resolver{defaultSymbol: defaultSymbol}
}

// Default is the configured fallback symbol.
func (r *Resolver) Default() string {
	return r.defaultSymbol
}

// Resolve always returns a non-empty uppercase symbol.
func (r *Resolver) Resolve(query string) string {
	if sym, ok := r.Lookup(query); ok {
		return sym
	}
	return r.defaultSymbol
}

// ResolveOr is Resolve with a caller-chosen fallback.
func (r *Resolver) ResolveOr(query, fallback string) string {
	if sym, ok := r.Lookup(query); ok {
		return sym
	}
	if fallback = strings.ToUpper(strings.TrimSpace(fallback)); fallback != "" {
		return fallback
	}
	return r.defaultSymbol
}

// Lookup reports the symbol named by query, if any.
//
// Order: whole-word alias names, then tokens written in capitals that are
// not stopwords, then lower-case tokens that are well-known tickers.
func (r *Resolver) Lookup(query string) (string, bool) {
	words := " " + strings.Join(strings.FieldsFunc(strings.ToLower(query), func(c rune) bool {
		return !unicode.IsLetter(c)
	}), " ") + " "
	for _, a := range aliases {
		if strings.Contains(words, " "+a.name+" ") {
			return a.symbol, true
		}
	}

	tokens := tokenPattern.FindAllString(query, -1)
	for _, tok := range tokens {
		upper := strings.ToUpper(tok)
		if _, stop := stopwords[upper]; stop {
			continue
		}
		if tok == upper {
			return upper, true
		}
	}
	for _, tok := range tokens {
		upper := strings.ToUpper(tok)
		if _, ok := plainSymbols[upper]; ok {
			return upper, true
		}
	}
	return "", false
}

var _ domsvc.SymbolResolver = (*Resolver)(nil)
