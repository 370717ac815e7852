package signal

import (
	"Traxor/pkg/util"

	"github.com/shopspring/decimal"
)

var (
	entryLow  = decimal.RequireFromString("0.98")
	entryHigh = decimal.RequireFromString("1.02")
	target1   = decimal.RequireFromString("1.05")
	target2   = decimal.RequireFromString("1.10")
	target3   = decimal.RequireFromString("1.15")
	stopBelow = decimal.RequireFromString("0.95")
)

const (
	defaultView         = "Neutral → Insufficient data for directional bias"
	defaultInvalidateIf = "Market structure change or major news event"
)

// structuredDefaults returns a value for each of the five structured fields.
// With a positive anchor the levels are derived from it, otherwise generic
// guidance is returned.
func structuredDefaults(anchor decimal.Decimal, ok bool) map[field]string {
	if !ok || !anchor.IsPositive() {
		return map[field]string{
			fieldView:         defaultView,
			fieldEntryZone:    "Wait for a confirmed retest of the nearest support before entering",
			fieldTakeProfits:  "TP1 prior swing high → TP2 range top → TP3 measured-move extension",
			fieldStopLoss:     "Below the most recent swing low",
			fieldInvalidateIf: defaultInvalidateIf,
		}
	}

	usd := func(m decimal.Decimal) string { return util.FormatUSD(anchor.Mul(m)) }
	return map[field]string{
		fieldView:         defaultView,
		fieldEntryZone:    usd(entryLow) + " to " + usd(entryHigh) + " → Current price zone with 2% buffer",
		fieldTakeProfits:  "TP1 " + usd(target1) + " → TP2 " + usd(target2) + " → TP3 " + usd(target3),
		fieldStopLoss:     usd(stopBelow) + " → 5% below current price",
		fieldInvalidateIf: defaultInvalidateIf,
	}
}
