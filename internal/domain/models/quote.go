package models

import (
	"time"

	"Traxor/pkg/util"

	"github.com/shopspring/decimal"
)

// Quote is a USD price for a symbol. Live is false when the price came from
// the built-in default table.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Formatted string          `json:"formatted"`
	Live      bool            `json:"live"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

func NewQuote(symbol string, price decimal.Decimal, live bool, at time.Time) Quote {
	return Quote{
		Symbol:    symbol,
		Price:     price,
		Formatted: util.FormatUSD(price),
		Live:      live,
		FetchedAt: at,
	}
}
