package models

import "time"

// Bias is the directional read of a signal.
type Bias string

const (
	BiasBullish Bias = "Bullish"
	BiasBearish Bias = "Bearish"
	BiasNeutral Bias = "Neutral"
)

// Mode records which path produced a signal.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeMock     Mode = "mock"
	ModeFallback Mode = "fallback"
)

// Source is an attribution shown under a signal.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SignalResponse is the normalized signal. It is immutable once stored,
// except for Bookmarked.
type SignalResponse struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Headline     string    `json:"headline"`
	Asset        string    `json:"asset"`
	CurrentPrice string    `json:"currentPrice"`
	View         string    `json:"view"`
	Bias         Bias      `json:"bias"`
	EntryZone    string    `json:"entryZone"`
	TakeProfits  string    `json:"takeProfits"`
	StopLoss     string    `json:"stopLoss"`
	InvalidateIf string    `json:"invalidateIf"`
	Insights     []string  `json:"insights"`
	Bullets      []string  `json:"bullets"`
	Sources      []Source  `json:"sources"`
	Mode         Mode      `json:"mode"`
	RawContent   string    `json:"rawContent,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Bookmarked   bool      `json:"bookmarked"`
}

// Clone returns a deep copy so callers cannot mutate stored slices.
func (s *SignalResponse) Clone() *SignalResponse {
	if s == nil {
		return nil
	}
	c := *s
	c.Insights = append([]string(nil), s.Insights...)
	c.Bullets = append([]string(nil), s.Bullets...)
	c.Sources = append([]Source(nil), s.Sources...)
	return &c
}
