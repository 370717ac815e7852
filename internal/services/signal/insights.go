package signal

import (
	"fmt"
	"strings"
)

// DefaultInsightMinLength is the rune count below which a category insight
// is treated as an unanswered prompt line.
const DefaultInsightMinLength = 50

type category int

const (
	categoryNone category = iota
	categoryDriver
	categoryChart
	categorySupporting
	categoryWildcard
)

// InsightTemplates hold the canned text used for thin or missing insights.
// Each template is a fmt string taking the asset symbol.
type InsightTemplates struct {
	Driver     string
	Chart      string
	Supporting string
	Wildcard   string
}

// DefaultReplacements stand in for a category insight that carries no content.
var DefaultReplacements = InsightTemplates{
	Driver:     "What's driving this move? → %s: market sentiment shift detected via social metrics and volume analysis",
	Chart:      "Recent chart behavior → %s: price consolidation near key support with bullish divergence forming",
	Supporting: "Supporting/Contradicting signals → %s: RSI showing oversold bounce potential, funding rates neutral",
	Wildcard:   "Wildcard/Meta → %s: Fear & Greed index at extreme levels, potential contrarian opportunity",
}

// DefaultInsights are used when a reply has no insight lines at all.
var DefaultInsights = InsightTemplates{
	Driver:     "What's driving this move? → Live market data analysis shows institutional flow patterns in %s",
	Chart:      "Recent chart behavior → Technical structure indicates key level interaction for %s",
	Supporting: "Supporting/Contradicting signals → Volume and momentum indicators align with directional bias on %s",
	Wildcard:   "Wildcard/Meta → Market sentiment and macro factors provide additional context for %s",
}

func (t InsightTemplates) forCategory(c category) string {
	switch c {
	case categoryDriver:
		return t.Driver
	case categoryChart:
		return t.Chart
	case categorySupporting:
		return t.Supporting
	case categoryWildcard:
		return t.Wildcard
	}
	return ""
}

func classify(insight string) category {
	switch {
	case strings.Contains(insight, "What's driving this move?"):
		return categoryDriver
	case strings.Contains(insight, "Recent chart behavior"):
		return categoryChart
	case strings.Contains(insight, "Supporting"), strings.Contains(insight, "Contradicting"):
		return categorySupporting
	case strings.Contains(insight, "Wildcard"), strings.Contains(insight, "Meta"):
		return categoryWildcard
	}
	return categoryNone
}

// sufficient returns the candidate unchanged unless it is a short category
// line, in which case the category's canned replacement is returned.
func (p *Parser) sufficient(candidate, asset string) string {
	c := classify(candidate)
	if c == categoryNone || len([]rune(candidate)) >= p.minInsightLength {
		return candidate
	}
	return fmt.Sprintf(p.replacements.forCategory(c), asset)
}

// defaultInsights builds one insight per category. When a price is known the
// chart insight mentions it.
func (p *Parser) defaultInsights(asset, price string) []string {
	chart := fmt.Sprintf(p.defaults.Chart, asset)
	if price != "" {
		chart += " around " + price
	}
	return []string{
		fmt.Sprintf(p.defaults.Driver, asset),
		chart,
		fmt.Sprintf(p.defaults.Supporting, asset),
		fmt.Sprintf(p.defaults.Wildcard, asset),
	}
}
