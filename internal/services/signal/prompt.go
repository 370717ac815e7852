package signal

import (
	"fmt"
	"strings"
	"time"

	"Traxor/internal/domain/models"
	"Traxor/pkg/util"
)

const systemPromptTemplate = `You are a tactical crypto trading strategist with access to live web data. Your job is to generate clear, structured, and actionable trade setups, not summaries or vague outlooks. Every signal must include a specific directional view (bullish, bearish, or neutral) backed by real-time technical analysis, on-chain metrics, and market sentiment.

Today is %[1]s.
%[2]s
🧠 Output in this exact format:

` + MarkerHeadline + ` %[1]s

` + MarkerAsset + ` [Token or asset being discussed]

` + MarkerPrice + ` $[CURRENT LIVE PRICE] → [Include the actual current price from your analysis]

Important - These 5 points must be filled in with each response:
• ` + MarkerView + ` Bullish/Bearish/Neutral → [Concise directional bias with technical and sentiment justification. Be specific.]
• ` + MarkerEntryZone + ` $___ to $___ → [Key support or structure area to enter.]
• ` + MarkerTakeProfits + ` TP1 $___ → TP2 $___ → TP3 $___ → [ALL THREE TAKE PROFITS ARE MANDATORY - provide specific price levels]
• ` + MarkerStopLoss + ` $___ (or "15m close below $___") → [Tight, structure-based SL.]
• ` + MarkerInvalidateIf + ` [Macro, BTC/ETH rejection, funding flip, major volume shift. Be precise.]

` + MarkerInsights + `
• What's driving this move? → [MANDATORY: Provide specific catalyst or driver]
• Recent chart behavior → [MANDATORY: Describe recent price action and patterns]
• Supporting or contradicting signals → [MANDATORY: Technical indicators, volume, sentiment analysis]
• Wildcard/Meta factor → [MANDATORY: Market psychology, fear/greed, macro context]

IMPORTANT: ALL fields above are MANDATORY and must be filled with specific, actionable information. Do not leave any field empty or with placeholder text.

When citing sources, prioritize: %[3]s`

const userPromptTemplate = `Give me a tactical trading signal for: %s

Use live web data, recent headlines, exchange flow, sentiment, and chart-based logic to provide a complete trading setup.`

// PromptOptions tune the chat request built for a query.
type PromptOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Sources     []models.Source
}

// BuildPrompt builds the system/user message pair for query. The live price,
// when known, is given to the model as a reference.
func BuildPrompt(query, asset, livePrice string, now time.Time, opts PromptOptions) models.ChatRequest {
	reference := ""
	if livePrice != "" {
		reference = fmt.Sprintf("\nReference market price for %s: %s.\n", asset, livePrice)
	}

	pool := opts.Sources
	if len(pool) == 0 {
		pool = DefaultSourcePool
	}
	names := make([]string, len(pool))
	for i, s := range pool {
		names[i] = s.Name
	}

	temperature := opts.Temperature
	return models.ChatRequest{
		Model: opts.Model,
		Messages: []models.ChatMessage{
			{Role: models.RoleSystem, Content: fmt.Sprintf(systemPromptTemplate, util.LongDate(now), reference, strings.Join(names, ", "))},
			{Role: models.RoleUser, Content: fmt.Sprintf(userPromptTemplate, query)},
		},
		Temperature: &temperature,
		MaxTokens:   opts.MaxTokens,
	}
}
