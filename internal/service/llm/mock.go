package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	"Traxor/pkg/util"
)

// MockCompleter answers with canned marker-format replies. It stands in for
// the live endpoint when no credential is configured.
type MockCompleter struct {
	now   func() time.Time
	delay time.Duration
}

var _ domrepo.ChatCompleter = (*MockCompleter)(nil)

type MockOption func(*MockCompleter)

// WithMockDelay simulates upstream latency.
func WithMockDelay(d time.Duration) MockOption {
	return func(m *MockCompleter) { m.delay = d }
}

func WithMockClock(now func() time.Time) MockOption {
	return func(m *MockCompleter) { m.now = now }
}

func NewMockCompleter(opts ...MockOption) *MockCompleter {
	m := &MockCompleter{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type cannedReply struct {
	keywords []string
	body     string
}

// Checked in order against the words of the query.
var cannedReplies = []cannedReply{
	{[]string{"btc", "bitcoin"}, `📈 Asset: BTC

• 💡 View: Neutral → Consolidating in range, awaiting directional catalyst
• 🎯 Entry Zone: $106,500 to $108,500
• 💰 Take Profits: TP1 $112,000 → TP2 $118,000 → TP3 $125,000
• 🛑 Stop Loss: $104,000 (below range support)
• 🚨 Invalidate if: Daily close below 104k or rejection at resistance with high volume

🔍 Insights:
• Institutional profit-taking and holiday season liquidity affecting price action
• Sideways consolidation with decreasing volatility suggests coiling for next move
• Strong support at 105k level with whale accumulation continuing
• Resistance at 110k proving strong with holiday season typically lower volume`},
	{[]string{"eth", "ethereum"}, `📈 Asset: ETH

• 💡 View: Bearish → Continued weakness below key resistance levels
• 🎯 Entry Zone: $2,720 to $2,760 (short)
• 💰 Take Profits: TP1 $2,650 → TP2 $2,550 → TP3 $2,400
• 🛑 Stop Loss: $2,820 (above recent swing high)
• 🚨 Invalidate if: Daily close above 2820 or BTC breaks above 110k with strength

🔍 Insights:
• Layer 2 competition and reduced DeFi activity weighing on sentiment
• ETH/BTC ratio declining showing relative weakness over the last month
• Lower highs and lower lows pattern forming with weak momentum on rallies
• Gas fees remaining low indicating reduced network usage across the chain`},
	{[]string{"sol", "solana"}, `📈 Asset: SOL

• 💡 View: Bearish → Breaking below key support with increasing selling pressure
• 🎯 Entry Zone: $155.20 to $160.80 (short)
• 💰 Take Profits: TP1 $145.00 → TP2 $135.50 → TP3 $125.00
• 🛑 Stop Loss: $165.00 (above recent swing high)
• 🚨 Invalidate if: Daily close above 165.00 or BTC breaks above 110k with strength

🔍 Insights:
• Broader crypto market weakness and profit-taking affecting momentum
• Break below ascending triangle support with volume confirmation
• RSI showing bearish momentum with volume increasing on red candles
• Strong support at 150 psychological level could provide bounce opportunity`},
	{[]string{"hype", "hyperliquid"}, `📈 Asset: HYPE

• 💡 View: Bullish → Strong momentum despite broader market weakness
• 🎯 Entry Zone: $40.50 to $42.00
• 💰 Take Profits: TP1 $45.00 → TP2 $48.50 → TP3 $52.00
• 🛑 Stop Loss: $38.50 (below key support)
• 🚨 Invalidate if: Volume drops below 500M or BTC crashes below 105k

🔍 Insights:
• New token with strong community backing and viral momentum across socials
• High volume suggesting institutional interest despite the recent launch
• Social sentiment extremely bullish with a steadily growing holder base
• Risk management crucial due to high volatility and the token's newness`},
	{[]string{"moodeng", "moo deng"}, `📈 Asset: MOODENG

• 💡 View: Bearish → Meme coin correction after initial pump
• 🎯 Entry Zone: $0.175 to $0.185 (bounce play)
• 💰 Take Profits: TP1 $0.195 → TP2 $0.210 → TP3 $0.225
• 🛑 Stop Loss: $0.165 (below recent low)
• 🚨 Invalidate if: Volume stays below 5M or broader meme sector weakness

🔍 Insights:
• Typical meme coin volatility with -11% move creating oversold conditions
• Social media buzz still strong suggesting a potential bounce from here
• Low market cap means high risk and high reward potential for traders
• Watch for whale movements and social sentiment shifts in the next days`},
	{[]string{"pnut", "peanut"}, `📈 Asset: PNUT

• 💡 View: Neutral → Oversold bounce potential after sharp decline
• 🎯 Entry Zone: $0.255 to $0.265
• 💰 Take Profits: TP1 $0.280 → TP2 $0.295 → TP3 $0.315
• 🛑 Stop Loss: $0.245 (below recent support)
• 🚨 Invalidate if: Breaks below $0.24 or meme sector continues weakness

🔍 Insights:
• Sharp -9.4% decline creating potential oversold bounce setup this week
• Meme coin sector showing mixed signals with selective strength in leaders
• Volume still decent suggesting some institutional interest remains here
• Risk management essential due to the high volatility nature of the token`},
}

const overviewReply = `📈 Market Overview

• 💡 View: Neutral → Choppy conditions across crypto with no clear leader
• 🎯 Strategy: Selective positioning in quality assets with tight risk management
• 💰 Opportunities: Look for oversold bounces in strong fundamentals
• 🛑 Risk Management: Reduce position sizes, use tight stops
• 🚨 Watch for: Institutional rebalancing and low liquidity moves

🔍 Insights:
• Bitcoin consolidating in the 105k-110k range with decreasing volatility
• Altcoins showing mixed performance with sector rotation ongoing
• Meme coins experiencing typical high volatility corrections this month
• Thin liquidity creating exaggerated moves in both directions lately`

func (m *MockCompleter) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	if m.delay > 0 {
		t := time.NewTimer(m.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	query := wordString(lastUserQuery(req.Messages))
	body := overviewReply
	for _, r := range cannedReplies {
		if containsAny(query, r.keywords) {
			body = r.body
			break
		}
	}
	return fmt.Sprintf("🧠 Signal — %s\n\n%s", util.LongDate(m.now()), body), nil
}

// lastUserQuery returns the first paragraph of the last user message, which
// holds the query itself.
func lastUserQuery(msgs []models.ChatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != models.RoleUser {
			continue
		}
		content := msgs[i].Content
		if idx := strings.Index(content, "\n\n"); idx >= 0 {
			content = content[:idx]
		}
		return content
	}
	return ""
}

// wordString lowercases s and joins its letter runs with single spaces,
// padded on both ends so phrases match on word boundaries.
func wordString(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(c rune) bool { return !unicode.IsLetter(c) })
	return " " + strings.Join(words, " ") + " "
}

func containsAny(words string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(words, " "+p+" ") {
			return true
		}
	}
	return false
}
