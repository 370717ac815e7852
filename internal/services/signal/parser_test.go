package signal

import (
	"strings"
	"testing"
	"time"

	"Traxor/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestParser(opts ...ParserOption) *Parser {
	opts = append([]ParserOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewParser(NewResolver("SOL"), opts...)
}

const wellFormed = `🧠 Signal — Bitcoin holds the range
📈 Asset: BTC
💰 Current Price: $107,607 → spot
• 💡 View: Bullish → Higher lows above the 105k shelf with spot bid returning
• 🎯 Entry Zone: $106,500 to $108,500 → range support retest
• 💰 Take Profits: TP1 $112,000 → TP2 $118,000 → TP3 $125,000
• 🛑 Stop Loss: $104,000 (below range support)
• 🚨 Invalidate if: Daily close below 104k or funding flips sharply positive

🔍 Insights:
• What's driving this move? → ETF inflows resumed for a third straight session
• Recent chart behavior → Tightening range with higher lows on the 4h chart
• Supporting or contradicting signals → RSI neutral at 52, open interest flat
• Wildcard/Meta factor → Year-end rebalancing can exaggerate thin-liquidity moves`

func TestParseWellFormed(t *testing.T) {
	res := newTestParser().Parse(wellFormed, "BTC", "")
	s := res.Signal

	assert.Equal(t, 5, res.Extracted)
	assert.Equal(t, "Bitcoin holds the range", s.Headline)
	assert.Equal(t, "BTC", s.Asset)
	assert.Equal(t, "$107,607 → spot", s.CurrentPrice)
	assert.Equal(t, "Bullish → Higher lows above the 105k shelf with spot bid returning", s.View)
	assert.Equal(t, models.BiasBullish, s.Bias)
	assert.Equal(t, "$106,500 to $108,500 → range support retest", s.EntryZone)
	assert.Equal(t, "TP1 $112,000 → TP2 $118,000 → TP3 $125,000", s.TakeProfits)
	assert.Equal(t, "$104,000 (below range support)", s.StopLoss)
	assert.Equal(t, "Daily close below 104k or funding flips sharply positive", s.InvalidateIf)
	require.Len(t, s.Insights, 4)
	assert.Equal(t, "What's driving this move? → ETF inflows resumed for a third straight session", s.Insights[0])

	require.Len(t, s.Bullets, 9)
	assert.Equal(t, "💡 View: "+s.View, s.Bullets[0])
	assert.Equal(t, "🚨 Invalidate if: "+s.InvalidateIf, s.Bullets[4])
	assert.Equal(t, s.Insights, s.Bullets[5:])
	assert.Equal(t, fixedNow, s.Timestamp)
}

func TestParseIsTotal(t *testing.T) {
	p := newTestParser()
	inputs := []string{
		"",
		"   \n\t\n  ",
		"💡 View:",
		"🔍 Insights:",
		"🛑 Stop Loss: $1 \n 📈 Asset: \n 🧠 Signal —",
		"• 🚨 Invalidate if: soon\n🧠 Signal — reordered\n• 💡 View: Bearish",
		"**** __ ** broken emphasis",
		"💰 Current Price: not a number\n🎯 Entry Zone",
		strings.Repeat("• x ", 500),
	}
	for _, in := range inputs {
		s := p.Parse(in, "BTC", "").Signal
		assert.NotEmpty(t, s.Bullets, "%q", in)
		assert.Len(t, s.Insights, 4, "%q", in)
		assert.NotEmpty(t, s.Asset, "%q", in)
		assert.NotEmpty(t, s.Headline, "%q", in)
		for _, v := range []string{s.View, s.EntryZone, s.TakeProfits, s.StopLoss, s.InvalidateIf} {
			assert.NotEmpty(t, v, "%q", in)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	p := newTestParser()
	first := p.Parse(wellFormed, "BTC", "").Signal
	second := p.Parse(Render(first), "BTC", "").Signal

	assert.Equal(t, first.Headline, second.Headline)
	assert.Equal(t, first.Asset, second.Asset)
	assert.Equal(t, first.CurrentPrice, second.CurrentPrice)
	assert.Equal(t, first.View, second.View)
	assert.Equal(t, first.EntryZone, second.EntryZone)
	assert.Equal(t, first.TakeProfits, second.TakeProfits)
	assert.Equal(t, first.StopLoss, second.StopLoss)
	assert.Equal(t, first.InvalidateIf, second.InvalidateIf)
	assert.Equal(t, first.Insights, second.Insights)
	assert.Equal(t, first.Bullets, second.Bullets)
}

func TestParseRoundTripOfDefaults(t *testing.T) {
	p := newTestParser()
	first := p.Parse("", "ETH", "$2,740.40").Signal
	second := p.Parse(Render(first), "ETH", "").Signal
	assert.Equal(t, first.Headline, second.Headline)
	assert.Equal(t, first.EntryZone, second.EntryZone)
	assert.Equal(t, first.Insights, second.Insights)
}

func TestInsightSufficiencyThreshold(t *testing.T) {
	p := newTestParser()

	short := "🔍 Insights:\n• What's driving this move?"
	s := p.Parse(short, "BTC", "").Signal
	require.Len(t, s.Insights, 1)
	assert.Contains(t, s.Insights[0], "BTC")
	assert.NotEqual(t, "What's driving this move?", s.Insights[0])
	assert.True(t, strings.HasPrefix(s.Insights[0], "What's driving this move? →"))

	long := "What's driving this move? → spot ETF demand and shrinking exchange balances"
	require.GreaterOrEqual(t, len([]rune(long)), DefaultInsightMinLength)
	s = p.Parse("🔍 Insights:\n• "+long, "BTC", "").Signal
	assert.Equal(t, []string{long}, s.Insights)

	s = p.Parse("🔍 Insights:\n• Whales bid", "BTC", "").Signal
	assert.Equal(t, []string{"Whales bid"}, s.Insights)
}

func TestInsightCategoriesReplaced(t *testing.T) {
	raw := "🔍 Insights:\n• Recent chart behavior →\n• Supporting signals →\n• Contradicting →\n• Wildcard →"
	s := newTestParser().Parse(raw, "HYPE", "").Signal
	require.Len(t, s.Insights, 4)
	assert.True(t, strings.HasPrefix(s.Insights[0], "Recent chart behavior →"))
	assert.True(t, strings.HasPrefix(s.Insights[1], "Supporting/Contradicting signals →"))
	assert.True(t, strings.HasPrefix(s.Insights[2], "Supporting/Contradicting signals →"))
	assert.True(t, strings.HasPrefix(s.Insights[3], "Wildcard/Meta →"))
	for _, in := range s.Insights {
		assert.Contains(t, in, "HYPE")
	}
}

func TestInsightThresholdIsConfigurable(t *testing.T) {
	p := newTestParser(WithInsightMinLength(10))
	s := p.Parse("🔍 Insights:\n• What's driving this move?", "BTC", "").Signal
	assert.Equal(t, []string{"What's driving this move?"}, s.Insights)
}

func TestInsightLinesOutsideSectionAreIgnored(t *testing.T) {
	s := newTestParser().Parse("• 💡 View: Bearish → lower highs\n• a stray bullet", "SOL", "").Signal
	assert.Len(t, s.Insights, 4)
	assert.Equal(t, models.BiasBearish, s.Bias)
	assert.NotContains(t, s.Bullets, "a stray bullet")
}

func TestOnlyAssetMarker(t *testing.T) {
	res := newTestParser().Parse("📈 Asset: ETH", "SOL", "")
	s := res.Signal

	assert.Equal(t, 0, res.Extracted)
	assert.Equal(t, "ETH", s.Asset)
	assert.Equal(t, defaultView, s.View)
	assert.Equal(t, defaultInvalidateIf, s.InvalidateIf)
	assert.NotEmpty(t, s.EntryZone)
	assert.NotEmpty(t, s.TakeProfits)
	assert.NotEmpty(t, s.StopLoss)
	require.Len(t, s.Insights, 4)
	for _, in := range s.Insights {
		assert.Contains(t, in, "ETH")
	}
	assert.Len(t, s.Bullets, 9)
	assert.Equal(t, "ETH Signal — Wednesday, October 14, 2026", s.Headline)
}

func TestDefaultsDerivedFromLivePrice(t *testing.T) {
	s := newTestParser().Parse("", "BTC", "$107,607.00").Signal

	assert.Equal(t, "$107,607.00", s.CurrentPrice)
	assert.Equal(t, "$105,454.86 to $109,759.14 → Current price zone with 2% buffer", s.EntryZone)
	assert.Equal(t, "TP1 $112,987.35 → TP2 $118,367.70 → TP3 $123,748.05", s.TakeProfits)
	assert.Equal(t, "$102,226.65 → 5% below current price", s.StopLoss)
	assert.Equal(t, models.BiasNeutral, s.Bias)
	assert.Contains(t, s.Insights[1], "$107,607.00")
}

func TestExtractedPriceAnchorsDefaults(t *testing.T) {
	s := newTestParser().Parse("💰 Current Price: $100", "XYZ", "").Signal
	assert.Equal(t, "$100", s.CurrentPrice)
	assert.Equal(t, "$98.00 to $102.00 → Current price zone with 2% buffer", s.EntryZone)
}

func TestLivePriceDoesNotOverrideExtracted(t *testing.T) {
	s := newTestParser().Parse("💰 Current Price: $150 → from chart", "SOL", "$158.63").Signal
	assert.Equal(t, "$150 → from chart", s.CurrentPrice)
}

func TestSupplementalBulletsFromUnformattedReply(t *testing.T) {
	raw := "Here is my take:\n• Momentum is fading into resistance\n• Funding flipped negative overnight"
	s := newTestParser().Parse(raw, "SOL", "").Signal

	assert.Contains(t, s.Bullets, "Momentum is fading into resistance")
	assert.Contains(t, s.Bullets, "Funding flipped negative overnight")
	assert.Len(t, s.Insights, 4)
	assert.Equal(t, s.Insights, s.Bullets[len(s.Bullets)-4:])
}

func TestSupplementalBulletFromPlainText(t *testing.T) {
	s := newTestParser().Parse("🧠 Markets are choppy today.\n---", "SOL", "").Signal
	assert.Contains(t, s.Bullets, "Markets are choppy today.")
}

func TestSupplementalSkippedWhenFieldsExtracted(t *testing.T) {
	s := newTestParser().Parse("• 💡 View: Bullish\nsome chatter", "SOL", "").Signal
	assert.NotContains(t, s.Bullets, "some chatter")
	assert.Len(t, s.Bullets, 9)
}

func TestEmphasisIsStripped(t *testing.T) {
	s := newTestParser().Parse("**📈 Asset:** __PNUT__\n• **💡 View:** Bearish → **weak** bids", "SOL", "").Signal
	assert.Equal(t, "PNUT", s.Asset)
	assert.Equal(t, "Bearish → weak bids", s.View)
	assert.NotContains(t, s.RawContent, "**")
}

func TestFirstValueWinsForRepeatedMarker(t *testing.T) {
	s := newTestParser().Parse("• 💡 View: Bullish → first\n• 💡 View: Bearish → second", "SOL", "").Signal
	assert.Equal(t, "Bullish → first", s.View)
}

func TestEmptyMarkerDoesNotHideLaterValue(t *testing.T) {
	res := newTestParser().Parse("• 💡 View:\n• 💡 View: Bullish → strong bid", "SOL", "")
	assert.Equal(t, "Bullish → strong bid", res.Signal.View)
	assert.Equal(t, models.BiasBullish, res.Signal.Bias)
	assert.Equal(t, 1, res.Extracted)
}

func TestReplyAssetDropsQueryPrice(t *testing.T) {
	s := newTestParser().Parse("📈 Asset: ETH\n🔍 Insights:\n• What's driving this move?", "SOL", "$158.63").Signal

	assert.Equal(t, "ETH", s.Asset)
	assert.Empty(t, s.CurrentPrice)
	assert.NotContains(t, s.EntryZone, "$155.46")
	assert.NotContains(t, s.EntryZone, "$")
	require.Len(t, s.Insights, 1)
	assert.Contains(t, s.Insights[0], "ETH")
	assert.NotContains(t, s.Insights[0], "SOL")
	for _, b := range s.Bullets {
		assert.NotContains(t, b, "158.63")
	}
}

func TestSameReplyAssetKeepsLivePrice(t *testing.T) {
	s := newTestParser().Parse("📈 Asset: SOL", "SOL", "$158.63").Signal
	assert.Equal(t, "$158.63", s.CurrentPrice)
	assert.Contains(t, s.EntryZone, "$155.46")
}

func TestBiasOf(t *testing.T) {
	assert.Equal(t, models.BiasBullish, BiasOf("Bullish → strong"))
	assert.Equal(t, models.BiasBearish, BiasOf("bearish, not bullish yet"))
	assert.Equal(t, models.BiasBullish, BiasOf("Cautiously BULLISH; bearish below 100"))
	assert.Equal(t, models.BiasNeutral, BiasOf("Mixed → choppy"))
	assert.Equal(t, models.BiasNeutral, BiasOf(""))
}
