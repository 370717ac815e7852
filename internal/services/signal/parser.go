package signal

import (
	"regexp"
	"strings"
	"time"

	"Traxor/internal/domain/models"
	"Traxor/pkg/util"
)

var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underlinePattern = regexp.MustCompile(`__(.*?)__`)
	bulletFragment   = regexp.MustCompile(Bullet + `[^` + Bullet + `\n]+`)
	glyphPattern     = regexp.MustCompile(`🧠|📈|🔍|📎|---`)
)

// ParserOption configures Parser.
type ParserOption func(*Parser)

// WithInsightMinLength sets the sufficiency threshold, counted in runes.
func WithInsightMinLength(n int) ParserOption {
	return func(p *Parser) {
		if n >= 0 {
			p.minInsightLength = n
		}
	}
}

// WithInsightTemplates overrides the canned insight text.
func WithInsightTemplates(replacements, defaults InsightTemplates) ParserOption {
	return func(p *Parser) {
		p.replacements = replacements
		p.defaults = defaults
	}
}

// WithClock sets the time source for timestamps and default headlines.
func WithClock(now func() time.Time) ParserOption {
	return func(p *Parser) {
		p.now = now
	}
}

// Parser turns marker-formatted text into a SignalResponse. Parse never fails.
type Parser struct {
	resolver         *Resolver
	minInsightLength int
	replacements     InsightTemplates
	defaults         InsightTemplates
	now              func() time.Time
}

func NewParser(resolver *Resolver, opts ...ParserOption) *Parser {
	p := &Parser{
		resolver:         resolver,
		minInsightLength: DefaultInsightMinLength,
		replacements:     DefaultReplacements,
		defaults:         DefaultInsights,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is a parsed response plus how many of the five structured fields
// were found in the text.
type Result struct {
	Signal    *models.SignalResponse
	Extracted int
}

// Parse extracts the labelled fields from raw. asset is the symbol resolved
// from the query; livePrice, when not empty, is a formatted USD price.
func (p *Parser) Parse(raw, asset, livePrice string) Result {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		asset = p.resolver.Default()
	}

	cleaned := StripEmphasis(raw)
	values := make(map[field]string, len(markers))
	var (
		candidates []string
		unconsumed []string
		inInsights bool
	)

	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if f, value, ok := matchMarker(line); ok {
			if f == fieldInsights {
				inInsights = true
				continue
			}
			// First non-empty value wins; an empty label line does not claim the field.
			if _, seen := values[f]; !seen && value != "" {
				values[f] = value
			}
			continue
		}

		if inInsights && strings.HasPrefix(line, Bullet) {
			candidate := strings.TrimSpace(strings.TrimPrefix(line, Bullet))
			if candidate != "" {
				candidates = append(candidates, candidate)
			}
			continue
		}

		unconsumed = append(unconsumed, line)
	}

	if v := values[fieldAsset]; v != "" {
		// livePrice was quoted for the query's asset, not the reply's.
		if named := p.resolver.ResolveOr(v, asset); named != asset {
			asset, livePrice = named, ""
		}
	}

	insights := make([]string, 0, len(candidates))
	for _, c := range candidates {
		insights = append(insights, p.sufficient(c, asset))
	}

	currentPrice := values[fieldPrice]
	if currentPrice == "" {
		currentPrice = livePrice
	}
	anchor, anchored := util.ParseUSD(livePrice)
	if !anchored {
		anchor, anchored = util.ParseUSD(values[fieldPrice])
	}

	extracted := 0
	fills := structuredDefaults(anchor, anchored)
	for _, f := range structuredFields {
		if values[f] != "" {
			extracted++
			continue
		}
		values[f] = fills[f]
	}

	if len(insights) == 0 {
		insights = p.defaultInsights(asset, livePrice)
	}

	bullets := make([]string, 0, len(structuredFields)+len(insights)+1)
	for _, f := range structuredFields {
		bullets = append(bullets, f.literal()+" "+values[f])
	}
	if extracted == 0 {
		bullets = append(bullets, supplementalBullets(cleaned, unconsumed, candidates)...)
	}
	bullets = append(bullets, insights...)

	now := p.now()
	headline := values[fieldHeadline]
	if headline == "" {
		headline = asset + " Signal — " + util.LongDate(now)
	}

	return Result{
		Signal: &models.SignalResponse{
			Headline:     headline,
			Asset:        asset,
			CurrentPrice: currentPrice,
			View:         values[fieldView],
			Bias:         BiasOf(values[fieldView]),
			EntryZone:    values[fieldEntryZone],
			TakeProfits:  values[fieldTakeProfits],
			StopLoss:     values[fieldStopLoss],
			InvalidateIf: values[fieldInvalidateIf],
			Insights:     insights,
			Bullets:      bullets,
			RawContent:   cleaned,
			Timestamp:    now,
		},
		Extracted: extracted,
	}
}

func matchMarker(line string) (field, string, bool) {
	for _, m := range markers {
		if i := strings.Index(line, m.literal); i >= 0 {
			return m.field, strings.TrimSpace(line[i+len(m.literal):]), true
		}
	}
	return 0, "", false
}

// supplementalBullets recovers content from replies that ignored the marker
// format: bullet fragments first, else the leftover lines as one bullet.
func supplementalBullets(cleaned string, unconsumed, candidates []string) []string {
	used := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		used[c] = struct{}{}
	}

	var out []string
	for _, frag := range bulletFragment.FindAllString(cleaned, -1) {
		frag = strings.TrimSpace(strings.TrimPrefix(frag, Bullet))
		if frag == "" {
			continue
		}
		if _, dup := used[frag]; dup {
			continue
		}
		if _, _, isMarker := matchMarker(frag); isMarker {
			continue
		}
		used[frag] = struct{}{}
		out = append(out, frag)
	}
	if len(out) > 0 {
		return out
	}

	if len(unconsumed) == 0 {
		return nil
	}
	rest := strings.TrimSpace(glyphPattern.ReplaceAllString(strings.Join(unconsumed, "\n"), ""))
	if rest == "" {
		return nil
	}
	return []string{rest}
}

// StripEmphasis removes **bold** and __underline__ markup.
func StripEmphasis(s string) string {
	s = boldPattern.ReplaceAllString(s, "$1")
	return underlinePattern.ReplaceAllString(s, "$1")
}

// BiasOf reads the direction from a view line. The earliest of "bullish" or
// "bearish" wins; anything else is neutral.
func BiasOf(view string) models.Bias {
	v := strings.ToLower(view)
	bull := strings.Index(v, "bullish")
	bear := strings.Index(v, "bearish")
	switch {
	case bull >= 0 && (bear < 0 || bull < bear):
		return models.BiasBullish
	case bear >= 0:
		return models.BiasBearish
	}
	return models.BiasNeutral
}
