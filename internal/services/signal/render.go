package signal

import (
	"strings"

	"Traxor/internal/domain/models"
)

// Render writes s back out in the marker format Parse reads.
func Render(s *models.SignalResponse) string {
	var b strings.Builder
	line := func(parts ...string) {
		b.WriteString(strings.Join(parts, " "))
		b.WriteByte('\n')
	}

	line(MarkerHeadline, s.Headline)
	line(MarkerAsset, s.Asset)
	if s.CurrentPrice != "" {
		line(MarkerPrice, s.CurrentPrice)
	}
	line(Bullet, MarkerView, s.View)
	line(Bullet, MarkerEntryZone, s.EntryZone)
	line(Bullet, MarkerTakeProfits, s.TakeProfits)
	line(Bullet, MarkerStopLoss, s.StopLoss)
	line(Bullet, MarkerInvalidateIf, s.InvalidateIf)
	if len(s.Insights) > 0 {
		b.WriteByte('\n')
		line(MarkerInsights)
		for _, in := range s.Insights {
			line(Bullet, in)
		}
	}
	return b.String()
}
