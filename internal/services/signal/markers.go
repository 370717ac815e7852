package signal

// field identifies a labelled line in an upstream reply.
type field int

const (
	fieldHeadline field = iota
	fieldAsset
	fieldPrice
	fieldView
	fieldEntryZone
	fieldTakeProfits
	fieldStopLoss
	fieldInvalidateIf
	fieldInsights
)

const (
	MarkerHeadline     = "🧠 Signal —"
	MarkerAsset        = "📈 Asset:"
	MarkerPrice        = "💰 Current Price:"
	MarkerView         = "💡 View:"
	MarkerEntryZone    = "🎯 Entry Zone:"
	MarkerTakeProfits  = "💰 Take Profits:"
	MarkerStopLoss     = "🛑 Stop Loss:"
	MarkerInvalidateIf = "🚨 Invalidate if:"
	MarkerInsights     = "🔍 Insights:"

	Bullet = "•"
)

type marker struct {
	literal string
	field   field
}

// markers is scanned in order; the first literal found in a line wins.
var markers = []marker{
	{MarkerHeadline, fieldHeadline},
	{MarkerAsset, fieldAsset},
	{MarkerPrice, fieldPrice},
	{MarkerView, fieldView},
	{MarkerEntryZone, fieldEntryZone},
	{MarkerTakeProfits, fieldTakeProfits},
	{MarkerStopLoss, fieldStopLoss},
	{MarkerInvalidateIf, fieldInvalidateIf},
	{MarkerInsights, fieldInsights},
}

// structuredFields are rendered as bullets, in this order, ahead of insights.
var structuredFields = []field{
	fieldView,
	fieldEntryZone,
	fieldTakeProfits,
	fieldStopLoss,
	fieldInvalidateIf,
}

func (f field) literal() string {
	for _, m := range markers {
		if m.field == f {
			return m.literal
		}
	}
	return ""
}
