package signal

import (
	"regexp"
	"strings"
	"sync"

	"Traxor/internal/domain/models"
)

// DefaultSourceCount is how many attributions a signal carries.
const DefaultSourceCount = 3

var linkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\((https?://[^\s()]+)\)`)

// DefaultSourcePool is the rotation order for attributions.
var DefaultSourcePool = []models.Source{
	{Name: "tronweekly.com", URL: "https://tronweekly.com"},
	{Name: "cryptotimes.io", URL: "https://cryptotimes.io"},
	{Name: "thecoinrepublic.com", URL: "https://thecoinrepublic.com"},
	{Name: "beincrypto.com", URL: "https://beincrypto.com"},
	{Name: "fxleaders.com", URL: "https://fxleaders.com"},
	{Name: "bitget.com", URL: "https://bitget.com"},
	{Name: "coindesk.com", URL: "https://coindesk.com"},
	{Name: "cryptopotato.com", URL: "https://cryptopotato.com"},
	{Name: "cryptobriefing.com", URL: "https://cryptobriefing.com"},
	{Name: "cryptoslate.com", URL: "https://cryptoslate.com"},
	{Name: "cointelegraph.com", URL: "https://cointelegraph.com"},
	{Name: "lookonchain.com", URL: "https://lookonchain.com"},
}

// Rotation hands out consecutive pool entries, wrapping, and advances by the
// number handed out. It is safe for concurrent use.
type Rotation struct {
	mu   sync.Mutex
	pool []models.Source
	next int
}

// NewRotation copies pool. An empty pool uses DefaultSourcePool.
func NewRotation(pool []models.Source) *Rotation {
	if len(pool) == 0 {
		pool = DefaultSourcePool
	}
	return &Rotation{pool: append([]models.Source(nil), pool...)}
}

func (r *Rotation) Next(count int) []models.Source {
	if count <= 0 {
		return []models.Source{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Source, count)
	for i := range out {
		out[i] = r.pool[(r.next+i)%len(r.pool)]
	}
	r.next = (r.next + count) % len(r.pool)
	return out
}

// Len is the pool size.
func (r *Rotation) Len() int {
	return len(r.pool)
}

// ExtractSources returns markdown links found in text, first occurrence of
// each URL wins.
func ExtractSources(text string) []models.Source {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]models.Source, 0, len(matches))
	for _, m := range matches {
		name, url := strings.TrimSpace(m[1]), m[2]
		if _, dup := seen[url]; dup || name == "" {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, models.Source{Name: name, URL: url})
	}
	return out
}

// SourcePicker prefers links cited in the reply and falls back to rotation.
type SourcePicker struct {
	rotation *Rotation
	count    int
}

func NewSourcePicker(rotation *Rotation, count int) *SourcePicker {
	if count <= 0 {
		count = DefaultSourceCount
	}
	return &SourcePicker{rotation: rotation, count: count}
}

// Pick returns every link cited in raw, which may be fewer or more than
// count, or exactly count rotated ones when there are none.
func (p *SourcePicker) Pick(raw string) []models.Source {
	if found := ExtractSources(raw); len(found) > 0 {
		return found
	}
	return p.rotation.Next(p.count)
}

// Rotate skips extraction. The fallback path uses it.
func (p *SourcePicker) Rotate() []models.Source {
	return p.rotation.Next(p.count)
}
