package llm

import (
	"context"
	"testing"
	"time"

	"Traxor/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRequest(q string) models.ChatRequest {
	return models.ChatRequest{Messages: []models.ChatMessage{
		{Role: models.RoleSystem, Content: "system"},
		{Role: models.RoleUser, Content: "Give me a tactical trading signal for: " + q + "\n\nUse live web data."},
	}}
}

func TestMockCompleterPicksReply(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	m := NewMockCompleter(WithMockClock(func() time.Time { return now }))

	tests := map[string]string{
		"Tell me about bitcoin": "📈 Asset: BTC",
		"ETH outlook":           "📈 Asset: ETH",
		"is something brewing":  "📈 Market Overview",
		"moo deng pump?":        "📈 Asset: MOODENG",
		"what about PNUT":       "📈 Asset: PNUT",
		"solana":                "📈 Asset: SOL",
		"hyperliquid perps":     "📈 Asset: HYPE",
	}
	for q, want := range tests {
		out, err := m.Complete(context.Background(), userRequest(q))
		require.NoError(t, err)
		assert.Contains(t, out, want, q)
		assert.Contains(t, out, "🧠 Signal — Wednesday, October 14, 2026", q)
	}
}

func TestMockCompleterHonoursContext(t *testing.T) {
	m := NewMockCompleter(WithMockDelay(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, userRequest("btc"))
	assert.ErrorIs(t, err, context.Canceled)
}
