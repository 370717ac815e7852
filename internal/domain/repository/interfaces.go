package repository

import (
	"context"
	"time"

	"Traxor/internal/domain/models"
)

// ChatCompleter returns the assistant text of a chat-completion call.
type ChatCompleter interface {
	Complete(ctx context.Context, req models.ChatRequest) (string, error)
}

// ChatForwarder relays a raw request body and returns the upstream status and body untouched.
type ChatForwarder interface {
	Forward(ctx context.Context, body []byte) (int, []byte, error)
}

// PriceLookup returns a best-effort USD quote for a symbol.
type PriceLookup interface {
	Quote(ctx context.Context, symbol string) (models.Quote, error)
}

// CredentialProvider yields the bearer token for the chat boundary.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// SignalStore keeps the session's responses in memory, newest first.
type SignalStore interface {
	Save(s *models.SignalResponse) *models.SignalResponse
	Get(id string) (*models.SignalResponse, error)
	List() []*models.SignalResponse
	Bookmarked() []*models.SignalResponse
	ToggleBookmark(id string) (*models.SignalResponse, error)
}

// SignalPublisher fans a new signal out to live subscribers.
type SignalPublisher interface {
	Publish(s *models.SignalResponse)
}

type Metrics interface {
	RecordSignal(asset, outcome string)
	ObserveUpstream(op string, d time.Duration)
	RecordUpstreamError(op, kind string)
	ObserveFieldsExtracted(n int)
	RecordProxyRequest(status int)
}
