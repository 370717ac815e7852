package service

import (
	"context"

	"Traxor/internal/domain/models"
)

// SignalService turns a free-text query into a fully populated signal. It never fails.
type SignalService interface {
	Submit(ctx context.Context, query string) *models.SignalResponse
}

// SymbolResolver maps a free-text query to an uppercase ticker.
type SymbolResolver interface {
	Resolve(query string) string
}
