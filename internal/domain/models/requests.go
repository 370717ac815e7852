package models

// Requests for the signal HTTP endpoints.

type CreateSignalRequest struct {
	Query string `json:"query" validate:"required,min=1,max=500"`
}

type ResolveRequest struct {
	Query string `query:"q" validate:"required,max=500"`
}

type SignalIDRequest struct {
	ID string `param:"id" validate:"required,uuid4"`
}

type PriceRequest struct {
	Symbol string `param:"symbol" validate:"required,alpha,min=2,max=10"`
}

type ResolveResponse struct {
	Query string `json:"query"`
	Asset string `json:"asset"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}
