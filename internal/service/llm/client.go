package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	"Traxor/pkg/config"
	xhttp "Traxor/pkg/http"
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	http  *xhttp.Client
	url   string
	model string
	creds domrepo.CredentialProvider
}

var (
	_ domrepo.ChatCompleter = (*Client)(nil)
	_ domrepo.ChatForwarder = (*Client)(nil)
)

func NewClient(cfg config.LLMConfig, creds domrepo.CredentialProvider, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)
	return &Client{
		http:  xhttp.NewClient(opts...),
		url:   strings.TrimRight(cfg.BaseURL, "/") + cfg.ChatPath,
		model: cfg.Model,
		creds: creds,
	}
}

// Complete returns choices[0].message.content. Non-2xx answers yield
// *models.UpstreamStatusError; unparseable or empty bodies yield
// ErrMalformedResponse.
func (c *Client) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	status, body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &models.UpstreamStatusError{Status: status, Body: string(body)}
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	content, ok := resp.Content()
	if !ok {
		return "", fmt.Errorf("%w: missing choices[0].message.content", models.ErrMalformedResponse)
	}
	return content, nil
}

// Forward relays body verbatim and returns whatever the upstream answered.
func (c *Client) Forward(ctx context.Context, body []byte) (int, []byte, error) {
	return c.send(ctx, json.RawMessage(body))
}

func (c *Client) send(ctx context.Context, body interface{}) (int, []byte, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return 0, nil, err
	}

	status, respBody, err := c.http.SendRaw(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.url,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"Content-Type":  "application/json",
			"Accept":        "application/json",
		},
		Body: body,
	})
	if err != nil {
		return status, nil, fmt.Errorf("chat completion: %w", err)
	}
	return status, respBody, nil
}
