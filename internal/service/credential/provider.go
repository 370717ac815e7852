package credential

import (
	"context"
	"os"
	"strings"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
)

// EnvProvider reads the bearer token from an environment variable on every
// call, so a rotated secret is picked up without a restart.
type EnvProvider struct {
	name   string
	lookup func(string) (string, bool)
}

var _ domrepo.CredentialProvider = (*EnvProvider)(nil)

func NewEnvProvider(name string) *EnvProvider {
	return &EnvProvider{name: name, lookup: os.LookupEnv}
}

func (p *EnvProvider) Token(_ context.Context) (string, error) {
	v, ok := p.lookup(p.name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", models.ErrNoCredential
	}
	return strings.TrimSpace(v), nil
}

// StaticProvider returns a fixed token.
type StaticProvider string

var _ domrepo.CredentialProvider = StaticProvider("")

func (p StaticProvider) Token(_ context.Context) (string, error) {
	if strings.TrimSpace(string(p)) == "" {
		return "", models.ErrNoCredential
	}
	return string(p), nil
}

// Available reports whether p currently yields a token.
func Available(ctx context.Context, p domrepo.CredentialProvider) bool {
	if p == nil {
		return false
	}
	_, err := p.Token(ctx)
	return err == nil
}
