package remote

import (
	"context"

	"github.com/viant/mcp/client/auth/transport"
)

// WithAuthToken returns ctx carrying a bearer token for authorized servers.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, transport.ContextAuthTokenKey, token)
}

// AuthToken returns the token carried by ctx.
func AuthToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(transport.ContextAuthTokenKey).(string)
	return token, ok && token != ""
}

// WithToken makes every call of c carry token.
func (c *Client) WithToken(token string) *Client {
	return &Client{cli: c.cli, token: token}
}

func (c *Client) authorize(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	if _, ok := AuthToken(ctx); ok {
		return ctx
	}
	return WithAuthToken(ctx, c.token)
}
