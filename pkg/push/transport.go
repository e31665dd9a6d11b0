// Package push contains the pluggable notification transports used by the dispatcher.
package push

import (
	"context"
)

// Transport delivers a single notification to a single device token.
// Implementations must honour ctx cancellation.
type Transport interface {
	Send(ctx context.Context, token, title, body string, data map[string]any) error
	Name() string
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, token, title, body string, data map[string]any) error

func (f TransportFunc) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	return f(ctx, token, title, body, data)
}

func (f TransportFunc) Name() string { return "func" }
