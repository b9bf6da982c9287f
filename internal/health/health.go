package health

import (
	"context"
)

// Ping interface
type Ping interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to the Ping interface
type PingFunc func(ctx context.Context) error

// Ping implements Ping
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Status reports the reachability of the external collaborators
type Status struct {
	pingers map[string]Ping
}

// New returns a Status instance over the given named pingers
func New(pingers map[string]Ping) *Status {
	return &Status{pingers: pingers}
}

// Status returns, per collaborator, whether it is reachable
func (h *Status) Status(ctx context.Context) map[string]bool {
	m := make(map[string]bool, len(h.pingers))

	for key, val := range h.pingers {
		m[key] = true
		if err := val.Ping(ctx); err != nil {
			m[key] = false
		}
	}

	return m
}
