// Package events announces completed intakes to downstream advisor tooling.
package events

import (
	"context"

	"github.com/grupokossodo/intake-agent/internal/model"
)

// Publisher publishes intake lifecycle events. Publishing is best-effort
// from the agent's point of view: failures are logged, never fail a turn.
type Publisher interface {
	PublishIntake(ctx context.Context, event *model.IntakeEvent) error
	Close()
}

// Noop is a Publisher that discards events. Used when NATS is not
// configured and in tests.
type Noop struct{}

// PublishIntake discards the event.
func (Noop) PublishIntake(context.Context, *model.IntakeEvent) error { return nil }

// Close does nothing.
func (Noop) Close() {}
