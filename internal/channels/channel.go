// Package channels defines the delivery-channel contract: a channel listens
// for user messages somewhere, hands each turn to the chat service, and
// sends back whatever utterance the engine chose.
package channels

import (
	"context"
	"fmt"
	"sync"

	"elyubot/internal/chat"
)

// Channel is an external chat surface (CLI, Telegram, ...).
type Channel interface {
	// ID returns the unique name of the channel.
	ID() string

	// Start begins listening and routing turns to the service. It blocks
	// until the context is canceled or an unrecoverable error occurs.
	Start(ctx context.Context, svc *chat.Service) error
}

var (
	registry   = make(map[string]Channel)
	registryMu sync.RWMutex
)

// Register adds a Channel to the registry, typically from an init function.
func Register(c Channel) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if c == nil {
		panic("channels: Register channel is nil")
	}
	if _, dup := registry[c.ID()]; dup {
		panic("channels: Register called twice for channel " + c.ID())
	}
	registry[c.ID()] = c
}

// Get returns a registered channel by ID.
func Get(id string) (Channel, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("channel %q not found", id)
	}
	return c, nil
}

// All returns every registered channel.
func All() []Channel {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Channel, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}
