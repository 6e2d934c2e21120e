package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuimole/internal/game"
)

// Bridge forwards engine events to a Bubble Tea program in order. Observe
// never blocks, so the engine cannot stall on a busy UI while the UI is
// posting input back to the engine.
type Bridge struct {
	mu    sync.Mutex
	queue []game.Event
	wake  chan struct{}
}

// NewBridge constructs an empty Bridge.
func NewBridge() *Bridge {
	return &Bridge{wake: make(chan struct{}, 1)}
}

// Observe implements game.Observer.
func (b *Bridge) Observe(ev game.Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Run delivers queued events with send until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.wake:
		}
		for _, ev := range b.drain() {
			send(ev)
		}
	}
}

func (b *Bridge) drain() []game.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.queue
	b.queue = nil
	return out
}
