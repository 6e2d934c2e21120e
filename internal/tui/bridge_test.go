package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuimole/internal/game"
)

func TestBridgeKeepsOrder(t *testing.T) {
	b := NewBridge()
	for i := 0; i < 50; i++ {
		b.Observe(game.Ticked{TimeLeft: i})
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan tea.Msg, 100)
	go b.Run(ctx, func(msg tea.Msg) { got <- msg })

	for i := 0; i < 50; i++ {
		select {
		case msg := <-got:
			tick, ok := msg.(game.Ticked)
			if !ok || tick.TimeLeft != i {
				t.Fatalf("expected tick %d, got %#v", i, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}
