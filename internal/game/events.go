package game

import "github.com/verte-zerg/tuimole/internal/model"

// Event is emitted by the session and engine. Concrete types are listed below;
// they are plain values so they can be forwarded as Bubble Tea messages.
type Event interface {
	event()
}

// Started is emitted when a round begins.
type Started struct {
	Snapshot model.Snapshot
	Holes    int
	Best     int
}

// Activated is emitted when a target pops up.
type Activated struct {
	Target    int
	Token     uint64
	VisibleMs int
}

// Deactivated is emitted when a new target replaces one that was neither hit
// nor expired. The target left up at the end of a round is reported through
// Ended.LastTarget instead.
type Deactivated struct {
	Target int
}

// Expired is emitted when a target stayed up for its whole visible time.
type Expired struct {
	Target   int
	Snapshot model.Snapshot
}

// Hit is emitted when the active target was struck.
type Hit struct {
	Target   int
	Snapshot model.Snapshot
}

// Miss is emitted when an attempt landed on an inactive slot.
type Miss struct {
	Target   int
	Snapshot model.Snapshot
}

// Ticked is emitted once per countdown step.
type Ticked struct {
	TimeLeft int
}

// Adjusted is emitted after every advisor cycle.
type Adjusted struct {
	Verdict     model.Verdict
	Fallback    bool
	SpawnBefore int
	SpawnAfter  int
}

// Ended is emitted when the countdown runs out.
type Ended struct {
	Snapshot   model.Snapshot
	LastTarget int
	Best       int
	NewBest    bool
}

// Reset is emitted when the board returns to idle.
type Reset struct {
	Snapshot model.Snapshot
	Message  string
}

func (Started) event()     {}
func (Activated) event()   {}
func (Deactivated) event() {}
func (Expired) event()     {}
func (Hit) event()         {}
func (Miss) event()        {}
func (Ticked) event()      {}
func (Adjusted) event()    {}
func (Ended) event()       {}
func (Reset) event()       {}

// Observer consumes events. Implementations must not call back into the
// engine synchronously.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}
