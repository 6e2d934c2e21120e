package game

import (
	"math/rand"
	"time"
)

// Picker selects the next target slot.
type Picker interface {
	Pick(slots int) int
}

// RandomPicker selects slots uniformly.
type RandomPicker struct {
	rnd *rand.Rand
}

// NewRandomPicker returns a RandomPicker seeded with the current time.
func NewRandomPicker() *RandomPicker {
	return &RandomPicker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededPicker returns a RandomPicker with a fixed seed.
func NewSeededPicker(seed int64) *RandomPicker {
	return &RandomPicker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick implements Picker.
func (p *RandomPicker) Pick(slots int) int {
	if slots <= 1 {
		return 0
	}
	return p.rnd.Intn(slots)
}
