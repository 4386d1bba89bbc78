package notes

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/staff-wars/internal/engine"
)

// maxRepeatAttempts bounds how often Next redraws to avoid repeating the last note.
const maxRepeatAttempts = 10

// Provider picks random notes from a range. It implements engine.Provider.
// The answer is the note letter; the label is the full note name.
type Provider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	seed  int64
	notes []Note
	last  Note
}

// NewProvider creates a provider over r seeded with seed.
func NewProvider(r Range, seed int64) (*Provider, error) {
	notes, err := r.Notes()
	if err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}
	return &Provider{
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		notes: notes,
	}, nil
}

// Next returns the next challenge. The level configuration is unused;
// difficulty comes from the engine's speed.
func (p *Provider) Next(engine.LevelConfig) (engine.Prompt, error) {
	n := p.Pick()
	return engine.Prompt{
		Answer: engine.Answer(n.Letter),
		Label:  n.String(),
	}, nil
}

// Pick draws a note, avoiding an immediate repeat when the range allows it.
func (p *Provider) Pick() Note {
	p.mu.Lock()
	defer p.mu.Unlock()

	var n Note
	for attempt := 0; attempt < maxRepeatAttempts; attempt++ {
		n = p.notes[p.rng.Intn(len(p.notes))]
		if n != p.last {
			break
		}
	}
	p.last = n
	return n
}

// Reset restores the initial random sequence.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rng = rand.New(rand.NewSource(p.seed))
	p.last = Note{}
}
