package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// cycleProvider hands out answers from a fixed list in order.
type cycleProvider struct {
	mu      sync.Mutex
	answers []Answer
	next    int
	fail    bool
}

func newCycleProvider(answers ...Answer) *cycleProvider {
	return &cycleProvider{answers: answers}
}

func (p *cycleProvider) Next(LevelConfig) (Prompt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return Prompt{}, errors.New("provider offline")
	}
	if len(p.answers) == 0 {
		return Prompt{}, nil
	}
	a := p.answers[p.next%len(p.answers)]
	p.next++
	return Prompt{Answer: a, Label: fmt.Sprintf("%s4", a)}, nil
}

func (p *cycleProvider) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func testConfig() LevelConfig {
	cfg := DefaultLevelConfig()
	cfg.Name = "test"
	return cfg
}

// startEngine creates a started engine on a manual clock with a large subscription.
func startEngine(t *testing.T, cfg LevelConfig, p Provider) (*Engine, *ManualClock, *Subscription) {
	t.Helper()

	clock := NewManualClock(epoch)
	e := New(p, WithClock(clock))
	sub := e.Subscribe(1024)
	if err := e.Start(cfg); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(e.Stop)
	return e, clock, sub
}

// drain returns every event currently buffered on sub.
func drain(sub *Subscription) []Event {
	var out []Event
	for {
		select {
		case evt, ok := <-sub.Events():
			if !ok {
				return out
			}
			out = append(out, evt)
		default:
			return out
		}
	}
}

// runTicks advances the clock by total in step increments, ticking after each step.
func runTicks(e *Engine, clock *ManualClock, total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		clock.Advance(step)
		e.Tick()
	}
}

// awaitSpawn advances past the spawn delay and returns the spawn event.
func awaitSpawn(t *testing.T, e *Engine, clock *ManualClock, sub *Subscription) ChallengeSpawned {
	t.Helper()

	clock.Advance(e.Config().Timing.SpawnDelay)
	for _, evt := range drain(sub) {
		if s, ok := evt.(ChallengeSpawned); ok {
			return s
		}
	}
	t.Fatalf("expected ChallengeSpawned after spawn delay, phase=%v", e.Snapshot().Phase)
	return ChallengeSpawned{}
}

func countResolved(events []Event) []ChallengeResolved {
	var out []ChallengeResolved
	for _, evt := range events {
		if r, ok := evt.(ChallengeResolved); ok {
			out = append(out, r)
		}
	}
	return out
}

func countType[T Event](events []Event) int {
	n := 0
	for _, evt := range events {
		if _, ok := evt.(T); ok {
			n++
		}
	}
	return n
}
