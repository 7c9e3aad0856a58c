package domain

import (
	"math/rand"
	"time"
)

// RemoteTimeLayout is the only timestamp shape the change API accepts for
// planned dates: no fractional seconds and no offset.
const RemoteTimeLayout = "2006-01-02 15:04:05"

const (
	maxStartOffsetMinutes = 59
	minDurationMinutes    = 1
	maxDurationMinutes    = 30
)

// RandSource is the subset of *rand.Rand the window generator needs.
type RandSource interface {
	Intn(n int) int
}

// NewRandSource returns a source seeded with seed. Tests pass a fixed seed to
// make windows reproducible.
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// TimeWindow is the planned maintenance window of a change request.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Format renders both bounds in loc using RemoteTimeLayout.
func (w TimeWindow) Format(loc *time.Location) (start, end string) {
	if loc == nil {
		loc = time.Local
	}
	return w.Start.In(loc).Format(RemoteTimeLayout), w.End.In(loc).Format(RemoteTimeLayout)
}

type WindowGenerator struct {
	rng RandSource
}

func NewWindowGenerator(rng RandSource) *WindowGenerator {
	return &WindowGenerator{rng: rng}
}

// Generate returns a window starting 0-59 whole minutes after now and lasting
// 1-30 whole minutes.
func (g *WindowGenerator) Generate(now time.Time) TimeWindow {
	startOffset := time.Duration(g.rng.Intn(maxStartOffsetMinutes+1)) * time.Minute
	duration := time.Duration(g.rng.Intn(maxDurationMinutes-minDurationMinutes+1)+minDurationMinutes) * time.Minute

	start := now.Add(startOffset)
	return TimeWindow{
		Start: start,
		End:   start.Add(duration),
	}
}
