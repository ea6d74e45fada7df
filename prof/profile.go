// Package prof collects coarse wall-clock timings for the synthesis tools:
// table warm-up, per-level expansion, decomposition runs. It is a run-summary
// aid, not a profiler.
package prof

import (
	"sync"
	"time"
)

// Entry is the aggregate timing of one label.
type Entry struct {
	Label string
	Dur   time.Duration
	Count int
}

var (
	mu     sync.Mutex
	order  []string
	totals map[string]*Entry
)

// Track adds the duration since start under the given label. Meant to be
// deferred: defer prof.Track(time.Now(), "warm_tables").
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	if totals == nil {
		totals = make(map[string]*Entry)
	}
	e, ok := totals[label]
	if !ok {
		e = &Entry{Label: label}
		totals[label] = e
		order = append(order, label)
	}
	e.Dur += elapsed
	e.Count++
	mu.Unlock()
}

// Drain returns the aggregated entries in first-seen order and clears the
// collector.
func Drain() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, 0, len(order))
	for _, label := range order {
		out = append(out, *totals[label])
	}
	order, totals = nil, nil
	return out
}
