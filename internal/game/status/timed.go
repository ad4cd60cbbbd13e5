package status

import "sort"

// Timed holds one actor's status counters. A counter of zero means the status
// is inactive. It is not safe for concurrent use; the caller must serialise access.
type Timed struct {
	counters map[Kind]int
}

// NewTimed creates an empty counter set.
func NewTimed() *Timed {
	return &Timed{counters: make(map[Kind]int)}
}

// Get returns the counter for k, or 0.
func (t *Timed) Get(k Kind) int {
	return t.counters[k]
}

// Has reports whether k is active.
func (t *Timed) Has(k Kind) bool {
	return t.counters[k] > 0
}

// Set stores v for k clamped to [0, limit]. A zero result clears k.
//
// Postcondition: 0 <= t.Get(k) <= limit.
func (t *Timed) Set(k Kind, v, limit int) {
	v = max(0, min(v, limit))
	if v == 0 {
		delete(t.counters, k)
		return
	}
	t.counters[k] = v
}

// Clear removes k.
func (t *Timed) Clear(k Kind) {
	delete(t.counters, k)
}

// Tick decrements every active counter by one and returns the kinds that
// reached zero, sorted.
//
// Postcondition: For every k in the returned slice, Has(k) is false.
func (t *Timed) Tick() []Kind {
	var expired []Kind
	for k, v := range t.counters {
		if v <= 1 {
			expired = append(expired, k)
			delete(t.counters, k)
			continue
		}
		t.counters[k] = v - 1
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Active returns a copy of every non-zero counter.
func (t *Timed) Active() map[Kind]int {
	out := make(map[Kind]int, len(t.counters))
	for k, v := range t.counters {
		out[k] = v
	}
	return out
}
