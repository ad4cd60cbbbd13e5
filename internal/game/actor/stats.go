package actor

import (
	"fmt"
	"strings"
)

// Stat is one of the six primary statistics.
type Stat uint8

const (
	Str Stat = iota
	Int
	Wis
	Dex
	Con
	Chr
	NumStats
)

const (
	// StatMin is the lowest any statistic can fall.
	StatMin = 3
	// StatMax is the highest natural statistic, 18/100.
	StatMax = 118
)

var statNames = [NumStats]struct{ short, adjective string }{
	{"str", "weak"},
	{"int", "stupid"},
	{"wis", "naive"},
	{"dex", "clumsy"},
	{"con", "sickly"},
	{"chr", "ugly"},
}

// String returns the three-letter abbreviation of s.
func (s Stat) String() string {
	if s >= NumStats {
		return fmt.Sprintf("stat(%d)", uint8(s))
	}
	return statNames[s].short
}

// Adjective describes how losing s feels ("You feel very weak").
func (s Stat) Adjective() string {
	return statNames[s].adjective
}

// ParseStat resolves a three-letter abbreviation.
func ParseStat(name string) (Stat, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range statNames {
		if sn.short == n {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("actor: unknown stat %q", name)
}

// Stats holds current and maximum values plus sustains.
//
// Invariant: StatMin <= Cur[i] <= Max[i] <= StatMax.
type Stats struct {
	Cur     [NumStats]int
	Max     [NumStats]int
	Sustain [NumStats]bool
}

// Index maps a stat value to its row in the classic adjustment tables:
// 3..18 map to 0..15, then every ten points above 18 add one, up to 37.
func Index(v int) int {
	if v <= 18 {
		return max(0, v-StatMin)
	}
	return min(37, 15+(v-18)/10)
}

// Decrease lowers s by amount the classic way: small steps below 18, a
// randomised fraction of the excess above 18. It returns false when the stat
// is sustained or already at the floor. permanent also lowers the maximum.
//
// roll must return a value in [1, n].
func (st *Stats) Decrease(s Stat, amount int, permanent bool, roll func(n int) int) bool {
	if st.Sustain[s] {
		return false
	}
	cur := st.Cur[s]
	if cur <= StatMin {
		return false
	}
	switch {
	case cur <= 18:
		loss := 1
		if amount > 90 {
			loss++
		}
		if amount > 50 {
			loss++
		}
		if amount > 20 {
			loss++
		}
		cur -= loss
	default:
		loss := ((cur-18)/2+1)/2 + 1
		loss = ((roll(loss) + loss) * amount) / 100
		loss = max(loss, amount/2)
		cur -= loss
		if cur < 18 {
			if amount <= 20 {
				cur = 18
			} else {
				cur = 17
			}
		}
	}
	cur = max(StatMin, cur)
	changed := cur != st.Cur[s]
	st.Cur[s] = cur
	if permanent && st.Max[s] > cur {
		st.Max[s] = cur
	}
	return changed
}

// Restore sets s back to its maximum.
func (st *Stats) Restore(s Stat) bool {
	if st.Cur[s] == st.Max[s] {
		return false
	}
	st.Cur[s] = st.Max[s]
	return true
}
