package session

// Bounty tracks today's target race and the wanted races whose first kill
// pays out. It is not safe for concurrent use.
type Bounty struct {
	today   string
	wanted  map[string]bool
	claimed map[string]bool
}

// NewBounty creates a bounty board with today's target and the wanted list.
func NewBounty(today string, wanted ...string) *Bounty {
	b := &Bounty{today: today, wanted: make(map[string]bool), claimed: make(map[string]bool)}
	for _, w := range wanted {
		b.wanted[w] = true
	}
	return b
}

// Today returns today's target race ID, or "".
func (b *Bounty) Today() string { return b.today }

// IsWanted reports whether raceID still has an unclaimed bounty.
func (b *Bounty) IsWanted(raceID string) bool {
	return b.wanted[raceID] && !b.claimed[raceID]
}

// Claim records a kill of raceID. today is true for every kill of today's
// target; wanted is true only for the first kill of a wanted race.
func (b *Bounty) Claim(raceID string) (today, wanted bool) {
	today = b.today != "" && raceID == b.today
	if b.IsWanted(raceID) {
		b.claimed[raceID] = true
		wanted = true
	}
	return today, wanted
}
