package inventory

import "fmt"

// Pack is the character's carried inventory, an ordered list of slots.
//
// Slots whose quantity drops to zero stay in place until Optimize is called,
// so slot indices remain stable while an effect is resolving.
// It is not safe for concurrent use.
type Pack struct {
	MaxSlots int
	items    []*Item
}

// NewPack creates an empty Pack.
//
// Precondition: maxSlots >= 0.
func NewPack(maxSlots int) *Pack {
	return &Pack{MaxSlots: maxSlots}
}

// Add places it into a new slot.
//
// Precondition: it is non-nil with Quantity > 0.
// Postcondition: on error the pack is unchanged.
func (p *Pack) Add(it *Item) error {
	if it == nil || it.Quantity <= 0 {
		return fmt.Errorf("pack: item must be non-nil with quantity > 0")
	}
	if len(p.items) >= p.MaxSlots {
		return fmt.Errorf("pack: no free slot for %q", it.Name)
	}
	p.items = append(p.items, it)
	return nil
}

// Len returns the number of occupied slots, including emptied ones.
func (p *Pack) Len() int {
	return len(p.items)
}

// Item returns the stack in slot, or nil if slot is out of range.
func (p *Pack) Item(slot int) *Item {
	if slot < 0 || slot >= len(p.items) {
		return nil
	}
	return p.items[slot]
}

// Items returns a snapshot of the slots. The Items themselves are shared.
func (p *Pack) Items() []*Item {
	return append([]*Item(nil), p.items...)
}

// Increase changes the quantity in slot by delta, never below zero.
//
// Postcondition: p.Item(slot).Quantity >= 0. Out-of-range slots are ignored.
func (p *Pack) Increase(slot, delta int) {
	it := p.Item(slot)
	if it == nil {
		return
	}
	it.Quantity = max(0, it.Quantity+delta)
}

// Optimize removes every slot whose quantity is zero.
//
// Postcondition: every remaining slot has Quantity > 0.
func (p *Pack) Optimize() {
	kept := p.items[:0]
	for _, it := range p.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(p.items); i++ {
		p.items[i] = nil
	}
	p.items = kept
}

// Weight returns the total weight of the pack in tenth-pounds.
func (p *Pack) Weight() int {
	total := 0
	for _, it := range p.items {
		total += it.TotalWeight()
	}
	return total
}

// SlotsOf returns the slots holding kind with a positive quantity.
func (p *Pack) SlotsOf(kind Kind) []int {
	var out []int
	for i, it := range p.items {
		if it.Kind == kind && it.Quantity > 0 {
			out = append(out, i)
		}
	}
	return out
}
