package inventory

// Floor holds the items lying on the current dungeon level.
// It is not safe for concurrent use.
type Floor struct {
	items []*Item
}

// NewFloor creates an empty Floor.
func NewFloor() *Floor {
	return &Floor{}
}

// Drop places it on the floor.
//
// Postcondition: it is the last element of Items().
func (f *Floor) Drop(it *Item) {
	f.items = append(f.items, it)
}

// Items returns a snapshot of the floor.
func (f *Floor) Items() []*Item {
	return append([]*Item(nil), f.items...)
}

// Increase changes the quantity of the i-th floor item by delta, never below zero.
func (f *Floor) Increase(i, delta int) {
	if i < 0 || i >= len(f.items) {
		return
	}
	f.items[i].Quantity = max(0, f.items[i].Quantity+delta)
}

// Optimize removes exhausted floor items.
func (f *Floor) Optimize() {
	kept := f.items[:0]
	for _, it := range f.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	f.items = kept
}

// Clear empties the floor, returning everything that was on it.
func (f *Floor) Clear() []*Item {
	out := f.items
	f.items = nil
	return out
}
