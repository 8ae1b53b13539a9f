// Package cart holds the shopping cart: a pure reducer over immutable
// states and a Store that mirrors every new state to durable storage.
package cart

import (
	"math/big"

	"moms-kitchen/storefront/types"
)

// Line is one menu item snapshot and how many of it the customer wants.
// Quantity is always at least 1.
type Line struct {
	Item     types.MenuItem
	Quantity int
}

// State is an ordered, immutable set of cart lines keyed by menu item ID.
// The zero value is an empty cart.
type State struct {
	lines []Line
}

// NewState builds a state from lines, keeping the first line for each ID
// and dropping lines with a non-positive quantity.
func NewState(lines ...Line) State {
	var out []Line
	seen := make(map[uint64]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || seen[l.Item.ID] {
			continue
		}
		seen[l.Item.ID] = true
		out = append(out, l)
	}
	return State{lines: out}
}

// Lines returns a copy of the cart lines in insertion order.
func (s State) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct items in the cart.
func (s State) Len() int { return len(s.lines) }

// Empty reports whether the cart has no lines.
func (s State) Empty() bool { return len(s.lines) == 0 }

// Line returns the line for id, if any.
func (s State) Line(id uint64) (Line, bool) {
	if i := s.index(id); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

// Equal reports whether both states hold the same lines in the same order.
func (s State) Equal(other State) bool {
	if len(s.lines) != len(other.lines) {
		return false
	}
	for i := range s.lines {
		if s.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}

// TotalItemCount is the sum of all line quantities.
func (s State) TotalItemCount() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity over all lines, in cents.
func (s State) Subtotal() *big.Int {
	sum := new(big.Int)
	for _, l := range s.lines {
		sum.Add(sum, LineTotal(l.Item.Price, l.Quantity))
	}
	return sum
}

// LineTotal is price times quantity in cents.
func LineTotal(price uint64, quantity int) *big.Int {
	p := new(big.Int).SetUint64(price)
	return p.Mul(p, big.NewInt(int64(quantity)))
}

func (s State) index(id uint64) int {
	for i, l := range s.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

// without returns a copy of the lines minus the line for id.
func (s State) without(id uint64) State {
	out := make([]Line, 0, len(s.lines))
	for _, l := range s.lines {
		if l.Item.ID != id {
			out = append(out, l)
		}
	}
	return State{lines: out}
}
