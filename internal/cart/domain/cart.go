// Package domain holds the cart's state and its pure transitions.
// Every transition takes the current state and returns the next one;
// persistence is layered on top by the app package, never in here.
package domain

import (
	"math"

	catalog "github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

// Line is one catalog item in the cart plus its quantity.
// Quantity is always >= 1: a line at quantity 0 does not exist.
type Line struct {
	catalog.Item
	Quantity int `json:"quantity"`
}

// State is the ordered sequence of cart lines. At most one line exists
// per item id, in insertion order.
type State struct {
	Lines []Line
}

// Totals summarizes a cart for display.
type Totals struct {
	Items int
	Price float64
}

// Add merges the item into the cart: an existing line's quantity grows
// by one, a new line is appended at the end with quantity 1.
func (s State) Add(item catalog.Item) State {
	lines := s.copyLines()
	for i := range lines {
		if lines[i].ID == item.ID {
			lines[i].Quantity++
			return State{Lines: lines}
		}
	}
	return State{Lines: append(lines, Line{Item: item, Quantity: 1})}
}

// Remove deletes the line with the given id. Absent id is a no-op.
func (s State) Remove(id string) State {
	lines := make([]Line, 0, len(s.Lines))
	for _, line := range s.Lines {
		if line.ID != id {
			lines = append(lines, line)
		}
	}
	return State{Lines: lines}
}

// IncreaseQuantity bumps the matching line by one. Absent id is a no-op.
func (s State) IncreaseQuantity(id string) State {
	lines := s.copyLines()
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity++
		}
	}
	return State{Lines: lines}
}

// DecreaseQuantity lowers the matching line by one, but never below 1.
// Removing a line entirely is Remove's job, not this one's.
func (s State) DecreaseQuantity(id string) State {
	lines := s.copyLines()
	for i := range lines {
		if lines[i].ID == id && lines[i].Quantity > 1 {
			lines[i].Quantity--
		}
	}
	return State{Lines: lines}
}

// Clear empties the cart.
func (s State) Clear() State {
	return State{Lines: []Line{}}
}

// Totals computes the item count and money total. A line with a NaN
// price poisons the money total with NaN; callers that display or
// charge must check HasValidPrices first.
func (s State) Totals() Totals {
	var t Totals
	for _, line := range s.Lines {
		t.Items += line.Quantity
		t.Price += line.Price * float64(line.Quantity)
	}
	return t
}

// HasValidPrices reports whether every line carries a usable price.
func (s State) HasValidPrices() bool {
	for _, line := range s.Lines {
		if math.IsNaN(line.Price) {
			return false
		}
	}
	return true
}

func (s State) copyLines() []Line {
	return append([]Line(nil), s.Lines...)
}
