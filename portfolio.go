package cardfolio

import (
	"maps"
	"slices"
)

// Portfolio maps variant IDs to owned quantities.
//
// A stored quantity is always at least 1: removing the last unit deletes the
// key.
type Portfolio map[string]int

// Add records one more unit of id.
func (p Portfolio) Add(id string) { p[id]++ }

// Remove records one unit less of id. It reports false when id was not owned.
func (p Portfolio) Remove(id string) bool {
	qty, ok := p[id]
	if !ok {
		return false
	}
	if qty > 1 {
		p[id] = qty - 1
	} else {
		delete(p, id)
	}
	return true
}

// Clear removes every entry.
func (p Portfolio) Clear() { clear(p) }

// Units returns the total number of owned units.
func (p Portfolio) Units() int {
	total := 0
	for _, qty := range p {
		total += qty
	}
	return total
}

// IDs returns the owned variant IDs in lexical order.
func (p Portfolio) IDs() []string {
	return slices.Sorted(maps.Keys(p))
}

// Clone returns an independent copy of p, never nil.
func (p Portfolio) Clone() Portfolio {
	c := make(Portfolio, len(p))
	maps.Copy(c, p)
	return c
}

// prune deletes entries with a quantity below 1 and returns their IDs.
func (p Portfolio) prune() []string {
	var dropped []string
	for _, id := range p.IDs() {
		if p[id] < 1 {
			dropped = append(dropped, id)
			delete(p, id)
		}
	}
	return dropped
}
