package scenario

import "fmt"

// Bus is a registry entry synthesized for every bus number 1..NumBuses.
type Bus struct {
	Number int
	Label  string
	NodeID string
}

// EntityIndex is the ordered, keyed registry of all grid entities in a
// scenario. Buses are synthesized for the full 1..NumBuses range even
// when no explicit metadata exists; generators, loads and lines are kept
// in input order regardless of whether their bus references resolve.
type EntityIndex struct {
	Buses      []Bus
	Generators []Generator
	Loads      []Load
	Lines      []Line

	busByNumber map[int]Bus
}

// NewIndex builds the entity registry for a scenario description.
func NewIndex(d Description) *EntityIndex {
	meta := make(map[int]BusMeta, len(d.GridConfig.Buses))
	for _, b := range d.GridConfig.Buses {
		meta[b.ID] = b
	}

	ix := &EntityIndex{
		Buses:       make([]Bus, 0, d.GridConfig.NumBuses),
		Generators:  d.Generators,
		Loads:       d.Loads,
		Lines:       d.Lines,
		busByNumber: make(map[int]Bus, d.GridConfig.NumBuses),
	}

	for n := 1; n <= d.GridConfig.NumBuses; n++ {
		label := fmt.Sprintf("Bus %d", n)
		if m, ok := meta[n]; ok && m.Name != "" {
			label = m.Name
		}
		bus := Bus{
			Number: n,
			Label:  label,
			NodeID: fmt.Sprintf("bus-%d", n),
		}
		ix.Buses = append(ix.Buses, bus)
		ix.busByNumber[n] = bus
	}

	return ix
}

// Bus looks up a bus record by 1-based number. The second return is
// false for references outside [1, NumBuses].
func (ix *EntityIndex) Bus(n int) (Bus, bool) {
	b, ok := ix.busByNumber[n]
	return b, ok
}

// NumBuses returns the size of the bus registry.
func (ix *EntityIndex) NumBuses() int {
	return len(ix.Buses)
}
