package scenario

import "fmt"

// Description is the grid scenario supplied once per render cycle. It is
// the sole driver of index and topology recomputation: a new Description
// means a full rebuild, never an incremental patch.
type Description struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	GridConfig GridConfig  `json:"grid_config" yaml:"grid_config"`
	Generators []Generator `json:"generator_data" yaml:"generator_data"`
	Loads      []Load      `json:"load_data" yaml:"load_data"`
	Lines      []Line      `json:"transmission_data" yaml:"transmission_data"`
}

// GridConfig declares the bus set. Buses carries optional per-bus
// metadata matched by numeric id; every bus 1..NumBuses exists whether
// or not it appears here.
type GridConfig struct {
	NumBuses int       `json:"num_buses" yaml:"num_buses"`
	Buses    []BusMeta `json:"buses,omitempty" yaml:"buses,omitempty"`
}

// BusMeta is optional display metadata for a single bus.
type BusMeta struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Generator is a generating unit attached to a bus. BusID is 1-based;
// an out-of-range reference is tolerated and renders as an orphan node.
type Generator struct {
	ID            string  `json:"id" yaml:"id"`
	BusID         int     `json:"bus_id" yaml:"bus_id"`
	CapacityMW    float64 `json:"capacity_mw" yaml:"capacity_mw"`
	CostEnergyMWh float64 `json:"cost_energy_mwh,omitempty" yaml:"cost_energy_mwh,omitempty"`
}

// Load is a demand attached to a bus.
type Load struct {
	ID       string  `json:"id" yaml:"id"`
	BusID    int     `json:"bus_id" yaml:"bus_id"`
	DemandMW float64 `json:"demand_mw" yaml:"demand_mw"`
}

// Line is a transmission line between two buses. A line whose endpoints
// do not both resolve produces no edge at all.
type Line struct {
	ID          string  `json:"id" yaml:"id"`
	FromBusID   int     `json:"from_bus_id" yaml:"from_bus_id"`
	ToBusID     int     `json:"to_bus_id" yaml:"to_bus_id"`
	FlowLimitMW float64 `json:"flow_limit_mw" yaml:"flow_limit_mw"`
}

// Validate reports structural problems that make a scenario unusable.
// Dangling bus references are deliberately not errors (see EntityIndex).
func (d *Description) Validate() error {
	if d.GridConfig.NumBuses < 0 {
		return fmt.Errorf("num_buses must be non-negative, got %d", d.GridConfig.NumBuses)
	}
	seen := make(map[string]bool)
	for _, g := range d.Generators {
		if g.ID == "" {
			return fmt.Errorf("generator with empty id")
		}
		if seen["gen:"+g.ID] {
			return fmt.Errorf("duplicate generator id %q", g.ID)
		}
		seen["gen:"+g.ID] = true
	}
	for _, l := range d.Loads {
		if l.ID == "" {
			return fmt.Errorf("load with empty id")
		}
		if seen["load:"+l.ID] {
			return fmt.Errorf("duplicate load id %q", l.ID)
		}
		seen["load:"+l.ID] = true
	}
	for _, t := range d.Lines {
		if t.ID == "" {
			return fmt.Errorf("transmission line with empty id")
		}
		if seen["line:"+t.ID] {
			return fmt.Errorf("duplicate line id %q", t.ID)
		}
		seen["line:"+t.ID] = true
	}
	return nil
}
