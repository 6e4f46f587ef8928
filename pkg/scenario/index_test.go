package scenario

import "testing"

func TestNewIndex_SynthesizesAllBuses(t *testing.T) {
	ix := NewIndex(Description{
		GridConfig: GridConfig{NumBuses: 3},
	})

	if ix.NumBuses() != 3 {
		t.Fatalf("expected 3 buses, got %d", ix.NumBuses())
	}
	for i, want := range []string{"Bus 1", "Bus 2", "Bus 3"} {
		if ix.Buses[i].Label != want {
			t.Errorf("bus %d label = %q, want %q", i+1, ix.Buses[i].Label, want)
		}
	}
	if ix.Buses[0].NodeID != "bus-1" {
		t.Errorf("bus node id = %q, want bus-1", ix.Buses[0].NodeID)
	}
}

func TestNewIndex_MetadataMatchedByID(t *testing.T) {
	// Metadata arrives out of order and sparse; it must be matched by
	// numeric id, not by array position.
	ix := NewIndex(Description{
		GridConfig: GridConfig{
			NumBuses: 3,
			Buses: []BusMeta{
				{ID: 3, Name: "East Hub"},
				{ID: 1, Name: "West Hub"},
			},
		},
	})

	if ix.Buses[0].Label != "West Hub" {
		t.Errorf("bus 1 label = %q, want West Hub", ix.Buses[0].Label)
	}
	if ix.Buses[1].Label != "Bus 2" {
		t.Errorf("bus 2 label = %q, want Bus 2 (default)", ix.Buses[1].Label)
	}
	if ix.Buses[2].Label != "East Hub" {
		t.Errorf("bus 3 label = %q, want East Hub", ix.Buses[2].Label)
	}
}

func TestNewIndex_OutOfRangeReferencesKept(t *testing.T) {
	ix := NewIndex(Description{
		GridConfig: GridConfig{NumBuses: 2},
		Generators: []Generator{{ID: "G1", BusID: 99, CapacityMW: 100}},
		Loads:      []Load{{ID: "L1", BusID: 0, DemandMW: 50}},
		Lines:      []Line{{ID: "T1", FromBusID: 1, ToBusID: 7}},
	})

	// No entity is dropped for referencing an unknown bus; the topology
	// layer decides how they degrade.
	if len(ix.Generators) != 1 || len(ix.Loads) != 1 || len(ix.Lines) != 1 {
		t.Fatalf("entities dropped: %d gens, %d loads, %d lines",
			len(ix.Generators), len(ix.Loads), len(ix.Lines))
	}

	if _, ok := ix.Bus(99); ok {
		t.Error("Bus(99) should not resolve")
	}
	if _, ok := ix.Bus(0); ok {
		t.Error("Bus(0) should not resolve")
	}
	if _, ok := ix.Bus(2); !ok {
		t.Error("Bus(2) should resolve")
	}
}
