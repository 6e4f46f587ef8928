package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_SelectsFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "grid.json")
	jsonData := `{"grid_config": {"num_buses": 2}, "load_data": [{"id": "L1", "bus_id": 1, "demand_mw": 70}]}`
	if err := os.WriteFile(jsonPath, []byte(jsonData), 0o644); err != nil {
		t.Fatal(err)
	}

	yamlPath := filepath.Join(dir, "grid.yaml")
	yamlData := "grid_config:\n  num_buses: 3\nload_data:\n  - id: L1\n    bus_id: 2\n    demand_mw: 55\n"
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if d.GridConfig.NumBuses != 2 || len(d.Loads) != 1 || d.Loads[0].DemandMW != 70 {
		t.Errorf("unexpected JSON scenario: %+v", d)
	}

	d, err = LoadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if d.GridConfig.NumBuses != 3 || d.Loads[0].DemandMW != 55 {
		t.Errorf("unexpected YAML scenario: %+v", d)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestParse_JSON(t *testing.T) {
	data := `{
		"name": "Two Bus",
		"grid_config": {"num_buses": 2, "buses": [{"id": 1, "name": "Main"}]},
		"generator_data": [{"id": "G1", "bus_id": 1, "capacity_mw": 100, "cost_energy_mwh": 20}],
		"load_data": [{"id": "L1", "bus_id": 2, "demand_mw": 70}],
		"transmission_data": [{"id": "T1", "from_bus_id": 1, "to_bus_id": 2, "flow_limit_mw": 40}]
	}`

	d, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if d.GridConfig.NumBuses != 2 {
		t.Errorf("num_buses = %d, want 2", d.GridConfig.NumBuses)
	}
	if len(d.Generators) != 1 || d.Generators[0].CapacityMW != 100 {
		t.Errorf("unexpected generators: %+v", d.Generators)
	}
	if d.Lines[0].FlowLimitMW != 40 {
		t.Errorf("flow limit = %v, want 40", d.Lines[0].FlowLimitMW)
	}
}

func TestParseYAML(t *testing.T) {
	data := `
name: Two Bus
grid_config:
  num_buses: 2
generator_data:
  - id: G1
    bus_id: 1
    capacity_mw: 100
load_data:
  - id: L1
    bus_id: 2
    demand_mw: 70
transmission_data:
  - id: T1
    from_bus_id: 1
    to_bus_id: 2
    flow_limit_mw: 40
`
	d, err := ParseYAML([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if d.Name != "Two Bus" {
		t.Errorf("name = %q, want Two Bus", d.Name)
	}
	if d.Loads[0].DemandMW != 70 {
		t.Errorf("demand = %v, want 70", d.Loads[0].DemandMW)
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	data := `{
		"grid_config": {"num_buses": 1},
		"generator_data": [
			{"id": "G1", "bus_id": 1, "capacity_mw": 10},
			{"id": "G1", "bus_id": 1, "capacity_mw": 20}
		]
	}`

	if _, err := Parse([]byte(data)); err == nil {
		t.Fatal("expected error for duplicate generator ids")
	}
}

func TestParse_RejectsNegativeBusCount(t *testing.T) {
	if _, err := Parse([]byte(`{"grid_config": {"num_buses": -1}}`)); err == nil {
		t.Fatal("expected error for negative num_buses")
	}
}
