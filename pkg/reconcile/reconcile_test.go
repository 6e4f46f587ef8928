package reconcile

import (
	"reflect"
	"testing"

	"github.com/gridlens/gridlens/pkg/result"
)

func mustParse(t *testing.T, data string) *result.Payload {
	t.Helper()
	p, err := result.Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCompare_UnionWithZeroDefaults(t *testing.T) {
	a := mustParse(t, `{
		"status": "success",
		"financial_results": {"generator_details": [
			{"id": "G1", "profit": 100},
			{"id": "G2", "profit": 50}
		]}
	}`)
	b := mustParse(t, `{
		"status": "success",
		"final_causation_financials": {"generator_details": [
			{"id": "G2", "profit": 40},
			{"id": "G3", "profit": 10}
		]}
	}`)

	rows := Compare(FamilyGeneratorProfit, a, b)

	want := []Row{
		{ID: "G1", ValueA: 100, ValueB: 0},
		{ID: "G2", ValueA: 50, ValueB: 40},
		{ID: "G3", ValueA: 0, ValueB: 10},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}
}

func TestCompare_OrderIsFirstAppearanceAThenB(t *testing.T) {
	a := mustParse(t, `{
		"financial_results": {"generator_details": [
			{"id": "G9", "profit": 1}, {"id": "G1", "profit": 2}
		]}
	}`)
	b := mustParse(t, `{
		"financial_results": {"generator_details": [
			{"id": "G5", "profit": 3}, {"id": "G9", "profit": 4}
		]}
	}`)

	rows := Compare(FamilyGeneratorProfit, a, b)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	want := []string{"G9", "G1", "G5"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("row order = %v, want %v", ids, want)
	}
}

func TestCompare_MalformedValueDefaultsToZero(t *testing.T) {
	a := mustParse(t, `{
		"financial_results": {"generator_details": [{"id": "G1", "profit": "broken"}]}
	}`)
	b := mustParse(t, `{
		"financial_results": {"generator_details": [{"id": "G1", "profit": 7}]}
	}`)

	rows := Compare(FamilyGeneratorProfit, a, b)
	if len(rows) != 1 || rows[0].ValueA != 0 || rows[0].ValueB != 7 {
		t.Fatalf("rows = %+v, want G1 with A=0 B=7", rows)
	}
}

func TestCompare_LoadPaymentAcrossFrameworkSections(t *testing.T) {
	traditional := mustParse(t, `{
		"financial_results": {"load_details": [{"id": "L1", "payment_for_energy": 1400}]}
	}`)
	causation := mustParse(t, `{
		"traditional_financials_for_base_case": {"load_details": [{"id": "L1", "payment_for_energy": 1350}]}
	}`)

	rows := Compare(FamilyLoadPayment, traditional, causation)
	if len(rows) != 1 || rows[0].ValueA != 1400 || rows[0].ValueB != 1350 {
		t.Fatalf("rows = %+v, want L1 1400/1350", rows)
	}
}

func TestCompare_PendingSlotYieldsZeros(t *testing.T) {
	a := mustParse(t, `{
		"financial_results": {"generator_details": [{"id": "G1", "profit": 9}]}
	}`)

	rows := Compare(FamilyGeneratorProfit, a, nil)
	want := []Row{{ID: "G1", ValueA: 9, ValueB: 0}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v, want %+v", rows, want)
	}

	if rows := Compare(FamilyGeneratorProfit, nil, nil); len(rows) != 0 {
		t.Fatalf("both slots pending should yield no rows, got %+v", rows)
	}
}

func TestCompare_DoesNotMutateSources(t *testing.T) {
	raw := `{
		"financial_results": {"generator_details": [{"id": "G1", "profit": 9, "total_cost": 4}]}
	}`
	a := mustParse(t, raw)
	before := mustParse(t, raw)

	Compare(FamilyGeneratorProfit, a, nil)
	Compare(FamilyDispatchCost, a, nil)
	SystemSummary(a, nil)

	if !reflect.DeepEqual(a, before) {
		t.Fatal("reconciliation must never mutate a source payload")
	}
}

func TestSystemSummary_FallbackLocations(t *testing.T) {
	traditional := mustParse(t, `{
		"framework_type": "traditional",
		"financial_results": {"system_summary": {
			"total_dispatch_cost": 2000,
			"total_consumer_payment_for_energy": 2400,
			"total_generator_revenue": 2300
		}}
	}`)
	// The causation payload carries total cost under the base-case
	// dispatch solution, not the financial summary.
	causation := mustParse(t, `{
		"framework_type": "causation",
		"base_case_dispatch_solution": {"total_cost": 2100},
		"final_causation_financials": {"system_summary": {
			"total_consumer_payment_for_energy": 2400,
			"total_generator_revenue": 2250,
			"total_security_charges_collected": 75
		}}
	}`)

	rows := SystemSummary(traditional, causation)
	byID := make(map[string]Row, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	if r := byID[SummaryTotalDispatchCost]; r.ValueA != 2000 || r.ValueB != 2100 {
		t.Errorf("dispatch cost = %+v, want 2000/2100", r)
	}
	if r := byID[SummaryTotalSecurityCharges]; r.ValueA != 0 || r.ValueB != 75 {
		t.Errorf("security charges = %+v, want 0/75 (traditional has none)", r)
	}
	if r := byID[SummaryTotalGenRevenue]; r.ValueA != 2300 || r.ValueB != 2250 {
		t.Errorf("generator revenue = %+v, want 2300/2250", r)
	}
}

func TestValidFamily(t *testing.T) {
	for _, f := range Families() {
		if !ValidFamily(string(f)) {
			t.Errorf("%s should be valid", f)
		}
	}
	if ValidFamily("congestionRent") {
		t.Error("unknown family should be invalid")
	}
}
