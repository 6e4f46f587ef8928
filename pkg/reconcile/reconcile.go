// Package reconcile merges two framework result payloads into
// ID-aligned comparison series for charting. Reconciliation is pure:
// neither source payload is mutated, nothing is retained between calls,
// and a pending or failed slot simply contributes no values.
package reconcile

import "github.com/gridlens/gridlens/pkg/result"

// Family identifies a comparable per-entity metric family.
type Family string

const (
	FamilyDispatchCost    Family = "dispatchCost"
	FamilyGeneratorProfit Family = "generatorProfit"
	FamilySecurityCharge  Family = "securityCharge"
	FamilyLoadPayment     Family = "loadPayment"
)

// Families lists the supported per-entity metric families.
func Families() []Family {
	return []Family{
		FamilyDispatchCost,
		FamilyGeneratorProfit,
		FamilySecurityCharge,
		FamilyLoadPayment,
	}
}

// Row is one ID-aligned comparison entry. Missing values are 0, never
// null or NaN, so downstream totals stay safe.
type Row struct {
	ID     string  `json:"id"`
	ValueA float64 `json:"forFrameworkA"`
	ValueB float64 `json:"forFrameworkB"`
}

// familySource maps each family to its detail list and value field.
var familySource = map[Family]struct {
	details func(*result.Payload) []result.Detail
	field   string
}{
	FamilyDispatchCost:    {(*result.Payload).GeneratorDetails, "total_cost"},
	FamilyGeneratorProfit: {(*result.Payload).GeneratorDetails, "profit"},
	FamilySecurityCharge:  {(*result.Payload).GeneratorDetails, "security_charge"},
	FamilyLoadPayment:     {(*result.Payload).LoadDetails, "payment_for_energy"},
}

// ValidFamily reports whether name is a known metric family.
func ValidFamily(name string) bool {
	_, ok := familySource[Family(name)]
	return ok
}

// Compare produces one row per entity id appearing in either payload's
// detail list for the family. Row order is first-appearance order: A's
// list, then B's. An id absent from one side, or carrying a malformed
// value, contributes 0 in that slot.
func Compare(family Family, a, b *result.Payload) []Row {
	src, ok := familySource[family]
	if !ok {
		return nil
	}

	valuesA := fieldByID(src.details(a), src.field)
	valuesB := fieldByID(src.details(b), src.field)

	ids := unionIDs(src.details(a), src.details(b))
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{
			ID:     id,
			ValueA: valuesA[id],
			ValueB: valuesB[id],
		})
	}
	return rows
}

// Summary metric identifiers for the system-level row set.
const (
	SummaryTotalDispatchCost    = "totalDispatchCost"
	SummaryTotalConsumerPayment = "totalConsumerPayment"
	SummaryTotalGenRevenue      = "totalGeneratorRevenue"
	SummaryTotalSecurityCharges = "totalSecurityCharges"
)

// SystemSummary produces the aggregate (non-per-entity) comparison
// rows. Each field is read through a fallback across the frameworks'
// differing top-level summary locations; a value found nowhere
// defaults to 0.
func SystemSummary(a, b *result.Payload) []Row {
	metrics := []struct {
		id      string
		resolve func(*result.Payload) (float64, bool)
	}{
		{SummaryTotalDispatchCost, totalDispatchCost},
		{SummaryTotalConsumerPayment, summaryField("total_consumer_payment_for_energy")},
		{SummaryTotalGenRevenue, summaryField("total_generator_revenue")},
		{SummaryTotalSecurityCharges, summaryField("total_security_charges_collected")},
	}

	rows := make([]Row, 0, len(metrics))
	for _, m := range metrics {
		va, _ := m.resolve(a)
		vb, _ := m.resolve(b)
		rows = append(rows, Row{ID: m.id, ValueA: va, ValueB: vb})
	}
	return rows
}

// totalDispatchCost falls back from the financial summary to the
// causation payload's base-case dispatch solution.
func totalDispatchCost(p *result.Payload) (float64, bool) {
	if v, ok := summaryField("total_dispatch_cost")(p); ok {
		return v, true
	}
	if p != nil && p.BaseCaseDispatchSolution != nil {
		return result.Detail(p.BaseCaseDispatchSolution).Number("total_cost")
	}
	return 0, false
}

func summaryField(key string) func(*result.Payload) (float64, bool) {
	return func(p *result.Payload) (float64, bool) {
		if p == nil {
			return 0, false
		}
		return result.Detail(p.SystemSummary()).Number(key)
	}
}

func fieldByID(details []result.Detail, field string) map[string]float64 {
	out := make(map[string]float64, len(details))
	for _, d := range details {
		id := d.ID()
		if id == "" {
			continue
		}
		if v, ok := d.Number(field); ok {
			out[id] = v
		}
	}
	return out
}

func unionIDs(a, b []result.Detail) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, list := range [][]result.Detail{a, b} {
		for _, d := range list {
			id := d.ID()
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
