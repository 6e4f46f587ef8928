package result

import "fmt"

// Metric names a resolvable overlay metric.
type Metric string

const (
	MetricNodalPrice     Metric = "nodalPrice"
	MetricLineFlow       Metric = "lineFlow"
	MetricSecurityCharge Metric = "securityCharge"
)

// Resolver resolves metric values from a result payload. The two
// frameworks expose the same metric under different shapes, so each
// metric carries a fixed, ordered list of access paths; the first path
// that yields a finite number wins, and an exhausted list reports the
// metric absent. Absent is distinct from zero: a missing price renders
// as N/A, a zero price as $0.
//
// Resolution never panics and never fails the caller; malformed fields
// simply resolve as absent.
type Resolver struct {
	payload *Payload
}

// NewResolver wraps a payload, which may be nil (every metric resolves
// absent).
func NewResolver(p *Payload) *Resolver {
	return &Resolver{payload: p}
}

// nodalPricePaths is the fixed search order for nodal prices: the
// operational array indexed by zero-based bus position, then the keyed
// summary mapping under "Bus_<n>" and plain "<n>" keys.
var nodalPricePaths = []struct {
	name    string
	resolve func(p *Payload, busNumber int) (float64, bool)
}{
	{"operational-array", func(p *Payload, busNumber int) (float64, bool) {
		if p.OperationalResults == nil {
			return 0, false
		}
		prices := p.OperationalResults.NodalPricesMWh
		idx := busNumber - 1
		if idx < 0 || idx >= len(prices) {
			return 0, false
		}
		return asNumber(prices[idx])
	}},
	{"summary-keyed", func(p *Payload, busNumber int) (float64, bool) {
		for _, summary := range priceSummaries(p) {
			raw, ok := summary["nodal_prices_mwh"]
			if !ok {
				continue
			}
			keyed, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if v, ok := asNumber(keyed[fmt.Sprintf("Bus_%d", busNumber)]); ok {
				return v, true
			}
			if v, ok := asNumber(keyed[fmt.Sprintf("%d", busNumber)]); ok {
				return v, true
			}
		}
		return 0, false
	}},
}

// priceSummaries lists the summary sections that may carry a keyed
// nodal-price mapping, in search order.
func priceSummaries(p *Payload) []map[string]any {
	var out []map[string]any
	if p.FinancialResults != nil && p.FinancialResults.SystemSummary != nil {
		out = append(out, p.FinancialResults.SystemSummary)
	}
	if p.FinalCausationFinancials != nil && p.FinalCausationFinancials.SystemSummary != nil {
		out = append(out, p.FinalCausationFinancials.SystemSummary)
	}
	if p.TraditionalFinancialsForBaseCase != nil && p.TraditionalFinancialsForBaseCase.SystemSummary != nil {
		out = append(out, p.TraditionalFinancialsForBaseCase.SystemSummary)
	}
	return out
}

// NodalPrice resolves the nodal price at a 1-based bus number.
func (r *Resolver) NodalPrice(busNumber int) (float64, bool) {
	if r.payload == nil {
		return 0, false
	}
	for _, path := range nodalPricePaths {
		if v, ok := path.resolve(r.payload, busNumber); ok {
			return v, true
		}
	}
	return 0, false
}

// LineFlow resolves the MW flow on a transmission line by identifier,
// walking the frameworks' two possible line-detail sections.
func (r *Resolver) LineFlow(lineID string) (float64, bool) {
	if r.payload == nil {
		return 0, false
	}
	for _, section := range lineDetailSections(r.payload) {
		if d, ok := findByID(section, lineID); ok {
			if v, ok := d.Number("flow_mw"); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// SecurityCharge resolves the security charge allocated to a generator,
// walking the causation section first.
func (r *Resolver) SecurityCharge(generatorID string) (float64, bool) {
	if r.payload == nil {
		return 0, false
	}
	for _, section := range generatorDetailSections(r.payload) {
		if d, ok := findByID(section, generatorID); ok {
			if v, ok := d.Number("security_charge"); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func lineDetailSections(p *Payload) [][]Detail {
	var out [][]Detail
	if p.FinancialResults != nil && p.FinancialResults.LineDetails != nil {
		out = append(out, p.FinancialResults.LineDetails)
	}
	if p.TraditionalFinancialsForBaseCase != nil && p.TraditionalFinancialsForBaseCase.LineDetails != nil {
		out = append(out, p.TraditionalFinancialsForBaseCase.LineDetails)
	}
	if p.OperationalResults != nil && p.OperationalResults.LineDetails != nil {
		out = append(out, p.OperationalResults.LineDetails)
	}
	return out
}

func generatorDetailSections(p *Payload) [][]Detail {
	var out [][]Detail
	if p.FinalCausationFinancials != nil && p.FinalCausationFinancials.GeneratorDetails != nil {
		out = append(out, p.FinalCausationFinancials.GeneratorDetails)
	}
	if p.FinancialResults != nil && p.FinancialResults.GeneratorDetails != nil {
		out = append(out, p.FinancialResults.GeneratorDetails)
	}
	return out
}

func findByID(details []Detail, id string) (Detail, bool) {
	for _, d := range details {
		if d.ID() == id {
			return d, true
		}
	}
	return nil, false
}
