package result

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// Framework identifies which simulation methodology produced a payload.
type Framework string

const (
	FrameworkTraditional Framework = "traditional"
	FrameworkCausation   Framework = "causation"
)

// ParseFramework validates a framework name from external input.
func ParseFramework(s string) (Framework, error) {
	switch Framework(strings.ToLower(s)) {
	case FrameworkTraditional:
		return FrameworkTraditional, nil
	case FrameworkCausation:
		return FrameworkCausation, nil
	default:
		return "", fmt.Errorf("invalid simulation framework %q (supported: traditional, causation)", s)
	}
}

// Payload is a framework-tagged simulation result. The two frameworks
// expose overlapping data under different sections, so most access goes
// through the Resolver or the section helpers below rather than direct
// field reads.
type Payload struct {
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	FrameworkType Framework `json:"framework_type,omitempty"`

	FinancialResults                 *Financials    `json:"financial_results,omitempty"`
	FinalCausationFinancials         *Financials    `json:"final_causation_financials,omitempty"`
	OperationalResults               *Operational   `json:"operational_results,omitempty"`
	BaseCaseDispatchSolution         map[string]any `json:"base_case_dispatch_solution,omitempty"`
	TraditionalFinancialsForBaseCase *Financials    `json:"traditional_financials_for_base_case,omitempty"`
}

// Financials is a per-framework financial result section.
type Financials struct {
	SystemSummary    map[string]any `json:"system_summary,omitempty"`
	GeneratorDetails []Detail       `json:"generator_details,omitempty"`
	LoadDetails      []Detail       `json:"load_details,omitempty"`
	LineDetails      []Detail       `json:"line_details,omitempty"`
}

// Operational is the dispatch-level result section produced by the
// traditional solver. Nodal prices arrive as an array indexed by
// zero-based bus position.
type Operational struct {
	NodalPricesMWh []any    `json:"nodal_prices_mwh,omitempty"`
	LineDetails    []Detail `json:"line_details,omitempty"`
}

// Detail is a per-entity result record of unspecified shape. Fields are
// kept untyped so that malformed values degrade to "absent" instead of
// failing the whole decode.
type Detail map[string]any

// ID returns the record's entity identifier, or "" if missing.
func (d Detail) ID() string {
	s, _ := d["id"].(string)
	return s
}

// Number reads a numeric field. The second return is false when the
// field is missing, non-numeric, NaN or infinite.
func (d Detail) Number(key string) (float64, bool) {
	return asNumber(d[key])
}

// Usable reports whether a payload carries a result the overlay may
// apply: present, and with success status.
func (p *Payload) Usable() bool {
	return p != nil && p.Status == "success"
}

// GeneratorDetails returns the per-generator records, preferring the
// causation section when both are present.
func (p *Payload) GeneratorDetails() []Detail {
	if p == nil {
		return nil
	}
	if p.FinalCausationFinancials != nil && p.FinalCausationFinancials.GeneratorDetails != nil {
		return p.FinalCausationFinancials.GeneratorDetails
	}
	if p.FinancialResults != nil {
		return p.FinancialResults.GeneratorDetails
	}
	return nil
}

// LoadDetails returns the per-load records. Causation payloads carry
// them under the base-case traditional financials.
func (p *Payload) LoadDetails() []Detail {
	if p == nil {
		return nil
	}
	if p.FinancialResults != nil && p.FinancialResults.LoadDetails != nil {
		return p.FinancialResults.LoadDetails
	}
	if p.TraditionalFinancialsForBaseCase != nil {
		return p.TraditionalFinancialsForBaseCase.LoadDetails
	}
	return nil
}

// LineDetails returns the per-line records across the frameworks'
// differing sections.
func (p *Payload) LineDetails() []Detail {
	if p == nil {
		return nil
	}
	if p.FinancialResults != nil && p.FinancialResults.LineDetails != nil {
		return p.FinancialResults.LineDetails
	}
	if p.TraditionalFinancialsForBaseCase != nil && p.TraditionalFinancialsForBaseCase.LineDetails != nil {
		return p.TraditionalFinancialsForBaseCase.LineDetails
	}
	if p.OperationalResults != nil {
		return p.OperationalResults.LineDetails
	}
	return nil
}

// SystemSummary returns the framework's top-level summary mapping.
func (p *Payload) SystemSummary() map[string]any {
	if p == nil {
		return nil
	}
	if p.FinalCausationFinancials != nil && p.FinalCausationFinancials.SystemSummary != nil {
		return p.FinalCausationFinancials.SystemSummary
	}
	if p.FinancialResults != nil {
		return p.FinancialResults.SystemSummary
	}
	return nil
}

// Load reads a result payload from a JSON file.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}
	return Parse(data)
}

// Parse parses a result payload from JSON bytes.
func Parse(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode result JSON: %w", err)
	}
	return &p, nil
}

// asNumber coerces the loosely typed values a JSON decode produces.
// Anything that is not a finite number is reported absent.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
