// Package overlay recomputes the visual annotation layer of a grid
// graph from the latest simulation result. The engine has two logical
// states: Baseline, when no usable result exists and every label and
// style equals its base value, and Annotated, when a successful result
// is applied. Re-annotation always starts from the base values, never
// from the previous overlay, so repeated results cannot drift.
package overlay

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gridlens/gridlens/pkg/result"
	"github.com/gridlens/gridlens/pkg/topology"
)

// Congestion tier thresholds on the loading ratio |flow| / limit.
const (
	alertRatio   = 0.95
	warningRatio = 0.75
)

// Stroke width grows monotonically with the loading ratio and never
// drops below the minimum visible width.
const (
	minStrokeWidth  = 2.0
	strokeWidthGain = 4.0
)

// Overlay colors.
const (
	alertColor     = "#d32f2f"
	warningColor   = "#f9a825"
	highlightColor = "#d32f2f"

	highlightBorderWidth = 3.0
)

// Engine derives annotated graphs. It keeps no state between calls:
// the output is purely a function of the base graph and the payload it
// is last given, which is what makes "last write wins" hold for
// superseded fetches.
type Engine struct {
	logger *slog.Logger
}

// New creates an overlay engine.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "overlay"))}
}

// Apply returns a new graph sharing node and edge identity with base
// but with Label and Style recomputed for the given result. A nil or
// failed payload resets every annotation to its exact base value. The
// base graph is never mutated.
func (e *Engine) Apply(base topology.Graph, p *result.Payload) topology.Graph {
	out := base.Clone()
	reset(&out)

	if !p.Usable() {
		e.logger.Debug("no usable result, overlay at baseline",
			slog.Int("nodes", len(out.Nodes)))
		return out
	}

	res := result.NewResolver(p)
	charging := p.FrameworkType == result.FrameworkCausation

	for i := range out.Nodes {
		n := &out.Nodes[i]
		switch n.Kind {
		case topology.KindBus:
			annotateBus(n, res)
		case topology.KindGenerator:
			if charging {
				annotateGenerator(n, res)
			}
		}
	}

	for i := range out.Edges {
		ed := &out.Edges[i]
		if ed.Kind == topology.KindTransmissionLine {
			annotateLine(ed, res)
		}
	}

	e.logger.Debug("overlay annotated",
		slog.String("framework", string(p.FrameworkType)),
		slog.Int("nodes", len(out.Nodes)),
		slog.Int("edges", len(out.Edges)))
	return out
}

// reset restores every current label and style to its base value.
func reset(g *topology.Graph) {
	for i := range g.Nodes {
		g.Nodes[i].Label = g.Nodes[i].BaseLabel
		g.Nodes[i].Style = g.Nodes[i].BaseStyle
	}
	for i := range g.Edges {
		g.Edges[i].Label = g.Edges[i].BaseLabel
		g.Edges[i].Style = g.Edges[i].BaseStyle
	}
}

func annotateBus(n *topology.Node, res *result.Resolver) {
	if price, ok := res.NodalPrice(n.BusNumber); ok {
		n.Label = fmt.Sprintf("%s\n$%.2f", n.BaseLabel, price)
	} else {
		n.Label = n.BaseLabel + "\nN/A"
	}
}

// annotateGenerator highlights generators carrying a positive security
// charge. The highlight depends only on charge > 0, not on magnitude;
// a zero or absent charge leaves the node at its base style.
func annotateGenerator(n *topology.Node, res *result.Resolver) {
	charge, ok := res.SecurityCharge(n.EntityID)
	if !ok || charge <= 0 {
		return
	}
	n.Label = fmt.Sprintf("%s\nSC $%.2f", n.BaseLabel, charge)
	n.Style.Border = highlightColor
	n.Style.BorderWidth = highlightBorderWidth
}

func annotateLine(ed *topology.Edge, res *result.Resolver) {
	flow, ok := res.LineFlow(ed.LineID)
	if !ok {
		ed.Label = ed.BaseLabel + "\nN/A"
		return
	}

	ed.Label = fmt.Sprintf("%s\n%.1f MW", ed.BaseLabel, flow)

	ratio := 0.0
	if ed.FlowLimitMW > 0 {
		ratio = math.Abs(flow) / ed.FlowLimitMW
	}

	ed.Style.Width = strokeWidth(ratio)
	switch {
	case ratio > alertRatio:
		ed.Style.Color = alertColor
		ed.Style.Animated = true
	case ratio > warningRatio:
		ed.Style.Color = warningColor
		ed.Style.Animated = true
	default:
		ed.Style.Color = ed.BaseStyle.Color
		ed.Style.Animated = false
	}
}

func strokeWidth(ratio float64) float64 {
	w := minStrokeWidth + ratio*strokeWidthGain
	if w < minStrokeWidth {
		return minStrokeWidth
	}
	return w
}
