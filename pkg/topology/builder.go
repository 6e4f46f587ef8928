package topology

import (
	"fmt"

	"github.com/gridlens/gridlens/pkg/scenario"
)

// Layout constants. Buses sit on a single horizontal axis; generators
// hang above their bus and loads below. Attached entities fan out
// horizontally modulo 3 so a bus with many units does not drift
// unboundedly to the right.
const (
	busY      = 300.0
	busPitch  = 220.0
	busMargin = 120.0

	attachOffsetY = 150.0
	siblingPitch  = 70.0
	siblingFanOut = 3

	// Orphan rows hold entities whose bus reference did not resolve.
	orphanGenY   = 40.0
	orphanLoadY  = 560.0
	orphanPitch  = 90.0
	orphanMargin = 60.0
)

// Base styles. Overlay resets always restore these exact values.
var (
	BusStyle       = NodeStyle{Fill: "#e8eef7", Border: "#4a6fa5", BorderWidth: 1}
	GeneratorStyle = NodeStyle{Fill: "#e5f3e1", Border: "#3a7d44", BorderWidth: 1}
	LoadStyle      = NodeStyle{Fill: "#fdf2e3", Border: "#b07d2b", BorderWidth: 1}

	ConnectionStyle = EdgeStyle{Color: "#9aa0a6", Width: 1}
	LineStyle       = EdgeStyle{Color: "#2e7d32", Width: 2}
)

// Build computes the base graph for an entity registry. The result is a
// pure function of the registry: identical scenarios yield node and edge
// sets equal in id, position, label and style.
//
// Dangling references degrade rather than fail: a generator or load
// pointing at an unknown bus becomes an unconnected orphan node, and a
// transmission line missing either endpoint is omitted entirely.
func Build(ix *scenario.EntityIndex) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(ix.Buses)+len(ix.Generators)+len(ix.Loads)),
		Edges: make([]Edge, 0, len(ix.Generators)+len(ix.Loads)+len(ix.Lines)),
	}

	for _, b := range ix.Buses {
		n := newNode(b.NodeID, KindBus, busPosition(b.Number), b.Label, BusStyle)
		n.BusNumber = b.Number
		g.Nodes = append(g.Nodes, n)
	}

	// siblings counts resolved attachments per bus so each unit gets a
	// stable slot within its group.
	siblings := make(map[int]int)
	for i, gen := range ix.Generators {
		nodeID := fmt.Sprintf("gen-%s", gen.ID)
		label := fmt.Sprintf("%s (%.0f MW)", gen.ID, gen.CapacityMW)

		n := newNode(nodeID, KindGenerator, Position{}, label, GeneratorStyle)
		n.EntityID = gen.ID

		bus, ok := ix.Bus(gen.BusID)
		if !ok {
			n.Position = orphanPosition(i, orphanGenY)
			g.Nodes = append(g.Nodes, n)
			continue
		}

		slot := siblings[gen.BusID]
		siblings[gen.BusID]++
		n.Position = attachedPosition(bus.Number, slot, busY-attachOffsetY)
		g.Nodes = append(g.Nodes, n)
		g.Edges = append(g.Edges, connectionEdge(fmt.Sprintf("conn-gen-%s", gen.ID), nodeID, bus.NodeID))
	}

	siblings = make(map[int]int)
	for i, ld := range ix.Loads {
		nodeID := fmt.Sprintf("load-%s", ld.ID)
		label := fmt.Sprintf("%s (%.0f MW)", ld.ID, ld.DemandMW)

		n := newNode(nodeID, KindLoad, Position{}, label, LoadStyle)
		n.EntityID = ld.ID

		bus, ok := ix.Bus(ld.BusID)
		if !ok {
			n.Position = orphanPosition(i, orphanLoadY)
			g.Nodes = append(g.Nodes, n)
			continue
		}

		slot := siblings[ld.BusID]
		siblings[ld.BusID]++
		n.Position = attachedPosition(bus.Number, slot, busY+attachOffsetY)
		g.Nodes = append(g.Nodes, n)
		g.Edges = append(g.Edges, connectionEdge(fmt.Sprintf("conn-load-%s", ld.ID), bus.NodeID, nodeID))
	}

	for _, ln := range ix.Lines {
		from, okFrom := ix.Bus(ln.FromBusID)
		to, okTo := ix.Bus(ln.ToBusID)
		if !okFrom || !okTo {
			// Edges require two endpoints; no orphan edges.
			continue
		}
		label := ln.ID
		g.Edges = append(g.Edges, Edge{
			ID:           fmt.Sprintf("line-%s", ln.ID),
			Kind:         KindTransmissionLine,
			SourceNodeID: from.NodeID,
			TargetNodeID: to.NodeID,
			BaseLabel:    label,
			Label:        label,
			BaseStyle:    LineStyle,
			Style:        LineStyle,
			LineID:       ln.ID,
			FlowLimitMW:  ln.FlowLimitMW,
		})
	}

	return g
}

func newNode(id string, kind NodeKind, pos Position, label string, style NodeStyle) Node {
	return Node{
		ID:        id,
		Kind:      kind,
		Position:  pos,
		BaseLabel: label,
		Label:     label,
		BaseStyle: style,
		Style:     style,
	}
}

func connectionEdge(id, source, target string) Edge {
	return Edge{
		ID:           id,
		Kind:         KindConnection,
		SourceNodeID: source,
		TargetNodeID: target,
		BaseStyle:    ConnectionStyle,
		Style:        ConnectionStyle,
	}
}

func busPosition(number int) Position {
	return Position{
		X: busMargin + float64(number-1)*busPitch,
		Y: busY,
	}
}

func attachedPosition(busNumber, slot int, y float64) Position {
	base := busPosition(busNumber)
	return Position{
		X: base.X + float64(slot%siblingFanOut)*siblingPitch,
		Y: y,
	}
}

func orphanPosition(index int, y float64) Position {
	return Position{
		X: orphanMargin + float64(index)*orphanPitch,
		Y: y,
	}
}
