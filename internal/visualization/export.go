// Package visualization renders generated networks and propagation traces
// in consumer-facing output formats. It is export only: nothing here is read
// back by the core.
package visualization

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/glucoxe/netspread/internal/graph"
	"github.com/glucoxe/netspread/internal/propagation"
)

// Format specifies the output format for network rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// stateColors maps final node states to DOT colors, matching the palette of
// the step-by-step renderer (origin sea green, received lime, stopped blue,
// pending crimson).
var stateColors = map[propagation.State]string{
	propagation.StatePending:  "#DC143C",
	propagation.StateReceived: "#32CD32",
	propagation.StateStopped:  "#4169E1",
}

const originColor = "#2E8B57"

// RenderDOT produces a Graphviz DOT representation of the network. When a
// propagation result is supplied, nodes are colored by their settled state
// and the origin is highlighted.
func RenderDOT(net *graph.Network, origin int, result *propagation.Result) string {
	var b strings.Builder
	b.WriteString("graph netspread {\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=8];\n")
	b.WriteString("  edge [color=\"#808080\"];\n\n")

	var final []propagation.State
	if result != nil && len(result.Steps) > 0 {
		final = result.Steps[len(result.Steps)-1].States
	}

	for _, node := range net.Nodes {
		color := "lightgray"
		if final != nil {
			color = stateColors[final[node.ID]]
			if node.ID == origin {
				color = originColor
			}
		}
		b.WriteString(fmt.Sprintf("  %d [pos=\"%.1f,%.1f!\", fillcolor=%q];\n",
			node.ID, node.X, node.Y, color))
	}
	b.WriteString("\n")

	for _, e := range net.Edges {
		b.WriteString(fmt.Sprintf("  %d -- %d;\n", e.A, e.B))
	}

	b.WriteString("}\n")
	return b.String()
}

// Export is the JSON document produced by RenderJSON.
type Export struct {
	Nodes         []graph.Node               `json:"nodes"`
	Edges         []graph.Edge               `json:"edges"`
	Properties    graph.Properties           `json:"properties"`
	Steps         []propagation.Step         `json:"steps,omitempty"`
	Confirmations []propagation.Confirmation `json:"confirmations,omitempty"`
	Summary       *propagation.Summary       `json:"summary,omitempty"`
}

// RenderJSON produces an indented JSON export of the network and, when
// present, its propagation trace.
func RenderJSON(net *graph.Network, result *propagation.Result) (string, error) {
	export := Export{
		Nodes:      net.Nodes,
		Edges:      net.Edges,
		Properties: net.Properties(),
	}
	if result != nil {
		export.Steps = result.Steps
		export.Confirmations = result.Confirmations
		export.Summary = &result.Summary
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}
	return string(data), nil
}
