// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/codec"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatText = "text"
	formatDot  = "dot"
	formatCBOR = "cbor"
	formatDiag = "diag"
)

var graphFormats = []string{formatJSON, formatText, formatDot, formatCBOR, formatDiag}

// renderGraph writes graph to w in the named format. Keys are always
// emitted in sorted order and dependency lists in source order, so equal
// graphs render byte-identically.
func renderGraph(w io.Writer, graph depgraph.Graph, format string) error {
	switch format {
	case formatJSON:
		return cli.WriteJSON(w, wireGraph(graph))
	case formatCBOR:
		return codec.NewEncoder(w).Encode(wireGraph(graph))
	case formatDiag:
		return renderDiagnostic(w, graph)
	case formatText:
		return renderText(w, graph)
	case formatDot:
		return renderDot(w, graph)
	default:
		return fmt.Errorf("unknown format %q (expected one of %v)", format, graphFormats)
	}
}

// wireGraph converts graph to the map shape the serialized formats use.
// Dependency lists are never nil, so a leaf encodes as an empty array.
func wireGraph(graph depgraph.Graph) map[string][]string {
	wire := make(map[string][]string, len(graph))
	for id, dependencies := range graph {
		list := make([]string, len(dependencies))
		for index, dependency := range dependencies {
			list[index] = string(dependency)
		}
		wire[string(id)] = list
	}
	return wire
}

// renderText writes one block per ticket: the ticket, then one indented
// "->" line per dependency. Styling is applied only when w is a terminal.
func renderText(w io.Writer, graph depgraph.Graph) error {
	renderer := lipgloss.NewRenderer(w)
	ticketStyle := renderer.NewStyle().Bold(true)
	arrowStyle := renderer.NewStyle().Foreground(lipgloss.Color("8"))
	leafStyle := renderer.NewStyle().Faint(true)

	buffered := bufio.NewWriter(w)
	for _, id := range graph.Keys() {
		dependencies := graph[id]
		if len(dependencies) == 0 {
			fmt.Fprintf(buffered, "%s %s\n", ticketStyle.Render(string(id)), leafStyle.Render("(no dependencies)"))
			continue
		}
		fmt.Fprintln(buffered, ticketStyle.Render(string(id)))
		for _, dependency := range dependencies {
			fmt.Fprintf(buffered, "  %s %s\n", arrowStyle.Render("->"), dependency)
		}
	}
	return buffered.Flush()
}

// renderDot writes graph as a Graphviz digraph. Every ticket is declared
// as a node so leaves without edges still appear.
func renderDot(w io.Writer, graph depgraph.Graph) error {
	buffered := bufio.NewWriter(w)
	fmt.Fprintln(buffered, "digraph dependencies {")
	fmt.Fprintln(buffered, "  rankdir=LR;")
	keys := graph.Keys()
	for _, id := range keys {
		fmt.Fprintf(buffered, "  %s;\n", strconv.Quote(string(id)))
	}
	for _, id := range keys {
		for _, dependency := range graph[id] {
			fmt.Fprintf(buffered, "  %s -> %s;\n", strconv.Quote(string(id)), strconv.Quote(string(dependency)))
		}
	}
	fmt.Fprintln(buffered, "}")
	return buffered.Flush()
}

// renderDiagnostic writes the CBOR encoding of graph in RFC 8949
// diagnostic notation: what --format cbor would emit, readable.
func renderDiagnostic(w io.Writer, graph depgraph.Graph) error {
	data, err := codec.Marshal(wireGraph(graph))
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	diagnostic, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("diagnosing graph encoding: %w", err)
	}
	_, err = fmt.Fprintln(w, diagnostic)
	return err
}
