// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/depcrawl/lib/codec"
)

// Graph maps a ticket to the tickets it depends on. Dependency order
// follows the ticket body; duplicates are kept. A key mapped to an empty
// list is a resolved ticket with no dependencies.
type Graph map[ID][]ID

// Merge returns a new graph holding every key of a and b. On a key
// present in both, b's value wins. Neither input is modified.
func Merge(a, b Graph) Graph {
	merged := make(Graph, len(a)+len(b))
	for id, dependencies := range a {
		merged[id] = dependencies
	}
	for id, dependencies := range b {
		merged[id] = dependencies
	}
	return merged
}

// Clone returns a deep copy of the graph.
func (graph Graph) Clone() Graph {
	clone := make(Graph, len(graph))
	for id, dependencies := range graph {
		clone[id] = slices.Clone(dependencies)
	}
	return clone
}

// Keys returns the graph's keys in sorted order.
func (graph Graph) Keys() []ID {
	keys := make([]ID, 0, len(graph))
	for id := range graph {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}

// Unresolved returns every ID that appears in some dependency list but is
// not itself a key, deduplicated and sorted. An empty result means the
// graph is complete.
func (graph Graph) Unresolved() []ID {
	seen := make(map[ID]bool)
	var unresolved []ID
	for _, dependencies := range graph {
		for _, dependency := range dependencies {
			if _, isKey := graph[dependency]; isKey || seen[dependency] {
				continue
			}
			seen[dependency] = true
			unresolved = append(unresolved, dependency)
		}
	}
	slices.Sort(unresolved)
	return unresolved
}

// Edges returns the total number of dependency entries.
func (graph Graph) Edges() int {
	count := 0
	for _, dependencies := range graph {
		count += len(dependencies)
	}
	return count
}

// Digest returns a hex BLAKE3-256 hash of the graph's content. The hash
// covers keys in sorted order and each key's dependencies in order, so two
// graphs with equal content always have equal digests regardless of map
// iteration order.
func (graph Graph) Digest() string {
	var builder strings.Builder
	for _, id := range graph.Keys() {
		builder.WriteString(string(id))
		for _, dependency := range graph[id] {
			builder.WriteByte(' ')
			builder.WriteString(string(dependency))
		}
		builder.WriteByte('\n')
	}
	sum := blake3.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}

// ReadSeed loads a seed graph from a file. Files ending in ".cbor" are
// decoded as CBOR (the output of --format cbor); anything else is JSON,
// with comments and trailing commas accepted. Every key and dependency
// must be a well-formed "owner/repo/number" identifier.
func ReadSeed(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		var raw map[string][]string
		if err := codec.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing seed graph %s: %w", path, err)
		}
		return validateSeed(raw)
	}
	return ParseSeed(data)
}

// ParseSeed parses a seed graph from JSONC bytes. See [ReadSeed].
func ParseSeed(data []byte) (Graph, error) {
	var raw map[string][]string
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing seed graph: %w", err)
	}
	return validateSeed(raw)
}

func validateSeed(raw map[string][]string) (Graph, error) {
	graph := make(Graph, len(raw))
	for key, values := range raw {
		id, err := ParseID(key)
		if err != nil {
			return nil, fmt.Errorf("seed key: %w", err)
		}
		dependencies := make([]ID, 0, len(values))
		for _, value := range values {
			dependency, err := ParseID(value)
			if err != nil {
				return nil, fmt.Errorf("seed dependency of %s: %w", id, err)
			}
			dependencies = append(dependencies, dependency)
		}
		graph[id] = dependencies
	}
	return graph, nil
}
