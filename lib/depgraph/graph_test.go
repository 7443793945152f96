// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/bureau-foundation/depcrawl/lib/codec"
)

func TestMerge_RightBiased(t *testing.T) {
	a := Graph{"a/b/1": {}}
	b := Graph{"a/b/1": {"x/y/2"}}

	merged := Merge(a, b)
	if !reflect.DeepEqual(merged, Graph{"a/b/1": {"x/y/2"}}) {
		t.Errorf("Merge = %v", merged)
	}
	if len(a["a/b/1"]) != 0 {
		t.Error("Merge modified its left input")
	}
}

func TestMerge_Union(t *testing.T) {
	merged := Merge(Graph{"a/b/1": {"a/b/2"}}, Graph{"a/b/2": {}})
	expected := Graph{"a/b/1": {"a/b/2"}, "a/b/2": {}}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("Merge = %v, want %v", merged, expected)
	}
	if got := Merge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("Merge(nil, nil) = %#v, want empty graph", got)
	}
}

func TestUnresolved(t *testing.T) {
	graph := Graph{
		"a/b/1": {"a/b/2", "a/b/3", "a/b/3"},
		"a/b/2": {"a/b/3", "c/d/9"},
	}
	got := graph.Unresolved()
	if !slices.Equal(got, []ID{"a/b/3", "c/d/9"}) {
		t.Errorf("Unresolved = %q", got)
	}

	graph["a/b/3"] = []ID{}
	graph["c/d/9"] = []ID{"a/b/1"}
	if got := graph.Unresolved(); len(got) != 0 {
		t.Errorf("complete graph has unresolved %q", got)
	}
}

func TestEdgesAndKeys(t *testing.T) {
	graph := Graph{"b/b/2": {"a/a/1"}, "a/a/1": {"b/b/2", "b/b/2"}}
	if graph.Edges() != 3 {
		t.Errorf("Edges = %d, want 3", graph.Edges())
	}
	if !slices.Equal(graph.Keys(), []ID{"a/a/1", "b/b/2"}) {
		t.Errorf("Keys = %q", graph.Keys())
	}
}

func TestClone_IsDeep(t *testing.T) {
	graph := Graph{"a/b/1": {"a/b/2"}}
	clone := graph.Clone()
	clone["a/b/1"][0] = "x/y/9"
	if graph["a/b/1"][0] != "a/b/2" {
		t.Error("Clone shares dependency slices with the original")
	}
}

func TestDigest(t *testing.T) {
	first := Graph{"a/b/1": {"a/b/2", "a/b/3"}, "a/b/2": {}, "a/b/3": {}}
	second := Graph{"a/b/3": {}, "a/b/2": {}, "a/b/1": {"a/b/2", "a/b/3"}}
	if first.Digest() != second.Digest() {
		t.Error("equal graphs have different digests")
	}
	if len(first.Digest()) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(first.Digest()))
	}

	reordered := Graph{"a/b/1": {"a/b/3", "a/b/2"}, "a/b/2": {}, "a/b/3": {}}
	if first.Digest() == reordered.Digest() {
		t.Error("dependency order does not affect the digest")
	}
}

func TestParseSeed(t *testing.T) {
	data := []byte(`{
		// resolved by hand
		"acme/widgets/1": ["acme/widgets/2",],
		"acme/widgets/2": [],
	}`)
	graph, err := ParseSeed(data)
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	expected := Graph{"acme/widgets/1": {"acme/widgets/2"}, "acme/widgets/2": {}}
	if !reflect.DeepEqual(graph, expected) {
		t.Errorf("ParseSeed = %v, want %v", graph, expected)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `[1, 2`},
		{"bad key", `{"acme/widgets": []}`},
		{"bad dependency", `{"acme/widgets/1": ["#2"]}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseSeed([]byte(test.data)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := ParseSeed([]byte(`{"acme/widgets": []}`)); !errors.Is(err, ErrInvalidID) {
		t.Errorf("bad key error = %v, want ErrInvalidID", err)
	}
}

func TestReadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.jsonc")
	if err := os.WriteFile(path, []byte(`{"a/b/1": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	graph, err := ReadSeed(path)
	if err != nil {
		t.Fatalf("ReadSeed: %v", err)
	}
	if len(graph) != 1 {
		t.Errorf("ReadSeed = %v", graph)
	}

	if _, err := ReadSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadSeed_CBOR(t *testing.T) {
	original := Graph{"a/b/1": {"a/b/2"}, "a/b/2": {}}
	data, err := codec.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "previous.cbor")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	graph, err := ReadSeed(path)
	if err != nil {
		t.Fatalf("ReadSeed: %v", err)
	}
	if !reflect.DeepEqual(graph, original) {
		t.Errorf("ReadSeed = %v, want %v", graph, original)
	}
}
