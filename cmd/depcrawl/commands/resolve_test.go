// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/depcrawl/lib/codec"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

// crawlFixture serves acme/widgets, whose first issue depends on an issue
// in acme/gears, and acme/gears, whose issue depends on nothing.
func crawlFixture() *fakeGitHub {
	fake := newFakeGitHub()
	fake.routes["/repos/acme/widgets/issues"] = "[" +
		issue("acme/widgets", "1", "Blocked.\nDepends on https://github.com/acme/gears/issues/2\nDepends on #3") + "," +
		issue("acme/widgets", "3", "") + "]"
	fake.routes["/repos/acme/gears/issues"] = "[" + issue("acme/gears", "5", "Depends on #2") + "]"
	fake.routes["/repos/acme/gears/issues/2"] = issue("acme/gears", "2", "nothing here")
	fake.routes["/orgs/acme/repos"] = `[
		{"name": "widgets", "full_name": "acme/widgets", "owner": {"login": "acme"}},
		{"name": "gears", "full_name": "acme/gears", "owner": {"login": "acme"}}
	]`
	return fake
}

func decodeJSONGraph(t *testing.T, output string) map[string][]string {
	t.Helper()
	var graph map[string][]string
	if err := json.Unmarshal([]byte(output), &graph); err != nil {
		t.Fatalf("output is not a JSON graph: %v\n%s", err, output)
	}
	return graph
}

func TestResolve_Repository(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	result := runCommand(t, server, "", "resolve", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v\nstderr: %s", result.err, result.stderr)
	}

	expected := map[string][]string{
		"acme/widgets/1": {"acme/gears/2", "acme/widgets/3"},
		"acme/widgets/3": {},
		"acme/gears/2":   {},
	}
	if graph := decodeJSONGraph(t, result.stdout); !reflect.DeepEqual(graph, expected) {
		t.Errorf("graph = %v, want %v", graph, expected)
	}
	if count := fake.requested("/repos/acme/gears/issues/2"); count != 1 {
		t.Errorf("acme/gears/2 fetched %d times, want 1", count)
	}
}

func TestResolve_Organization(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	result := runCommand(t, server, "", "resolve", "acme")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}

	expected := map[string][]string{
		"acme/widgets/1": {"acme/gears/2", "acme/widgets/3"},
		"acme/widgets/3": {},
		"acme/gears/2":   {},
		"acme/gears/5":   {"acme/gears/2"},
	}
	if graph := decodeJSONGraph(t, result.stdout); !reflect.DeepEqual(graph, expected) {
		t.Errorf("graph = %v, want %v", graph, expected)
	}
	// The ticket cache spans the repositories of one organization.
	if count := fake.requested("/repos/acme/gears/issues/2"); count != 1 {
		t.Errorf("acme/gears/2 fetched %d times, want 1", count)
	}
}

func TestResolve_MultipleTargetsMerge(t *testing.T) {
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "acme/gears", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	graph := decodeJSONGraph(t, result.stdout)
	for _, id := range []string{"acme/gears/5", "acme/gears/2", "acme/widgets/1", "acme/widgets/3"} {
		if _, ok := graph[id]; !ok {
			t.Errorf("merged graph missing %s: %v", id, graph)
		}
	}
}

func TestResolve_TextFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "--format", "text", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	expected := "acme/gears/2 (no dependencies)\n" +
		"acme/widgets/1\n" +
		"  -> acme/gears/2\n" +
		"  -> acme/widgets/3\n" +
		"acme/widgets/3 (no dependencies)\n"
	if result.stdout != expected {
		t.Errorf("text output:\n%s\nwant:\n%s", result.stdout, expected)
	}
}

func TestResolve_DotFormat(t *testing.T) {
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "-f", "dot", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	expected := `digraph dependencies {
  rankdir=LR;
  "acme/gears/2";
  "acme/widgets/1";
  "acme/widgets/3";
  "acme/widgets/1" -> "acme/gears/2";
  "acme/widgets/1" -> "acme/widgets/3";
}
`
	if result.stdout != expected {
		t.Errorf("dot output:\n%s\nwant:\n%s", result.stdout, expected)
	}
}

func TestResolve_CBORFormatRoundTripsAsSeed(t *testing.T) {
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "--format", "cbor", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}

	var decoded map[string][]string
	if err := codec.Unmarshal([]byte(result.stdout), &decoded); err != nil {
		t.Fatalf("decoding cbor output: %v", err)
	}
	if len(decoded["acme/widgets/1"]) != 2 {
		t.Errorf("decoded graph = %v", decoded)
	}

	path := filepath.Join(t.TempDir(), "graph.cbor")
	if err := os.WriteFile(path, []byte(result.stdout), 0o644); err != nil {
		t.Fatal(err)
	}
	seed, err := depgraph.ReadSeed(path)
	if err != nil {
		t.Fatalf("ReadSeed: %v", err)
	}
	if len(seed) != 3 || len(seed.Unresolved()) != 0 {
		t.Errorf("seed = %v, want the complete three-ticket graph", seed)
	}
}

func TestResolve_DiagnosticFormat(t *testing.T) {
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "--format", "diag", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	for _, want := range []string{`"acme/gears/2": []`, `"acme/widgets/1": ["acme/gears/2", "acme/widgets/3"]`} {
		if !strings.Contains(result.stdout, want) {
			t.Errorf("diagnostic output missing %s:\n%s", want, result.stdout)
		}
	}
}

func TestResolve_Digest(t *testing.T) {
	server := startFake(t, crawlFixture())

	result := runCommand(t, server, "", "resolve", "--digest", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	expected := depgraph.Graph{
		"acme/widgets/1": {"acme/gears/2", "acme/widgets/3"},
		"acme/widgets/3": {},
		"acme/gears/2":   {},
	}.Digest()
	if got := strings.TrimSpace(result.stdout); got != expected {
		t.Errorf("digest = %q, want %q", got, expected)
	}
}

func TestResolve_SeedIsNotRefetched(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{
		// resolved by an earlier run
		"acme/gears/2": ["acme/gears/9"],
		"acme/gears/9": [],
	}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	result := runCommand(t, server, "", "resolve", "--seed", path, "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	if count := fake.requested("/repos/acme/gears/issues/2"); count != 0 {
		t.Errorf("seeded ticket fetched %d times, want 0", count)
	}
	graph := decodeJSONGraph(t, result.stdout)
	if !reflect.DeepEqual(graph["acme/gears/2"], []string{"acme/gears/9"}) {
		t.Errorf("acme/gears/2 = %v, want the seeded dependencies", graph["acme/gears/2"])
	}
}

func TestResolve_OrganizationSeedIsNotRefetched(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `{"acme/gears/2": ["acme/gears/9"], "acme/gears/9": []}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	result := runCommand(t, server, "", "resolve", "--seed", path, "acme")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	if count := fake.requested("/repos/acme/gears/issues/2"); count != 0 {
		t.Errorf("seeded ticket fetched %d times, want 0", count)
	}
	graph := decodeJSONGraph(t, result.stdout)
	if !reflect.DeepEqual(graph["acme/gears/2"], []string{"acme/gears/9"}) {
		t.Errorf("acme/gears/2 = %v, want the seeded dependencies", graph["acme/gears/2"])
	}
	if !reflect.DeepEqual(graph["acme/gears/5"], []string{"acme/gears/2"}) {
		t.Errorf("acme/gears/5 = %v, want [acme/gears/2]", graph["acme/gears/5"])
	}
}

func TestResolve_InvalidTargetMakesNoRequests(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	for _, target := range []string{"acme/widgets/1", "acme//widgets", "/acme"} {
		t.Run(target, func(t *testing.T) {
			result := runCommand(t, server, "", "resolve", "acme/widgets", target)
			if result.err == nil {
				t.Fatalf("resolve %q = nil, want error", target)
			}
			if result.stdout != "" {
				t.Errorf("stdout = %q, want nothing", result.stdout)
			}
		})
	}
	if count := fake.requestCount(); count != 0 {
		t.Errorf("server received %d requests, want 0", count)
	}
}

func TestResolve_FetchFailureAborts(t *testing.T) {
	fake := crawlFixture()
	fake.statuses["/repos/acme/gears/issues/2"] = 500
	server := startFake(t, fake)

	result := runCommand(t, server, "", "resolve", "acme/widgets")
	if result.err == nil {
		t.Fatal("resolve = nil, want error")
	}
	if !strings.Contains(result.err.Error(), "acme/gears/2") {
		t.Errorf("error = %q, want it to name the failed ticket", result.err.Error())
	}
	if result.stdout != "" {
		t.Errorf("stdout = %q, want no partial graph", result.stdout)
	}
}

func TestResolve_MissingTicketPolicy(t *testing.T) {
	fake := crawlFixture()
	delete(fake.routes, "/repos/acme/gears/issues/2")
	server := startFake(t, fake)

	result := runCommand(t, server, "", "resolve", "acme/widgets")
	if result.err == nil {
		t.Fatal("resolve with default policy = nil, want error")
	}

	result = runCommand(t, server, "", "resolve", "--missing", "leaf", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve --missing leaf: %v", result.err)
	}
	graph := decodeJSONGraph(t, result.stdout)
	if dependencies, ok := graph["acme/gears/2"]; !ok || len(dependencies) != 0 {
		t.Errorf("acme/gears/2 = %v (present %v), want leaf", dependencies, ok)
	}
}

func TestResolve_ConfigFile(t *testing.T) {
	fake := crawlFixture()
	delete(fake.routes, "/repos/acme/gears/issues/2")
	server := startFake(t, fake)

	t.Setenv("DEPCRAWL_TEST_TOKEN", "from-environment")
	path := filepath.Join(t.TempDir(), "depcrawl.yaml")
	configFile := "github:\n" +
		"  token: ${DEPCRAWL_TEST_TOKEN}\n" +
		"resolve:\n" +
		"  concurrency: 2\n" +
		"  missing_tickets: leaf\n"
	if err := os.WriteFile(path, []byte(configFile), 0o644); err != nil {
		t.Fatal(err)
	}

	result := runCommand(t, server, "", "resolve", "--config", path, "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, request := range fake.requests {
		if got := request.Header.Get("Authorization"); got != "Bearer from-environment" {
			t.Errorf("%s Authorization = %q, want token from config", request.URL.Path, got)
		}
	}
}

func TestResolve_TokenFlag(t *testing.T) {
	fake := crawlFixture()
	server := startFake(t, fake)

	result := runCommand(t, server, "", "resolve", "--token", "ghp_flag", "acme/widgets")
	if result.err != nil {
		t.Fatalf("resolve: %v", result.err)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if got := fake.requests[0].Header.Get("Authorization"); got != "Bearer ghp_flag" {
		t.Errorf("Authorization = %q, want Bearer ghp_flag", got)
	}
}

func TestResolve_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no targets",
			args: []string{"resolve"},
			want: "at least one target",
		},
		{
			name: "unknown format",
			args: []string{"resolve", "--format", "yaml", "acme/widgets"},
			want: "unknown format",
		},
		{
			name: "bad missing policy",
			args: []string{"resolve", "--missing", "ignore", "acme/widgets"},
			want: "missing_tickets",
		},
		{
			name: "bad concurrency",
			args: []string{"resolve", "--concurrency", "-1", "acme/widgets"},
			want: "concurrency",
		},
		{
			name: "bad log level",
			args: []string{"resolve", "--log-level", "loud", "acme/widgets"},
			want: "log level",
		},
		{
			name: "missing seed file",
			args: []string{"resolve", "--seed", "/nonexistent/seed.json", "acme/widgets"},
			want: "reading seed",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := crawlFixture()
			server := startFake(t, fake)
			result := runCommand(t, server, "", test.args...)
			if result.err == nil {
				t.Fatal("resolve = nil, want error")
			}
			if !strings.Contains(result.err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", result.err.Error(), test.want)
			}
			if fake.requestCount() != 0 {
				t.Errorf("server received %d requests, want 0", fake.requestCount())
			}
		})
	}
}
