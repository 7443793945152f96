// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

// NormalizeRedirect rewrites a partial graph produced by fetching
// requested, whose ticket identified itself as actual. When the two
// differ (the ticket moved, or the repository was renamed), the key actual
// becomes requested and every dependency entry equal to actual becomes
// requested. The graph is modified in place and returned.
//
// Applied before merging into the accumulator, this keeps one logical
// ticket under one name: the one the rest of the graph already refers to.
// Without it the resolver would see requested as still unresolved and
// fetch it forever.
func NormalizeRedirect(partial Graph, requested, actual ID) Graph {
	if requested == actual {
		return partial
	}

	if dependencies, ok := partial[actual]; ok {
		delete(partial, actual)
		partial[requested] = dependencies
	}

	for id, dependencies := range partial {
		for index, dependency := range dependencies {
			if dependency == actual {
				dependencies[index] = requested
			}
		}
		partial[id] = dependencies
	}
	return partial
}
