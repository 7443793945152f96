// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code accepts a Clock instead of calling time.Now directly.
// Real() is the standard library behavior. Fake() is a clock that moves
// only when the test calls Advance, so logged and returned durations are
// exact:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	resolver, _ := depgraph.NewResolver(source, depgraph.Options{Clock: c})
//	c.Advance(5 * time.Second)
package clock
