// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker adapts issue trackers to [depgraph.Source].
//
// [GitHub] reads repositories and issues through the REST client in
// lib/github. [Cached] wraps any Source with a bounded LRU of fetched
// tickets, so that tickets referenced from several repositories of an
// organization are fetched over the network once per process even though
// each repository is resolved independently.
package tracker
