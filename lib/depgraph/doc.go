// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package depgraph builds dependency graphs from "Depends on" declarations
// in issue-tracker tickets.
//
// A ticket declares a dependency with a line of the form
//
//	Depends on https://github.com/owner/repo/issues/13
//	Depends on #7
//
// Every reference is canonicalized to an [ID] of the form
// "owner/repo/number", and the resulting [Graph] maps each ticket's ID to
// the IDs it depends on, in the order they appear in the ticket body.
//
// The pure building blocks are:
//
//   - [ExtractReferences]: raw reference URLs from a ticket body
//   - [Canonicalize]: web or API issue URL to an [ID]
//   - [FromTickets]: a batch of tickets to a partial [Graph]
//   - [Merge]: right-biased union of two graphs
//   - [NormalizeRedirect]: fold a moved ticket back onto the ID that was
//     requested
//
// [Resolver] drives them to a fixed point: starting from a repository's
// (or an organization's) tickets, it fetches every referenced ticket that is
// not yet a key, round by round, until every ID that appears as a
// dependency is also a key. Each ID is fetched at most once per resolution,
// so cycles and self-references terminate.
//
// The resolver does no I/O of its own. Repository listing and ticket
// fetching go through the [Source] interface; lib/tracker provides the
// GitHub implementation.
package depgraph
