// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

// DefaultTicketCacheSize is the ticket cache capacity used when the
// configured size is zero.
const DefaultTicketCacheSize = 4096

// Cached is a [depgraph.Source] that remembers fetched tickets. Listings
// pass straight through; failed fetches are not cached.
//
// Two concurrent fetches of the same uncached ID both reach the inner
// source. The resolver never issues those within one resolution.
type Cached struct {
	inner   depgraph.Source
	tickets *lru.Cache[depgraph.ID, depgraph.Ticket]
}

var _ depgraph.Source = (*Cached)(nil)

// NewCached wraps inner with a ticket cache of the given capacity. Zero
// selects DefaultTicketCacheSize; a negative size is an error.
func NewCached(inner depgraph.Source, size int) (*Cached, error) {
	if size == 0 {
		size = DefaultTicketCacheSize
	}
	tickets, err := lru.New[depgraph.ID, depgraph.Ticket](size)
	if err != nil {
		return nil, fmt.Errorf("creating ticket cache: %w", err)
	}
	return &Cached{inner: inner, tickets: tickets}, nil
}

func (cached *Cached) ListOrganizationRepositories(ctx context.Context, org string) ([]string, error) {
	return cached.inner.ListOrganizationRepositories(ctx, org)
}

// ListRepositoryTickets passes through to the inner source and primes
// the cache with every listed ticket under its own identity, so later
// references to them from other repositories need no fetch.
func (cached *Cached) ListRepositoryTickets(ctx context.Context, ownerRepo string) ([]depgraph.Ticket, error) {
	tickets, err := cached.inner.ListRepositoryTickets(ctx, ownerRepo)
	if err != nil {
		return nil, err
	}
	for _, ticket := range tickets {
		if id, ok := depgraph.Canonicalize(ticket.URL); ok {
			cached.tickets.Add(id, ticket)
		}
	}
	return tickets, nil
}

func (cached *Cached) FetchTicket(ctx context.Context, id depgraph.ID) (depgraph.Ticket, error) {
	if ticket, ok := cached.tickets.Get(id); ok {
		return ticket, nil
	}
	ticket, err := cached.inner.FetchTicket(ctx, id)
	if err != nil {
		return depgraph.Ticket{}, err
	}
	// Keyed by the requested ID: a redirected ticket is served again
	// with its original URL and normalized the same way.
	cached.tickets.Add(id, ticket)
	return ticket, nil
}

// Len returns the number of cached tickets.
func (cached *Cached) Len() int {
	return cached.tickets.Len()
}
