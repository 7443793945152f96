// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"context"
	"errors"
)

// ErrTicketNotFound is returned (wrapped) by a [Source] when a ticket
// does not exist, as opposed to failing to fetch it. Whether the resolver
// treats it as fatal is controlled by [Options].MissingTickets.
var ErrTicketNotFound = errors.New("ticket not found")

// Ticket is the part of a tracker ticket the graph is built from.
type Ticket struct {
	// URL is the tracker's own link for the ticket. Either the web or
	// the API shape accepted by [Canonicalize].
	URL string `json:"url"`

	// Body is the free-form description. Empty means no dependencies.
	Body string `json:"body"`
}

// Source provides ticket data to a [Resolver]. Every method may block on
// I/O and must honor ctx. Errors are opaque to the resolver and abort the
// resolution in progress.
type Source interface {
	// ListOrganizationRepositories returns the "owner/repo" names of the
	// repositories the organization owns, in listing order.
	ListOrganizationRepositories(ctx context.Context, org string) ([]string, error)

	// ListRepositoryTickets returns every ticket of "owner/repo",
	// regardless of open/closed state.
	ListRepositoryTickets(ctx context.Context, ownerRepo string) ([]Ticket, error)

	// FetchTicket returns a single ticket by identifier. The returned
	// ticket's URL may name a different identifier when the ticket has
	// moved.
	FetchTicket(ctx context.Context, id ID) (Ticket, error)
}
