// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import "log/slog"

// FromTickets converts a batch of tickets into a partial graph with one
// entry per ticket: the ticket's own ID mapped to its canonicalized
// dependencies. References that do not canonicalize are dropped. A ticket
// whose own URL does not canonicalize is dropped entirely and logged;
// this is a data-quality outcome, not an error.
//
// A nil logger discards the anomaly log.
func FromTickets(tickets []Ticket, logger *slog.Logger) Graph {
	graph := make(Graph, len(tickets))
	for _, ticket := range tickets {
		self, ok := Canonicalize(ticket.URL)
		if !ok {
			if logger != nil {
				logger.Warn("dropping ticket with unrecognized url", "url", ticket.URL)
			}
			continue
		}
		graph[self] = dependenciesOf(self, ticket.Body, logger)
	}
	return graph
}

// dependenciesOf extracts and canonicalizes the dependencies declared in
// body, resolving shorthand against self's repository. Never returns nil,
// so a ticket with no dependencies encodes as [] rather than null.
func dependenciesOf(self ID, body string, logger *slog.Logger) []ID {
	dependencies := []ID{}
	for _, reference := range ExtractReferences(body, self.Repository()) {
		id, ok := Canonicalize(reference)
		if !ok {
			if logger != nil {
				logger.Debug("dropping unrecognized dependency", "ticket", self, "reference", reference)
			}
			continue
		}
		dependencies = append(dependencies, id)
	}
	return dependencies
}

// TranslateFetched converts a ticket fetched as requested into a partial
// graph keyed by requested. A ticket that reports a different identity
// (moved or transferred) is normalized back onto requested. A ticket
// whose own URL does not canonicalize is translated under requested, so
// the requested ID still becomes a key.
func TranslateFetched(requested ID, ticket Ticket, logger *slog.Logger) Graph {
	actual, ok := Canonicalize(ticket.URL)
	if !ok {
		if logger != nil {
			logger.Warn("fetched ticket has unrecognized url", "ticket", requested, "url", ticket.URL)
		}
		return Graph{requested: dependenciesOf(requested, ticket.Body, logger)}
	}
	if actual != requested && logger != nil {
		logger.Debug("ticket redirected", "requested", requested, "actual", actual)
	}
	return NormalizeRedirect(FromTickets([]Ticket{ticket}, logger), requested, actual)
}
