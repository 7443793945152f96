// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/depcrawl/lib/clock"
)

// DefaultConcurrency bounds the number of ticket fetches in flight during
// one resolution round.
const DefaultConcurrency = 8

// MissingPolicy selects what happens when a referenced ticket does not
// exist ([ErrTicketNotFound] from the [Source]).
type MissingPolicy string

const (
	// MissingFail aborts the resolution, like any other fetch failure.
	MissingFail MissingPolicy = "fail"

	// MissingAsLeaf resolves the ticket to an empty dependency list.
	MissingAsLeaf MissingPolicy = "leaf"
)

// ParseMissingPolicy validates a policy name. The empty string selects
// [MissingFail].
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch MissingPolicy(name) {
	case "", MissingFail:
		return MissingFail, nil
	case MissingAsLeaf:
		return MissingAsLeaf, nil
	default:
		return "", fmt.Errorf("unknown missing-ticket policy %q (expected %q or %q)", name, MissingFail, MissingAsLeaf)
	}
}

// Options configures a [Resolver]. The zero value is usable.
type Options struct {
	// Concurrency is the maximum number of FetchTicket calls in flight
	// at once. Defaults to DefaultConcurrency.
	Concurrency int

	// MissingTickets selects the not-found policy. Defaults to
	// MissingFail.
	MissingTickets MissingPolicy

	// Clock times resolution rounds for logging. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Logger receives per-round progress and data-quality anomalies.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Resolver resolves dependency graphs to a fixed point against a
// [Source]. A Resolver holds no per-resolution state; concurrent calls to
// Resolve each own their accumulating graph.
type Resolver struct {
	source      Source
	concurrency int
	missing     MissingPolicy
	clock       clock.Clock
	logger      *slog.Logger
}

// NewResolver creates a Resolver reading ticket data from source.
func NewResolver(source Source, options Options) (*Resolver, error) {
	if source == nil {
		return nil, errors.New("depgraph: resolver requires a source")
	}

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	missing, err := ParseMissingPolicy(string(options.MissingTickets))
	if err != nil {
		return nil, fmt.Errorf("depgraph: %w", err)
	}

	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		source:      source,
		concurrency: concurrency,
		missing:     missing,
		clock:       clk,
		logger:      logger,
	}, nil
}

// ResolveReference parses a repository reference ("owner" or
// "owner/repo") and resolves it. A malformed reference is rejected before
// the source is touched.
func (resolver *Resolver) ResolveReference(ctx context.Context, reference string) (Graph, error) {
	target, err := ParseTarget(reference)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(ctx, target)
}

// Resolve builds the complete dependency graph reachable from target.
// On success every ID that appears as a dependency is also a key. On any
// failure the error is returned and no graph is.
func (resolver *Resolver) Resolve(ctx context.Context, target Target) (Graph, error) {
	return resolver.ResolveFrom(ctx, target, nil)
}

// ResolveFrom is Resolve with a caller-supplied seed graph. Seed keys are
// treated as already resolved and are never fetched; seed dependencies
// that are not keys are resolved like any other. The seed is not
// modified.
func (resolver *Resolver) ResolveFrom(ctx context.Context, target Target, seed Graph) (Graph, error) {
	switch target := target.(type) {
	case RepositoryTarget:
		return resolver.resolveRepository(ctx, target, seed)
	case OrganizationTarget:
		return resolver.resolveOrganization(ctx, target, seed)
	default:
		return nil, fmt.Errorf("%w: unsupported target type %T", ErrInvalidTarget, target)
	}
}

// Complete resolves every unresolved dependency of graph without listing
// any repository. The input graph is not modified.
func (resolver *Resolver) Complete(ctx context.Context, graph Graph) (Graph, error) {
	return resolver.fixedPoint(ctx, Merge(nil, graph), "seed")
}

func (resolver *Resolver) resolveRepository(ctx context.Context, target RepositoryTarget, seed Graph) (Graph, error) {
	tickets, err := resolver.source.ListRepositoryTickets(ctx, target.String())
	if err != nil {
		return nil, fmt.Errorf("listing tickets of %s: %w", target, err)
	}
	resolver.logger.Debug("listed repository tickets", "repository", target.String(), "tickets", len(tickets))

	graph := Merge(seed, FromTickets(tickets, resolver.logger))
	return resolver.fixedPoint(ctx, graph, target.String())
}

func (resolver *Resolver) resolveOrganization(ctx context.Context, target OrganizationTarget, seed Graph) (Graph, error) {
	repositories, err := resolver.source.ListOrganizationRepositories(ctx, target.Org)
	if err != nil {
		return nil, fmt.Errorf("listing repositories of %s: %w", target.Org, err)
	}
	resolver.logger.Info("resolving organization", "organization", target.Org, "repositories", len(repositories))

	merged := Graph{}
	for _, repository := range repositories {
		repositoryTarget, err := ParseTarget(repository)
		if err != nil {
			return nil, fmt.Errorf("organization %s listed %w", target.Org, err)
		}
		single, ok := repositoryTarget.(RepositoryTarget)
		if !ok {
			return nil, fmt.Errorf("%w: organization %s listed %q, expected owner/repo", ErrInvalidTarget, target.Org, repository)
		}

		// Without a caller seed every repository starts fresh. With one,
		// each repository resolves on top of the seed and everything
		// resolved so far, so seed tickets keep their values and no
		// ticket is fetched twice.
		var repositorySeed Graph
		if len(seed) > 0 {
			repositorySeed = Merge(seed, merged)
		}
		graph, err := resolver.resolveRepository(ctx, single, repositorySeed)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, graph)
	}

	if len(seed) == 0 {
		return merged, nil
	}
	// A seed can name tickets none of the repositories reference, and an
	// organization with no repositories never resolved the seed at all.
	return resolver.fixedPoint(ctx, Merge(seed, merged), target.Org)
}

// fixedPoint fetches unresolved dependencies round by round until there
// are none. Each round takes the current graph and produces the next one;
// the fetches within a round run concurrently, the merge does not.
func (resolver *Resolver) fixedPoint(ctx context.Context, graph Graph, scope string) (Graph, error) {
	start := resolver.clock.Now()
	fetched := 0

	for round := 1; ; round++ {
		unresolved := graph.Unresolved()
		if len(unresolved) == 0 {
			resolver.logger.Info("resolution complete",
				"scope", scope,
				"rounds", round-1,
				"fetched", fetched,
				"tickets", len(graph),
				"edges", graph.Edges(),
				"duration", clock.Since(resolver.clock, start),
			)
			return graph, nil
		}

		resolver.logger.Debug("resolution round",
			"scope", scope,
			"round", round,
			"unresolved", len(unresolved),
			"tickets", len(graph),
		)

		discovered, err := resolver.fetchRound(ctx, unresolved)
		if err != nil {
			return nil, err
		}
		fetched += len(unresolved)
		graph = Merge(graph, discovered)
	}
}

// fetchRound fetches every ID in unresolved concurrently and returns the
// union of their normalized partial graphs. Each goroutine writes only its
// own slot; the union is built after the barrier. The first failure
// cancels the rest of the round.
func (resolver *Resolver) fetchRound(ctx context.Context, unresolved []ID) (Graph, error) {
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(resolver.concurrency)

	partials := make([]Graph, len(unresolved))
	for index, id := range unresolved {
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			partial, err := resolver.fetchOne(groupContext, id)
			if err != nil {
				return err
			}
			partials[index] = partial
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	discovered := make(Graph, len(unresolved))
	for _, partial := range partials {
		for id, dependencies := range partial {
			discovered[id] = dependencies
		}
	}
	return discovered, nil
}

// fetchOne fetches a single ticket and returns its partial graph keyed by
// requested, whatever identity the ticket reports for itself.
func (resolver *Resolver) fetchOne(ctx context.Context, requested ID) (Graph, error) {
	ticket, err := resolver.source.FetchTicket(ctx, requested)
	if err != nil {
		if resolver.missing == MissingAsLeaf && errors.Is(err, ErrTicketNotFound) {
			resolver.logger.Warn("referenced ticket does not exist, treating as leaf", "ticket", requested)
			return Graph{requested: {}}, nil
		}
		return nil, fmt.Errorf("fetching ticket %s: %w", requested, err)
	}

	return TranslateFetched(requested, ticket, resolver.logger), nil
}
