// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

type resolveParams struct {
	connectionParams
	Format      string `flag:"format,f" desc:"output format: json, text, dot, cbor, or diag (CBOR diagnostic notation)" default:"json"`
	Seed        string `flag:"seed" desc:"graph file (JSON, or CBOR with a .cbor extension) whose tickets are already resolved"`
	Concurrency int    `flag:"concurrency" desc:"maximum ticket fetches in flight (overrides resolve.concurrency)"`
	Missing     string `flag:"missing" desc:"what a reference to a nonexistent ticket does: fail or leaf (overrides resolve.missing_tickets)"`
	Digest      bool   `flag:"digest" desc:"print the graph's BLAKE3 digest instead of the graph"`
}

func resolveCommand(env *environment) *cli.Command {
	var params resolveParams

	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve the dependency graph of repositories or organizations",
		Description: `Resolve the complete dependency graph reachable from one or more targets.

A target is "owner/repo" (one repository) or "owner" (every repository
the organization owns). Each target's tickets are listed, their
"Depends on" references followed until every referenced ticket has been
fetched, and the graphs of all targets merged in argument order.

Any fetch failure aborts the whole resolution: no partial graph is
printed.`,
		Usage: "depcrawl resolve [flags] <owner[/repo]>...",
		Examples: []cli.Example{
			{
				Description: "Resolve one repository as JSON",
				Command:     "depcrawl resolve noffle/github-dependency-crawl",
			},
			{
				Description: "Resolve two repositories and print a readable listing",
				Command:     "depcrawl resolve --format text noffle/talks noffle/common-readme",
			},
			{
				Description: "Extend a previous result instead of starting over",
				Command:     "depcrawl resolve --seed graph.json noffle/talks",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("resolve", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one target required (owner or owner/repo)")
			}
			if !params.Digest && !slices.Contains(graphFormats, params.Format) {
				return fmt.Errorf("unknown format %q (expected one of %v)", params.Format, graphFormats)
			}

			// Every target is checked before any request is made.
			targets := make([]depgraph.Target, 0, len(args))
			for _, arg := range args {
				target, err := depgraph.ParseTarget(arg)
				if err != nil {
					return err
				}
				targets = append(targets, target)
			}

			var seed depgraph.Graph
			if params.Seed != "" {
				var err error
				seed, err = depgraph.ReadSeed(params.Seed)
				if err != nil {
					return err
				}
			}

			logger, err := env.logger("resolve", params.LogLevel)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(params.connectionParams)
			if err != nil {
				return err
			}
			if params.Concurrency != 0 {
				cfg.Resolve.Concurrency = params.Concurrency
			}
			if params.Missing != "" {
				cfg.Resolve.MissingTickets = params.Missing
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			source, err := env.source(cfg, logger)
			if err != nil {
				return err
			}
			resolver, err := depgraph.NewResolver(source, depgraph.Options{
				Concurrency:    cfg.Resolve.Concurrency,
				MissingTickets: depgraph.MissingPolicy(cfg.Resolve.MissingTickets),
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			// Each target resolves on top of everything before it, so a
			// ticket already resolved for an earlier target is not
			// fetched again and later listings win.
			graph := seed
			for _, target := range targets {
				graph, err = resolver.ResolveFrom(ctx, target, graph)
				if err != nil {
					return fmt.Errorf("resolving %s: %w", target, err)
				}
			}

			if params.Digest {
				_, err := fmt.Fprintln(env.streams.Out, graph.Digest())
				return err
			}
			return renderGraph(env.streams.Out, graph, params.Format)
		},
	}
}
