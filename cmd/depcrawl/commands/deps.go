// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

type depsParams struct {
	connectionParams
	JSON bool `flag:"json" desc:"print the dependencies as a JSON array"`
}

func depsCommand(env *environment) *cli.Command {
	var params depsParams

	return &cli.Command{
		Name:    "deps",
		Summary: "Print the direct dependencies of one ticket",
		Description: `Fetch one ticket and print the canonical IDs of the tickets it depends
on, one per line, in the order its body declares them. Dependencies are
not followed.`,
		Usage: "depcrawl deps [flags] <owner/repo/number>",
		Examples: []cli.Example{
			{
				Description: "List what a ticket is blocked on",
				Command:     "depcrawl deps noffle/github-dependency-crawl/4",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("deps", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return errors.New("exactly one ticket required (owner/repo/number)")
			}
			id, err := depgraph.ParseID(args[0])
			if err != nil {
				return err
			}

			logger, err := env.logger("deps", params.LogLevel)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(params.connectionParams)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			source, err := env.source(cfg, logger)
			if err != nil {
				return err
			}

			ticket, err := source.FetchTicket(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching ticket %s: %w", id, err)
			}
			dependencies := depgraph.TranslateFetched(id, ticket, logger)[id]

			if params.JSON {
				return cli.WriteJSON(env.streams.Out, dependencies)
			}
			for _, dependency := range dependencies {
				if _, err := fmt.Fprintln(env.streams.Out, dependency); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
