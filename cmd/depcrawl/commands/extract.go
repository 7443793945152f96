// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
)

type extractParams struct {
	Repo     string `flag:"repo,r" desc:"owner/repo the body belongs to; enables \"Depends on #N\" shorthand"`
	Raw      bool   `flag:"raw" desc:"print the references as written instead of canonical IDs"`
	LogLevel string `flag:"log-level" desc:"log level: debug, info, warn, or error" default:"warn"`
}

func extractCommand(env *environment) *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Print the dependencies a ticket body declares",
		Description: `Read a ticket body on stdin and print the dependencies it declares, one
per line, without contacting GitHub.

A dependency is a line starting with "Depends on " followed by exactly
one issue URL. With --repo, "Depends on #N" lines also count. References
that do not name an issue are skipped.

Exits 1 when the body declares no dependencies.`,
		Usage: "depcrawl extract [flags] < body",
		Examples: []cli.Example{
			{
				Description: "Check a draft issue body",
				Command:     "depcrawl extract --repo noffle/talks < draft.md",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("extract", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected argument %q (the body is read from stdin)", args[0])
			}
			if params.Repo != "" {
				target, err := depgraph.ParseTarget(params.Repo)
				if err != nil {
					return err
				}
				if _, ok := target.(depgraph.RepositoryTarget); !ok {
					return fmt.Errorf("%w: --repo must be owner/repo, got %q", depgraph.ErrInvalidTarget, params.Repo)
				}
			}
			if env.streams.In == nil {
				return errors.New("no input stream")
			}

			logger, err := env.logger("extract", params.LogLevel)
			if err != nil {
				return err
			}

			body, err := io.ReadAll(env.streams.In)
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}

			var lines []string
			for _, reference := range depgraph.ExtractReferences(string(body), params.Repo) {
				if params.Raw {
					lines = append(lines, reference)
					continue
				}
				id, ok := depgraph.Canonicalize(reference)
				if !ok {
					logger.Warn("skipping reference that does not name an issue", "reference", reference)
					continue
				}
				lines = append(lines, string(id))
			}

			if len(lines) == 0 {
				return &cli.ExitError{Code: 1}
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(env.streams.Out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
