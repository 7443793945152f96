// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the depcrawl command tree.
package commands

import (
	"net/http"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
)

// Root builds the complete depcrawl command tree over the given streams.
func Root(streams cli.IO) *cli.Command {
	return newRoot(&environment{streams: streams})
}

// newRoot builds the tree over env. Tests supply an environment whose
// HTTP client trusts a local TLS server.
func newRoot(env *environment) *cli.Command {
	if env.httpClient == nil {
		env.httpClient = http.DefaultClient
	}
	return &cli.Command{
		Name: "depcrawl",
		Description: `depcrawl: ticket dependency graph crawler.

Reads "Depends on <url>" lines from GitHub issue bodies and follows them,
across repositories and organizations, until every referenced ticket has
been fetched. The result maps each "owner/repo/number" to the tickets it
depends on.`,
		HelpOutput: env.streams.Err,
		Subcommands: []*cli.Command{
			resolveCommand(env),
			depsCommand(env),
			extractCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Resolve the dependency graph of one repository",
				Command:     "depcrawl resolve noffle/github-dependency-crawl",
			},
			{
				Description: "Resolve a whole organization and render it with Graphviz",
				Command:     "depcrawl resolve --format dot noffle | dot -Tsvg > deps.svg",
			},
			{
				Description: "Check a ticket body before posting it",
				Command:     "depcrawl extract --repo noffle/talks < body.md",
			},
		},
	}
}
