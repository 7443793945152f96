// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/version"
)

func versionCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(_ context.Context, args []string) error {
			_, err := fmt.Fprintf(env.streams.Out, "depcrawl %s\n", version.Full())
			return err
		},
	}
}
