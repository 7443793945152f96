// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own process exit
// code (the CLI's ExitError).
type exitCoder interface {
	ExitCode() int
}

// Fatal reports err and exits. Errors carrying an exit code exit with it;
// everything else writes "error: err" to stderr and exits 1.
func Fatal(err error) {
	os.Exit(report(os.Stderr, err))
}

// report writes err to w and returns the exit code Fatal uses. An error
// that carries an exit code has already told the user what went wrong,
// so only its code is used.
func report(w io.Writer, err error) int {
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
