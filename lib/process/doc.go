// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for depcrawl.
// It centralizes the one legitimate raw-stderr pattern: reporting a fatal
// error from main() when the structured logger may not be initialized,
// then exiting.
package process
