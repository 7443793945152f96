// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for depcrawl.
//
// Configuration is loaded from a single file specified by either the
// DEPCRAWL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic file
// search. A command run with neither uses [Default], which crawls the
// public GitHub API unauthenticated.
//
// Variable expansion is performed on the github section after loading:
// ${VAR} and ${VAR:-default} patterns are replaced from the environment,
// so credentials can stay out of the file:
//
//	github:
//	  token: ${GITHUB_TOKEN}
//
// Key exports:
//
//   - [Config] -- master struct with GitHub, Resolve, Cache sections
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other depcrawl packages.
package config
