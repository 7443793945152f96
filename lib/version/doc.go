// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which depcrawl build is running: the release
// number, the commit, and whether the tree was dirty. "depcrawl version"
// prints [Full]; the GitHub client's User-Agent carries [Short].
package version
