// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed, read-only Go client for the parts of
// the GitHub REST API that dependency crawling needs: listing an
// organization's repositories, listing a repository's issues, and fetching
// a single issue.
//
// The client works unauthenticated, with a personal access token (sent as
// a Bearer header), or with OAuth application credentials (sent as
// client_id and client_secret query parameters). It follows pagination
// through RFC 5988 Link headers, revalidates repeated GETs with ETags, and
// maps non-2xx responses to [*APIError].
//
// There is no rate-limit backoff: a rate-limited request fails with an
// APIError that [IsRateLimited] recognizes, and retrying is the caller's
// decision.
//
// All requests are made over HTTPS. The client refuses non-HTTPS base URLs.
package github
