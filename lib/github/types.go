// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "time"

// User is a GitHub user or organization reference. Appears as issue
// authors and repository owners.
type User struct {
	Login   string `json:"login"`
	ID      int64  `json:"id"`
	Type    string `json:"type"` // "User" or "Organization"
	HTMLURL string `json:"html_url"`
}

// Issue is a GitHub issue. The issues endpoints also return pull
// requests; those carry a non-nil PullRequest.
type Issue struct {
	Number      int               `json:"number"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	State       string            `json:"state"` // "open" or "closed"
	URL         string            `json:"url"`   // API URL, /repos/{owner}/{repo}/issues/{n}
	HTMLURL     string            `json:"html_url"`
	User        User              `json:"user"`
	PullRequest *IssuePullRequest `json:"pull_request,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	ClosedAt    *time.Time        `json:"closed_at"`
}

// IssuePullRequest marks an issue that is a pull request.
type IssuePullRequest struct {
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
}

// Repository is a GitHub repository as returned by the repository list
// endpoints.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"` // "owner/name"
	Owner    User   `json:"owner"`
	Private  bool   `json:"private"`
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
	HTMLURL  string `json:"html_url"`
}
