// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListIssuesOptions controls filtering and pagination for ListIssues.
type ListIssuesOptions struct {
	State   string // "open", "closed", "all" (default: "open")
	Sort    string // "created", "updated", "comments" (default: "created")
	PerPage int    // results per page (max 100, default 30)
}

func (options ListIssuesOptions) queryParams() string {
	query := url.Values{}
	if options.State != "" {
		query.Set("state", options.State)
	}
	if options.Sort != "" {
		query.Set("sort", options.Sort)
	}
	if options.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(options.PerPage))
	}
	return query.Encode()
}

// GetIssue retrieves a single issue by number. When the repository has
// been renamed or transferred, GitHub follows the redirect and the
// returned issue's URL names the new location.
func (client *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", url.PathEscape(owner), url.PathEscape(repo), number)
	if err := client.get(ctx, path, &issue); err != nil {
		return nil, fmt.Errorf("getting issue %s/%s#%d: %w", owner, repo, number, err)
	}
	return &issue, nil
}

// ListIssues returns a paginated iterator over issues in a repository.
// Pull requests are included, as the endpoint returns them.
func (client *Client) ListIssues(ctx context.Context, owner, repo string, options ListIssuesOptions) *PageIterator[Issue] {
	basePath := fmt.Sprintf("/repos/%s/%s/issues", url.PathEscape(owner), url.PathEscape(repo))
	return list[Issue](client, buildListPath(basePath, options))
}
