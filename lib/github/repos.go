// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListReposOptions controls filtering and pagination for ListOrgRepos.
type ListReposOptions struct {
	Type    string // "all", "public", "private", "forks", "sources", "member" (default: "all")
	PerPage int    // results per page (max 100, default 30)
}

func (options ListReposOptions) queryParams() string {
	query := url.Values{}
	if options.Type != "" {
		query.Set("type", options.Type)
	}
	if options.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(options.PerPage))
	}
	return query.Encode()
}

// ListOrgRepos returns a paginated iterator over an organization's
// repositories.
func (client *Client) ListOrgRepos(ctx context.Context, org string, options ListReposOptions) *PageIterator[Repository] {
	basePath := fmt.Sprintf("/orgs/%s/repos", url.PathEscape(org))
	return list[Repository](client, buildListPath(basePath, options))
}
