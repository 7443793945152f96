// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/depcrawl/lib/depgraph"
	"github.com/bureau-foundation/depcrawl/lib/github"
)

// issuesPerPage is the largest page GitHub serves for issue listings.
const issuesPerPage = 100

// GitHub is a [depgraph.Source] backed by the GitHub REST API.
type GitHub struct {
	client *github.Client
	logger *slog.Logger
}

var _ depgraph.Source = (*GitHub)(nil)

// NewGitHub creates a Source over client. A nil logger selects
// slog.Default().
func NewGitHub(client *github.Client, logger *slog.Logger) *GitHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &GitHub{client: client, logger: logger}
}

// ListOrganizationRepositories lists the organization's repositories and
// keeps those the organization itself owns. The owner comparison ignores
// case, as GitHub logins do.
func (source *GitHub) ListOrganizationRepositories(ctx context.Context, org string) ([]string, error) {
	repositories, err := source.client.ListOrgRepos(ctx, org, github.ListReposOptions{PerPage: issuesPerPage}).Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories of %s: %w", org, err)
	}

	names := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		if !strings.EqualFold(repository.Owner.Login, org) {
			source.logger.Debug("skipping repository owned elsewhere",
				"organization", org,
				"repository", repository.FullName,
			)
			continue
		}
		names = append(names, repository.Owner.Login+"/"+repository.Name)
	}
	return names, nil
}

// ListRepositoryTickets lists every issue of ownerRepo, open and closed,
// in the order GitHub pages them.
func (source *GitHub) ListRepositoryTickets(ctx context.Context, ownerRepo string) ([]depgraph.Ticket, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w %q: expected owner/repo", depgraph.ErrInvalidTarget, ownerRepo)
	}

	iterator := source.client.ListIssues(ctx, owner, repo, github.ListIssuesOptions{
		State:   "all",
		PerPage: issuesPerPage,
	})
	issues, err := iterator.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing issues of %s: %w", ownerRepo, err)
	}
	source.logger.Debug("listed issues", "repository", ownerRepo, "issues", len(issues), "pages", iterator.Pages())

	tickets := make([]depgraph.Ticket, 0, len(issues))
	for index := range issues {
		tickets = append(tickets, ticketFromIssue(&issues[index]))
	}
	return tickets, nil
}

// FetchTicket fetches one issue. A 404 or 410 from GitHub is reported as
// [depgraph.ErrTicketNotFound]; the original API error stays in the chain.
func (source *GitHub) FetchTicket(ctx context.Context, id depgraph.ID) (depgraph.Ticket, error) {
	issue, err := source.client.GetIssue(ctx, id.Owner(), id.Repo(), id.Number())
	if err != nil {
		if github.IsNotFound(err) || github.IsGone(err) {
			return depgraph.Ticket{}, errors.Join(depgraph.ErrTicketNotFound, err)
		}
		return depgraph.Ticket{}, err
	}
	return ticketFromIssue(issue), nil
}

// ticketFromIssue prefers the API URL, which GitHub rewrites to the new
// location when a repository is renamed or an issue transferred.
func ticketFromIssue(issue *github.Issue) depgraph.Ticket {
	url := issue.URL
	if url == "" {
		url = issue.HTMLURL
	}
	return depgraph.Ticket{URL: url, Body: issue.Body}
}
