// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTarget is returned by [ParseTarget] for anything other than
// "owner" or "owner/repo".
var ErrInvalidTarget = errors.New("invalid repository reference")

// Target is what a resolution starts from: a [RepositoryTarget] or an
// [OrganizationTarget]. The interface is sealed.
type Target interface {
	fmt.Stringer
	isTarget()
}

// RepositoryTarget resolves the tickets of a single repository.
type RepositoryTarget struct {
	Owner string
	Repo  string
}

func (target RepositoryTarget) String() string { return target.Owner + "/" + target.Repo }
func (RepositoryTarget) isTarget()             {}

// OrganizationTarget resolves every repository an organization owns.
type OrganizationTarget struct {
	Org string
}

func (target OrganizationTarget) String() string { return target.Org }
func (OrganizationTarget) isTarget()             {}

// ParseTarget validates a repository reference: "owner/repo" selects a
// single repository, a bare "owner" selects an organization. Anything
// else, including a reference to a specific ticket, is rejected.
func ParseTarget(raw string) (Target, error) {
	parts := strings.Split(raw, "/")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w %q: empty path component", ErrInvalidTarget, raw)
		}
		if strings.ContainsAny(part, " \t#?") {
			return nil, fmt.Errorf("%w %q: unexpected character in %q", ErrInvalidTarget, raw, part)
		}
	}

	switch len(parts) {
	case 1:
		return OrganizationTarget{Org: parts[0]}, nil
	case 2:
		return RepositoryTarget{Owner: parts[0], Repo: parts[1]}, nil
	default:
		return nil, fmt.Errorf("%w %q: expected owner or owner/repo", ErrInvalidTarget, raw)
	}
}
