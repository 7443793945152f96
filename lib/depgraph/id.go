// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by [ParseID] for strings that are not of the
// form "owner/repo/number".
var ErrInvalidID = errors.New("invalid ticket identifier")

// ID is a canonical ticket identifier: "owner/repo/number". Two IDs refer
// to the same ticket iff their strings are equal. Comparison is
// case-sensitive; the owner and repository are kept exactly as the tracker
// spelled them in the URL the ID was derived from.
type ID string

// NewID formats an ID from its components. The components are not
// validated; use [ParseID] for user input.
func NewID(owner, repo string, number int) ID {
	return ID(owner + "/" + repo + "/" + strconv.Itoa(number))
}

// ParseID validates a user-supplied "owner/repo/number" string.
func ParseID(raw string) (ID, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w %q: expected owner/repo/number", ErrInvalidID, raw)
	}
	if parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w %q: empty owner or repository", ErrInvalidID, raw)
	}
	if _, ok := parseNumber(parts[2]); !ok {
		return "", fmt.Errorf("%w %q: %q is not a ticket number", ErrInvalidID, raw, parts[2])
	}
	return ID(raw), nil
}

// String returns the identifier in "owner/repo/number" form.
func (id ID) String() string { return string(id) }

// Owner returns the repository owner component.
func (id ID) Owner() string {
	owner, _, _ := id.split()
	return owner
}

// Repo returns the repository name component.
func (id ID) Repo() string {
	_, repo, _ := id.split()
	return repo
}

// Number returns the ticket number, or 0 for a malformed ID.
func (id ID) Number() int {
	_, _, number := id.split()
	value, _ := parseNumber(number)
	return value
}

// Repository returns the owning "owner/repo".
func (id ID) Repository() string {
	index := strings.LastIndex(string(id), "/")
	if index < 0 {
		return ""
	}
	return string(id[:index])
}

func (id ID) split() (owner, repo, number string) {
	parts := strings.SplitN(string(id), "/", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// Canonicalize converts an issue URL to an [ID]. Two URL shapes are
// accepted, on any host:
//
//	https://github.com/OWNER/REPO/issues/NUM         (web link)
//	https://api.github.com/repos/OWNER/REPO/issues/NUM (API link)
//
// Returns false if the string does not parse as an absolute URL or fits
// neither shape. Query strings and fragments are ignored.
func Canonicalize(rawURL string) (ID, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	components := strings.Split(parsed.Path, "/")
	switch {
	case len(components) == 5 && components[0] == "" && components[3] == "issues":
		return canonicalID(components[1], components[2], components[4])
	case len(components) == 6 && components[0] == "" && components[1] == "repos" && components[4] == "issues":
		return canonicalID(components[2], components[3], components[5])
	}
	return "", false
}

func canonicalID(owner, repo, number string) (ID, bool) {
	if owner == "" || repo == "" {
		return "", false
	}
	if _, ok := parseNumber(number); !ok {
		return "", false
	}
	return ID(owner + "/" + repo + "/" + number), true
}

// parseNumber accepts a positive decimal ticket number with no sign or
// leading zeros, so that each ticket has exactly one textual ID.
func parseNumber(value string) (int, bool) {
	if value == "" || value[0] == '0' {
		return 0, false
	}
	for _, character := range value {
		if character < '0' || character > '9' {
			return 0, false
		}
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return number, true
}
