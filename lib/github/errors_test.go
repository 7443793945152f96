// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"testing"
)

// asAPIError is errors.As with a bool result, for table assertions.
func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name: "simple message",
			err: &APIError{
				StatusCode: 404,
				Message:    "Not Found",
			},
			expected: "github: HTTP 404: Not Found",
		},
		{
			name: "validation error with message",
			err: &APIError{
				StatusCode: 422,
				Message:    "Validation Failed",
				Errors: []ValidationError{
					{Resource: "Search", Field: "q", Message: "is invalid"},
				},
			},
			expected: "github: HTTP 422: Validation Failed; Search.q: is invalid",
		},
		{
			name: "validation errors falling back to codes",
			err: &APIError{
				StatusCode: 422,
				Message:    "Validation Failed",
				Errors: []ValidationError{
					{Resource: "Issue", Field: "state", Code: "invalid"},
					{Resource: "Issue", Field: "sort", Message: "is unknown"},
				},
			},
			expected: "github: HTTP 422: Validation Failed; Issue.state: invalid; Issue.sort: is unknown",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.err.Error()
			if got != test.expected {
				t.Errorf("got %q, want %q", got, test.expected)
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		name      string
		predicate func(error) bool
		matches   int
	}{
		{"IsNotFound", IsNotFound, 404},
		{"IsGone", IsGone, 410},
		{"IsUnauthorized", IsUnauthorized, 401},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if !test.predicate(&APIError{StatusCode: test.matches}) {
				t.Errorf("%s(%d) = false, want true", test.name, test.matches)
			}
			if test.predicate(&APIError{StatusCode: 500}) {
				t.Errorf("%s(500) = true, want false", test.name)
			}
			if test.predicate(fmt.Errorf("network error")) {
				t.Errorf("%s(non-APIError) = true, want false", test.name)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "429 response",
			err:      &APIError{StatusCode: 429, Message: "Too Many Requests"},
			expected: true,
		},
		{
			name:     "403 rate limit exceeded",
			err:      &APIError{StatusCode: 403, Message: "API rate limit exceeded for 203.0.113.7."},
			expected: true,
		},
		{
			name:     "403 abuse detection",
			err:      &APIError{StatusCode: 403, Message: "You have triggered an abuse detection mechanism"},
			expected: true,
		},
		{
			name:     "403 permission denied",
			err:      &APIError{StatusCode: 403, Message: "Resource not accessible by integration"},
			expected: false,
		},
		{
			name:     "non-APIError",
			err:      fmt.Errorf("network error"),
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsRateLimited(test.err); got != test.expected {
				t.Errorf("IsRateLimited = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestAPIError_WrappedInFmt(t *testing.T) {
	// Classification sees through fmt.Errorf wrapping.
	original := &APIError{StatusCode: 404, Message: "Not Found"}
	wrapped := fmt.Errorf("getting issue: %w", original)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through fmt.Errorf wrapping")
	}
}
