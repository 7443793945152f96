// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a non-2xx response from the GitHub REST API.
// GitHub returns structured JSON error bodies with a message, optional
// documentation URL, and optional field-level validation errors.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description from GitHub, or the raw
	// body when the body was not GitHub's JSON error shape.
	Message string

	// DocumentationURL points to the relevant API documentation.
	DocumentationURL string

	// Errors contains field-level validation failures. Present only
	// on 422 Unprocessable Entity responses.
	Errors []ValidationError
}

// ValidationError describes a specific validation failure on a resource
// field. Returned by GitHub on 422 responses.
type ValidationError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (err *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "github: HTTP %d: %s", err.StatusCode, err.Message)
	for _, validationError := range err.Errors {
		detail := validationError.Message
		if detail == "" {
			detail = validationError.Code
		}
		fmt.Fprintf(&builder, "; %s.%s: %s", validationError.Resource, validationError.Field, detail)
	}
	return builder.String()
}

// IsNotFound reports whether err is a GitHub API 404 Not Found response.
// GitHub also answers 404 for private resources the caller cannot see.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsGone reports whether err is a 410 Gone response, which GitHub returns
// for deleted issues.
func IsGone(err error) bool {
	return hasStatus(err, http.StatusGone)
}

// IsUnauthorized reports whether err is a 401 response: bad or expired
// credentials.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsRateLimited reports whether err is a GitHub API rate limit response.
// GitHub returns 403 when the primary rate limit is exceeded and 429
// for secondary (abuse) rate limits.
func IsRateLimited(err error) bool {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return false
	}
	return apiError.StatusCode == http.StatusTooManyRequests ||
		(apiError.StatusCode == http.StatusForbidden && isRateLimitMessage(apiError.Message))
}

func hasStatus(err error, status int) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == status
}

// isRateLimitMessage checks whether a 403 error message indicates a
// rate limit rather than a permission issue. GitHub's rate limit 403
// responses contain recognizable phrases.
func isRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "abuse detection")
}
