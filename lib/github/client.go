// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bureau-foundation/depcrawl/lib/netutil"
	"github.com/bureau-foundation/depcrawl/lib/version"
)

// githubAPIVersion is the GitHub REST API version header. Pinning the
// version ensures consistent behavior as GitHub evolves the API.
const githubAPIVersion = "2022-11-28"

// defaultBaseURL is the base URL for the public GitHub API.
const defaultBaseURL = "https://api.github.com"

// DefaultUserAgent identifies this client to GitHub. GitHub rejects API
// requests that carry no User-Agent.
var DefaultUserAgent = "depcrawl/" + version.Short() + " (+https://github.com/bureau-foundation/depcrawl)"

// Config holds configuration for creating a GitHub API Client.
//
// At most one authentication mode may be configured:
//   - Token authentication: set Token
//   - OAuth application: set ClientID and ClientSecret
//
// With neither, requests are unauthenticated.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// Token is a personal access token or fine-grained token, sent as
	// a Bearer Authorization header.
	Token string

	// ClientID and ClientSecret identify an OAuth application. They are
	// sent as query parameters on every request. Both or neither.
	ClientID     string
	ClientSecret string

	// UserAgent is sent on every request. Defaults to DefaultUserAgent.
	UserAgent string

	// ETagCacheSize is the number of URLs whose responses are kept for
	// conditional requests. Zero selects a default; negative disables
	// conditional requests.
	ETagCacheSize int

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed, read-only GitHub REST API client with optional
// authentication, pagination, ETag caching, and structured error handling.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	auth       authenticator
	etagCache  *etagCache
	logger     *slog.Logger
}

// NewClient creates a GitHub API client from the given configuration.
// Returns an error if the configuration is invalid (conflicting or partial
// credentials, non-HTTPS URL).
func NewClient(config Config) (*Client, error) {
	// Resolve defaults.
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	// Enforce HTTPS.
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("github: API client requires HTTPS (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Validate auth configuration: at most one mode.
	hasToken := config.Token != ""
	hasClient := config.ClientID != "" || config.ClientSecret != ""

	if hasToken && hasClient {
		return nil, fmt.Errorf("github: cannot configure both token auth and OAuth client credentials")
	}

	var auth authenticator = anonymousAuth{}
	switch {
	case hasToken:
		auth = newTokenAuth(config.Token)
	case hasClient:
		if config.ClientID == "" || config.ClientSecret == "" {
			return nil, fmt.Errorf("github: ClientID and ClientSecret must be set together")
		}
		auth = &queryAuth{clientID: config.ClientID, clientSecret: config.ClientSecret}
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		auth:       auth,
		etagCache:  newETagCache(config.ETagCacheSize),
		logger:     logger,
	}, nil
}

// fetch executes an authenticated GET against an absolute URL. Handles
// authentication, ETag revalidation, and error parsing. Both single-object
// requests and PageIterator pages go through here.
//
// Returns the response body and headers. On non-2xx responses, returns
// an *APIError.
func (client *Client) fetch(ctx context.Context, url string) ([]byte, http.Header, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("github: creating request: %w", err)
	}

	client.auth.authorize(request)

	// Standard GitHub headers.
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	request.Header.Set("User-Agent", client.userAgent)

	// ETag for conditional requests.
	if etag := client.etagCache.get(url); etag != "" {
		request.Header.Set("If-None-Match", etag)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, nil, fmt.Errorf("github: GET %s: %w", url, err)
	}
	defer response.Body.Close()

	// 304 Not Modified: answer from the cached body.
	if response.StatusCode == http.StatusNotModified {
		if cached := client.etagCache.body(url); cached != nil {
			client.logger.Debug("github response not modified", "url", url)
			return cached, response.Header, nil
		}
		// Evicted between the request and the response. Surface it as
		// an error instead of decoding an empty body.
		return nil, nil, &APIError{StatusCode: response.StatusCode, Message: "not modified, but no cached response"}
	}

	// Read response body.
	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("github: reading response body: %w", err)
	}

	// Handle non-2xx responses.
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, nil, parseAPIErrorFromBody(response.StatusCode, body)
	}

	if etag := response.Header.Get("ETag"); etag != "" {
		client.etagCache.put(url, etag, body)
	}

	return body, response.Header, nil
}

// get is a convenience method for GET requests that return a single JSON
// object. The path is relative to the base URL (e.g.,
// "/repos/owner/repo/issues/1"). Decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, _, err := client.fetch(ctx, client.baseURL+path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("github: decoding response from %s: %w", path, err)
	}
	return nil
}

// listOptions is implemented by option structs for paginated list
// endpoints.
type listOptions interface {
	queryParams() string
}

// list creates a PageIterator for a paginated GET endpoint.
func list[T any](client *Client, path string) *PageIterator[T] {
	return &PageIterator[T]{
		client:  client,
		nextURL: client.baseURL + path,
	}
}

// buildListPath constructs a path with query parameters from list options.
// The query string is appended only if there are parameters.
func buildListPath(basePath string, options listOptions) string {
	query := options.queryParams()
	if query == "" {
		return basePath
	}
	return basePath + "?" + query
}

// parseAPIErrorFromBody parses a GitHub API error from a status code
// and response body.
func parseAPIErrorFromBody(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []ValidationError `json:"errors"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		apiError.Message = wireError.Message
		apiError.DocumentationURL = wireError.DocumentationURL
		apiError.Errors = wireError.Errors
	} else {
		apiError.Message = string(body)
	}

	return apiError
}
