// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "net/http"

// authenticator attaches credentials to an outgoing API request.
type authenticator interface {
	authorize(request *http.Request)
}

// anonymousAuth sends no credentials. GitHub allows a small unauthenticated
// request budget, which is enough for small repositories.
type anonymousAuth struct{}

func (anonymousAuth) authorize(*http.Request) {}

// tokenAuth is a static Bearer token authenticator for personal access
// tokens and fine-grained tokens.
type tokenAuth struct {
	header string
}

func newTokenAuth(token string) *tokenAuth {
	return &tokenAuth{header: "Bearer " + token}
}

func (auth *tokenAuth) authorize(request *http.Request) {
	request.Header.Set("Authorization", auth.header)
}

// queryAuth identifies an OAuth application with client_id and
// client_secret query parameters. Set, not added: next-page links returned
// by GitHub already carry the parameters of the request that produced
// them.
type queryAuth struct {
	clientID     string
	clientSecret string
}

func (auth *queryAuth) authorize(request *http.Request) {
	query := request.URL.Query()
	query.Set("client_id", auth.clientID)
	query.Set("client_secret", auth.clientSecret)
	request.URL.RawQuery = query.Encode()
}
