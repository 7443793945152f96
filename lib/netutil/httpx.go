// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reading.
//
// Every JSON response body from the tracker API is read through
// ReadResponse, which stops at MaxResponseSize. A single
// page of issues is a few hundred kilobytes at most; the bound only
// matters for a misbehaving server.
package netutil

import (
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize is the bound on API response body reads: 64 MB.
const MaxResponseSize int64 = 64 << 20

// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// ReadResponse reads an API response body up to MaxResponseSize bytes.
// A body longer than the limit is an error rather than silently
// truncated JSON.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, MaxResponseSize)
	}
	return data, nil
}
