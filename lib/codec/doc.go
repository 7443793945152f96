// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides depcrawl's standard CBOR encoding configuration.
//
// depcrawl writes graphs in two serialization formats:
//
//   - JSON for people and for tools like jq (the default output).
//   - CBOR for compact, byte-stable output that other programs
//     consume, and for seed files fed back into a later run.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same graph always produces identical bytes, whatever order the map
// was built in.
//
//	data, err := codec.Marshal(graph)
//	err = codec.Unmarshal(data, &graph)
//
// For streams (stdout), use [NewEncoder].
//
// Types serialized by this package carry `json` struct tags only;
// fxamacker/cbor reads them as a fallback when `cbor` tags are absent, so
// one tag controls naming in both formats.
package codec
