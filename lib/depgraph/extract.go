// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"regexp"
	"strings"
)

// DefaultWebRoot is the tracker web root used to expand same-repository
// shorthand ("Depends on #7") into an absolute issue URL. The host never
// reaches the canonical ID, so GitHub Enterprise bodies canonicalize the
// same way.
const DefaultWebRoot = "https://github.com"

var (
	// A dependency line starts with the literal prefix followed by an
	// absolute http(s) URL.
	dependsOnURLLine = regexp.MustCompile(`^Depends on https?://`)

	// Same-repository shorthand: "Depends on #123".
	dependsOnShorthand = regexp.MustCompile(`^Depends on #([0-9]+)\b`)

	// Absolute URLs anywhere in a line. Used to detect ambiguous lines
	// that name more than one URL.
	absoluteURL = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+`)
)

// ExtractReferences returns the raw dependency references declared in a
// ticket body, in the order their lines appear.
//
// ownerRepo is the "owner/repo" the ticket belongs to. When non-empty,
// "Depends on #N" lines expand to DefaultWebRoot/owner/repo/issues/N.
// When empty, shorthand lines are ignored.
//
// A "Depends on http..." line naming more than one URL is ambiguous and
// contributes nothing. An empty body yields nil.
func ExtractReferences(body, ownerRepo string) []string {
	if body == "" {
		return nil
	}

	var references []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if dependsOnURLLine.MatchString(line) {
			urls := absoluteURL.FindAllString(line, -1)
			if len(urls) == 1 {
				references = append(references, trimTrailingPunctuation(urls[0]))
			}
			continue
		}

		if ownerRepo == "" {
			continue
		}
		if match := dependsOnShorthand.FindStringSubmatch(line); match != nil {
			references = append(references, DefaultWebRoot+"/"+ownerRepo+"/issues/"+match[1])
		}
	}
	return references
}

// trimTrailingPunctuation drops sentence punctuation that prose tends to
// put right after a URL ("Depends on https://.../issues/4.").
func trimTrailingPunctuation(rawURL string) string {
	return strings.TrimRight(rawURL, ".,;:!?")
}
