// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans up generated Markdown. Markdown is idempotent:
// normalising already-normalised text returns it unchanged.
package normalize

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x{7F}-\x{9F}]`)
	headerSpace  = regexp.MustCompile(`(?m)^(#{1,6})(?:[ \t]+|([^#\s]))`)
	bulletMarker = regexp.MustCompile(`(?m)^(?:•[ \t]*|-[ \t]+)`)
	numbered     = regexp.MustCompile(`(?m)^(\d+)\.[ \t]*([^\d \t\n])`)
	imageRef     = regexp.MustCompile(`!\[(.*?)\]\s*\((.*?)\)`)
	blankRuns    = regexp.MustCompile(`\n\s*\n`)
)

// separator is a horizontal rule as emitted between pages.
const separator = "---"

// Markdown applies every rule in order and trims the result.
func Markdown(s string) string {
	s = strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
	s = headerSpace.ReplaceAllString(s, "${1} ${2}")
	s = bulletMarker.ReplaceAllString(s, "* ")
	s = numbered.ReplaceAllString(s, "${1}. ${2}")
	s = imageRef.ReplaceAllString(s, "![$1]($2)")
	s = dedupeSeparators(s)
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// dedupeSeparators drops a separator line whose previous non-blank line is
// also a separator, together with the blank lines between them.
func dedupeSeparators(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	lastSep := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			out = append(out, line)
		case trimmed == separator && lastSep:
			for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, line)
			lastSep = trimmed == separator
		}
	}
	return strings.Join(out, "\n")
}
