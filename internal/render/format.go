// Package render transforms raw, untrusted flight offers into fully-defaulted
// display cards. All missing-field handling lives in the decode step so that
// channel-specific formatting (Flex messages, JSON) never has to guard
// against malformed upstream data.
package render

import (
	"strings"
	"time"
)

// Placeholder substitutes any missing segment or pricing field.
const Placeholder = "N/A"

// timestampLayouts are the accepted upstream timestamp formats, tried in
// order. Amadeus sends local times without a zone offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatTimestamp renders an upstream ISO-8601 timestamp as
// "2006-01-02 15:04". An empty value yields the placeholder; an unparseable
// value is passed through raw so the user still sees something.
func FormatTimestamp(raw string) string {
	if raw == "" {
		return Placeholder
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return raw
}

// FormatISODuration renders an ISO-8601 duration like "PT3H10M" as
// "3小時10分鐘" by stripping the prefix and replacing the unit letters.
func FormatISODuration(raw string) string {
	if raw == "" {
		return Placeholder
	}
	s := strings.TrimPrefix(raw, "PT")
	s = strings.ReplaceAll(s, "H", "小時")
	s = strings.ReplaceAll(s, "M", "分鐘")
	return s
}

// capitalize lower-cases a word and upper-cases its first letter, turning
// the provider's "ECONOMY" into "Economy".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
