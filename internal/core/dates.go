package core

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Layouts accepted for client-supplied timestamps, tried in order. Offsets
// are optional; a bare date means midnight UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. A trailing "Z" is treated as
// the "+00:00" offset. Values without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// BestEffortTimestamp parses a client-supplied date and falls back to the
// given default when the value is empty or unparseable. Timestamps are
// best-effort: a bad value never fails the enclosing request.
func BestEffortTimestamp(ctx context.Context, s string, fallback time.Time) time.Time {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		slog.DebugContext(ctx, "Unparseable timestamp, using fallback",
			"value", s,
			"fallback", fallback)
		return fallback
	}
	return t
}
