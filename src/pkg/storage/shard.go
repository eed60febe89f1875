package storage

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, most precise first. Legacy records carry
// second-precision timestamps, newer writers emit nanoseconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp as stored in record files.
func ParseTimestamp(iso string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", iso)
}

// FormatTimestamp renders t the way record files store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ShardDate maps a point in time to the "YYYY/MM/DD" shard segment.
// UTC exclusively: a read caller deriving with local time would produce
// permanently unresolvable records.
func ShardDate(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d/%02d/%02d", u.Year(), int(u.Month()), u.Day())
}

// ShardPath maps an entity id and its creation time to the relative
// date-sharded segment "YYYY/MM/DD/<id>". Pure and deterministic: the
// same inputs always yield the same path, across process restarts.
func ShardPath(id int, createdAt time.Time) string {
	return fmt.Sprintf("%s/%d", ShardDate(createdAt), id)
}

// ShardPathISO derives the shard path from the raw createdAt field of a
// record. An unparsable timestamp is a validation failure, caught here
// before any I/O happens.
func ShardPathISO(id int, createdAt string) (string, error) {
	t, err := ParseTimestamp(createdAt)
	if err != nil {
		return "", fmt.Errorf("%w: createdAt: %v", ErrInvalidRecord, err)
	}
	return ShardPath(id, t), nil
}
