package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/hcprofile"
)

// timeLayout keeps sub-second precision so updates within one second
// still order correctly.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp, naming the column on failure.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatTime formats t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// encodeProfile returns the JSON column value for p. A nil profile is NULL.
func encodeProfile(p *hcprofile.Profile) (sql.NullString, error) {
	if p == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode profile: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeProfile is the inverse of encodeProfile.
func decodeProfile(v sql.NullString) (*hcprofile.Profile, error) {
	if !v.Valid {
		return nil, nil
	}
	var p hcprofile.Profile
	if err := json.Unmarshal([]byte(v.String), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}
