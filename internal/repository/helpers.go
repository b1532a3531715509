package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// All timestamps are stored as UTC RFC3339 text.
const stampLayout = time.RFC3339

// optionalTime reads a nullable timestamp column. Unparseable text reads as unset.
func optionalTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(stampLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func optionalTimeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(stampLayout)
}

// optionalTextArg stores "" as NULL.
func optionalTextArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func stamp() string {
	return time.Now().UTC().Format(stampLayout)
}

func parseStamps(created, updated string) (c, u time.Time, err error) {
	if c, err = time.Parse(stampLayout, created); err != nil {
		return c, u, fmt.Errorf("parsing created_at: %w", err)
	}
	if u, err = time.Parse(stampLayout, updated); err != nil {
		return c, u, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, u, nil
}

// encodeStrings stores a string list in a TEXT column as a JSON array.
func encodeStrings(vals []string) (string, error) {
	if len(vals) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeStrings reverses encodeStrings. Empty input decodes to nil.
func decodeStrings(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
