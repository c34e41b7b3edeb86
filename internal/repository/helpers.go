package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/mosaic/internal/domain"
)

const dateLayout = "2006-01-02"

// scanner is the Scan surface shared by *sql.Row and *sql.Rows, so each
// entity needs a single scan function for both lookup and list paths.
type scanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

// entityTypeToValue converts a polymorphic type tag to its stored TEXT form.
func entityTypeToValue(t *domain.EntityType) any {
	if t == nil {
		return nil
	}
	return string(*t)
}

// entityTypeFromNullable converts a stored TEXT tag back to a *domain.EntityType.
func entityTypeFromNullable(s sql.NullString) *domain.EntityType {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := domain.EntityType(s.String)
	return &t
}

// tagsToJSON serializes a tag set for the tags TEXT column. A nil or
// empty set stores as '[]' so json_each always has a document to walk.
func tagsToJSON(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshaling tags: %w", err)
	}
	return string(b), nil
}

// tagsFromJSON deserializes the tags TEXT column. The empty set comes
// back as an empty non-nil slice.
func tagsFromJSON(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}
	return tags, nil
}

// mapToJSON serializes a free-form JSON object column. Nil maps store as NULL.
func mapToJSON(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling json object: %w", err)
	}
	return string(b), nil
}

// mapFromJSON deserializes a free-form JSON object column. NULL comes back nil.
func mapFromJSON(s sql.NullString) (map[string]any, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s.String), &m); err != nil {
		return nil, fmt.Errorf("unmarshaling json object: %w", err)
	}
	return m, nil
}

// recurrenceToJSON serializes a recurrence config. Nil stores as NULL.
func recurrenceToJSON(c *domain.RecurrenceConfig) (any, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling recurrence config: %w", err)
	}
	return string(b), nil
}

// recurrenceFromJSON deserializes a recurrence config column.
func recurrenceFromJSON(s sql.NullString) (*domain.RecurrenceConfig, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var c domain.RecurrenceConfig
	if err := json.Unmarshal([]byte(s.String), &c); err != nil {
		return nil, fmt.Errorf("unmarshaling recurrence config: %w", err)
	}
	return &c, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current instant at the stored precision: UTC,
// whole seconds, so TEXT ordering matches time ordering.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// lastInsertID reads the autoincrement id assigned by an INSERT.
func lastInsertID(res sql.Result, what string) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading %s id: %w", what, err)
	}
	return id, nil
}
