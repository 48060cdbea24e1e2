package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"greenloop/internal/docgen"
)

// LocalizedText stores one string per language code as JSONB.
type LocalizedText map[string]string

// Value implements the driver.Valuer interface
func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface
func (t *LocalizedText) Scan(value interface{}) error {
	if value == nil {
		*t = make(map[string]string)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported type for LocalizedText")
	}
}

// FieldList stores an ordered template field list as JSONB.
type FieldList []docgen.Field

// Value implements the driver.Valuer interface
func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return json.Marshal(f)
}

// Scan implements the sql.Scanner interface
func (f *FieldList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return errors.New("unsupported type for FieldList")
	}
}
