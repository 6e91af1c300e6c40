package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vector is an embedding stored as a JSON array in a jsonb column.
type Vector []float32

func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal([]float32(v))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (v *Vector) Scan(value any) error {
	var raw []byte
	switch src := value.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		raw = src
	case string:
		raw = []byte(src)
	default:
		return fmt.Errorf("vector: unsupported column type %T", value)
	}

	var out []float32
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	*v = out
	return nil
}
