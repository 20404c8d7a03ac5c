package crm

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FollowUps is a slice of FollowUp that implements GORM Scanner/Valuer for JSONB storage
type FollowUps []FollowUp

// Value implements driver.Valuer for JSONB storage
func (f FollowUps) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB reads
func (f *FollowUps) Scan(value interface{}) error {
	return scanJSON(value, f, "FollowUps")
}

// BookingItems is a slice of BookingItem that implements GORM Scanner/Valuer for JSONB storage
type BookingItems []BookingItem

// Value implements driver.Valuer for JSONB storage
func (b BookingItems) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB reads
func (b *BookingItems) Scan(value interface{}) error {
	return scanJSON(value, b, "BookingItems")
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan " + name + ": unsupported type")
	}

	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
