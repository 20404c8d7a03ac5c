package quote

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// HotelSelections implements GORM Scanner/Valuer for JSONB storage
type HotelSelections []HotelSelection

func (s HotelSelections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *HotelSelections) Scan(value interface{}) error {
	return scanJSON(value, s, "HotelSelections")
}

// TransportSelections implements GORM Scanner/Valuer for JSONB storage
type TransportSelections []TransportSelection

func (s TransportSelections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *TransportSelections) Scan(value interface{}) error {
	return scanJSON(value, s, "TransportSelections")
}

// DayPlans implements GORM Scanner/Valuer for JSONB storage
type DayPlans []DayPlan

func (p DayPlans) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

func (p *DayPlans) Scan(value interface{}) error {
	return scanJSON(value, p, "DayPlans")
}

// ExtraServices implements GORM Scanner/Valuer for JSONB storage
type ExtraServices []ExtraService

func (s ExtraServices) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *ExtraServices) Scan(value interface{}) error {
	return scanJSON(value, s, "ExtraServices")
}

// StringList implements GORM Scanner/Valuer for JSONB storage of string arrays
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l, "StringList")
}

// Value implements driver.Valuer for JSONB storage of the cost breakdown
func (c CostBreakdown) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB reads of the cost breakdown
func (c *CostBreakdown) Scan(value interface{}) error {
	return scanJSON(value, c, "CostBreakdown")
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
