package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ConditionReport is the inspection summary attached to a vehicle, stored
// as a jsonb column.
type ConditionReport struct {
	OverallGrade   *string  `json:"overall_grade,omitempty"`
	OdometerKM     *int64   `json:"odometer_km,omitempty"`
	Exterior       []string `json:"exterior,omitempty"`
	Interior       []string `json:"interior,omitempty"`
	Mechanical     []string `json:"mechanical,omitempty"`
	MissingParts   []string `json:"missing_parts,omitempty"`
	ReservePrice   *int64   `json:"reserve_price,omitempty"`
	InspectorNotes *string  `json:"inspector_notes,omitempty"`
}

func (c *ConditionReport) Scan(src any) error {
	if src == nil {
		*c = ConditionReport{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("ConditionReport: unsupported Scan type %T", src)
	}
}

func (c ConditionReport) Value() (driver.Value, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("ConditionReport: marshal: %w", err)
	}
	return string(raw), nil
}
