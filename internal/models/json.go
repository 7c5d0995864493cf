package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON maps onto a jsonb column. Used for transaction metadata and the
// rule details attached to suspicious activity cases.
type JSON map[string]interface{}

// Value serializes the map for the database driver. A nil map stores
// SQL NULL rather than the string "null".
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan decodes a jsonb column into the map. Drivers hand jsonb back as
// either []byte or string depending on the connection mode.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSON", value)
	}
}
