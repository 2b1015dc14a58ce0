package types

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONObject holds a free-form JSON object persisted as JSONB (TEXT on SQLite).
type JSONObject map[string]any

// Value marshals the object.
func (o JSONObject) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(map[string]any(o))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes a JSON object.
func (o *JSONObject) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}

	raw, err := jsonBytes("json object", value)
	if err != nil {
		return err
	}

	result := make(JSONObject)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*o = result
	return nil
}

// FromStruct converts a typed details struct into a JSONObject.
func FromStruct(v any) (JSONObject, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(JSONObject)
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode unmarshals the object into dst.
func (o JSONObject) Decode(dst any) error {
	buf, err := json.Marshal(map[string]any(o))
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
