package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered list of strings persisted as a JSON array. It is
// used instead of a native text[] so the same column works on SQLite.
type StringList []string

// Value marshals the list into a JSON array.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes a JSON array.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	raw, err := jsonBytes("string list", value)
	if err != nil {
		return err
	}

	var result []string
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}

// Normalize trims entries, drops blanks and removes case-insensitive
// duplicates while keeping first-seen order.
func (l StringList) Normalize() StringList {
	out := make(StringList, 0, len(l))
	seen := make(map[string]struct{}, len(l))
	for _, v := range l {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func jsonBytes(kind string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported scan type %T", kind, value)
	}
}
