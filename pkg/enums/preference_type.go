package enums

import "fmt"

// PreferenceType maps to the preference_type enum in Postgres.
type PreferenceType string

const (
	PreferenceTypeEventType PreferenceType = "event_type"
	PreferenceTypeAmenity   PreferenceType = "amenity"
	PreferenceTypeCuisine   PreferenceType = "cuisine"
	PreferenceTypeStyle     PreferenceType = "style"
)

var validPreferenceTypes = []PreferenceType{
	PreferenceTypeEventType,
	PreferenceTypeAmenity,
	PreferenceTypeCuisine,
	PreferenceTypeStyle,
}

// String implements fmt.Stringer.
func (p PreferenceType) String() string {
	return string(p)
}

// IsValid reports whether the value matches a canonical preference type.
func (p PreferenceType) IsValid() bool {
	for _, candidate := range validPreferenceTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePreferenceType converts raw input into PreferenceType.
func ParsePreferenceType(value string) (PreferenceType, error) {
	for _, candidate := range validPreferenceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid preference type %q", value)
}
