package enums

import "fmt"

// PricingUnit maps to the pricing_unit enum in Postgres.
type PricingUnit string

const (
	PricingUnitPerDay   PricingUnit = "per_day"
	PricingUnitPerEvent PricingUnit = "per_event"
	PricingUnitPerPlate PricingUnit = "per_plate"
	PricingUnitPerHour  PricingUnit = "per_hour"
)

var validPricingUnits = []PricingUnit{
	PricingUnitPerDay,
	PricingUnitPerEvent,
	PricingUnitPerPlate,
	PricingUnitPerHour,
}

// String implements fmt.Stringer.
func (p PricingUnit) String() string {
	return string(p)
}

// IsValid reports whether the value matches a canonical pricing unit.
func (p PricingUnit) IsValid() bool {
	for _, candidate := range validPricingUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingUnit converts raw input into PricingUnit.
func ParsePricingUnit(value string) (PricingUnit, error) {
	for _, candidate := range validPricingUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing unit %q", value)
}
