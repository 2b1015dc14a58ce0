package enums

import "fmt"

// ListingCategory maps to the listing_category enum in Postgres.
type ListingCategory string

const (
	ListingCategoryVenue       ListingCategory = "venue"
	ListingCategoryFarmhouse   ListingCategory = "farmhouse"
	ListingCategoryCatering    ListingCategory = "catering"
	ListingCategoryPhotography ListingCategory = "photography"
)

var validListingCategorys = []ListingCategory{
	ListingCategoryVenue,
	ListingCategoryFarmhouse,
	ListingCategoryCatering,
	ListingCategoryPhotography,
}

// String implements fmt.Stringer.
func (l ListingCategory) String() string {
	return string(l)
}

// IsValid reports whether the value matches a canonical listing category.
func (l ListingCategory) IsValid() bool {
	for _, candidate := range validListingCategorys {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingCategory converts raw input into ListingCategory.
func ParseListingCategory(value string) (ListingCategory, error) {
	for _, candidate := range validListingCategorys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing category %q", value)
}

// DefaultPricingUnit is the unit a listing of this category is priced in when
// the vendor does not pick one.
func (l ListingCategory) DefaultPricingUnit() PricingUnit {
	switch l {
	case ListingCategoryCatering:
		return PricingUnitPerPlate
	case ListingCategoryPhotography:
		return PricingUnitPerEvent
	default:
		return PricingUnitPerDay
	}
}
