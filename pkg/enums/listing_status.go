package enums

import "fmt"

// ListingStatus maps to the listing_status enum in Postgres.
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusPublished ListingStatus = "published"
	ListingStatusArchived  ListingStatus = "archived"
)

var validListingStatuses = []ListingStatus{
	ListingStatusDraft,
	ListingStatusPublished,
	ListingStatusArchived,
}

// String implements fmt.Stringer.
func (l ListingStatus) String() string {
	return string(l)
}

// IsValid reports whether the value matches a canonical listing status.
func (l ListingStatus) IsValid() bool {
	for _, candidate := range validListingStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingStatus converts raw input into ListingStatus.
func ParseListingStatus(value string) (ListingStatus, error) {
	for _, candidate := range validListingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing status %q", value)
}

// IsPublic reports whether customers can browse listings in this state.
func (l ListingStatus) IsPublic() bool {
	return l == ListingStatusPublished
}

var listingStatusTransitions = map[ListingStatus][]ListingStatus{
	ListingStatusDraft:     {ListingStatusPublished, ListingStatusArchived},
	ListingStatusPublished: {ListingStatusDraft, ListingStatusArchived},
	ListingStatusArchived:  {ListingStatusDraft},
}

// CanTransitionTo reports whether a vendor may move a listing from l to next.
func (l ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, allowed := range listingStatusTransitions[l] {
		if allowed == next {
			return true
		}
	}
	return false
}
