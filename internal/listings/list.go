package listings

import (
	"fmt"
	"strconv"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const (
	FilterCategory = "category"
	FilterStatus   = "status"
)

var Evaluator = filtering.New(
	[]filtering.Field[ListingDTO]{
		{Name: "title", Value: func(l ListingDTO) string { return l.Title }},
		{Name: "city", Value: func(l ListingDTO) string { return l.City }},
		{Name: "vendor", Value: func(l ListingDTO) string { return l.VendorName }},
	},
	[]filtering.Field[ListingDTO]{
		{Name: FilterCategory, Value: func(l ListingDTO) string { return l.Category.String() }},
		{Name: FilterStatus, Value: func(l ListingDTO) string { return l.Status.String() }},
	},
)

var listingCategories = []enums.ListingCategory{
	enums.ListingCategoryVenue,
	enums.ListingCategoryFarmhouse,
	enums.ListingCategoryCatering,
	enums.ListingCategoryPhotography,
}

// ComputeStats aggregates exactly the provided listings.
func ComputeStats(items []ListingDTO) Stats {
	stats := Stats{Total: len(items), ByCategory: make(map[string]int, len(listingCategories))}
	for _, c := range listingCategories {
		stats.ByCategory[c.String()] = 0
	}
	for _, l := range items {
		switch l.Status {
		case enums.ListingStatusPublished:
			stats.Published++
		case enums.ListingStatusDraft:
			stats.Draft++
		case enums.ListingStatusArchived:
			stats.Archived++
		}
		stats.ByCategory[l.Category.String()]++
	}
	return stats
}

func (s Stats) ReportStats() []report.Stat {
	out := []report.Stat{
		{Label: "Total Listings", Value: strconv.Itoa(s.Total)},
		{Label: "Published", Value: strconv.Itoa(s.Published)},
		{Label: "Draft", Value: strconv.Itoa(s.Draft)},
		{Label: "Archived", Value: strconv.Itoa(s.Archived)},
	}
	for _, c := range listingCategories {
		out = append(out, report.Stat{Label: categoryLabel(c), Value: strconv.Itoa(s.ByCategory[c.String()])})
	}
	return out
}

var ReportSource = report.Source[ListingDTO]{
	Entity: "listings",
	Title:  "Listing Report",
	Noun:   "listing",
	Columns: []report.Column[ListingDTO]{
		{Label: "Title", Value: func(l ListingDTO) string { return l.Title }},
		{Label: "Vendor", Value: func(l ListingDTO) string { return l.VendorName }},
		{Label: "Category", Value: func(l ListingDTO) string { return l.Category.String() }},
		{Label: "City", Value: func(l ListingDTO) string { return l.City }},
		{Label: "Guests", Value: func(l ListingDTO) string { return fmt.Sprintf("%d-%d", l.MinGuests, l.MaxGuests) }},
		{Label: "Price", Value: func(l ListingDTO) string {
			return fmt.Sprintf("%s %s", l.BasePrice.StringFixed(2), l.PricingUnit)
		}},
		{Label: "Status", Value: func(l ListingDTO) string { return l.Status.String() }},
		{Label: "Created", Value: func(l ListingDTO) string { return l.CreatedAt.Format("2006-01-02") }},
	},
}

func categoryLabel(c enums.ListingCategory) string {
	switch c {
	case enums.ListingCategoryVenue:
		return "Venues"
	case enums.ListingCategoryFarmhouse:
		return "Farmhouses"
	case enums.ListingCategoryCatering:
		return "Catering"
	case enums.ListingCategoryPhotography:
		return "Photography"
	}
	return c.String()
}
