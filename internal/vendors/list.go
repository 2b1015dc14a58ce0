package vendors

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

// Filter names accepted on the vendor list.
const (
	FilterStatus   = "status"
	FilterCategory = "category"
	FilterVerified = "verified"
)

var Evaluator = filtering.New(
	[]filtering.Field[VendorDTO]{
		{Name: "business_name", Value: func(v VendorDTO) string { return v.BusinessName }},
		{Name: "owner_name", Value: func(v VendorDTO) string { return v.OwnerName }},
		{Name: "email", Value: func(v VendorDTO) string { return v.Email }},
		{Name: "city", Value: func(v VendorDTO) string { return v.City }},
	},
	[]filtering.Field[VendorDTO]{
		{Name: FilterStatus, Value: func(v VendorDTO) string { return v.Status.String() }},
		{Name: FilterCategory, Value: func(v VendorDTO) string { return v.Category.String() }},
		{Name: FilterVerified, Value: func(v VendorDTO) string { return v.Verification }},
	},
)

// ComputeStats aggregates exactly the provided vendors.
func ComputeStats(items []VendorDTO) Stats {
	stats := Stats{Total: len(items), TotalRevenue: decimal.Zero}
	for _, v := range items {
		switch v.Status {
		case enums.VendorStatusApproved:
			stats.Approved++
		case enums.VendorStatusPending:
			stats.Pending++
		case enums.VendorStatusSuspended:
			stats.Suspended++
		case enums.VendorStatusRejected:
			stats.Rejected++
		}
		if v.IsVerified {
			stats.Verified++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(v.Revenue)
		stats.TotalBookings += v.BookingCount
	}
	return stats
}

func (s Stats) ReportStats() []report.Stat {
	return []report.Stat{
		{Label: "Total Vendors", Value: strconv.Itoa(s.Total)},
		{Label: "Approved", Value: strconv.Itoa(s.Approved)},
		{Label: "Pending", Value: strconv.Itoa(s.Pending)},
		{Label: "Suspended", Value: strconv.Itoa(s.Suspended)},
		{Label: "Rejected", Value: strconv.Itoa(s.Rejected)},
		{Label: "Verified", Value: strconv.Itoa(s.Verified)},
		{Label: "Revenue", Value: s.TotalRevenue.StringFixed(2)},
		{Label: "Bookings", Value: strconv.Itoa(s.TotalBookings)},
	}
}

var ReportSource = report.Source[VendorDTO]{
	Entity: "vendors",
	Title:  "Vendor Report",
	Noun:   "vendor",
	Columns: []report.Column[VendorDTO]{
		{Label: "Business", Value: func(v VendorDTO) string { return v.BusinessName }},
		{Label: "Owner", Value: func(v VendorDTO) string { return v.OwnerName }},
		{Label: "Email", Value: func(v VendorDTO) string { return v.Email }},
		{Label: "Phone", Value: func(v VendorDTO) string { return deref(v.Phone) }},
		{Label: "City", Value: func(v VendorDTO) string { return v.City }},
		{Label: "Category", Value: func(v VendorDTO) string { return v.Category.String() }},
		{Label: "Status", Value: func(v VendorDTO) string { return v.Status.String() }},
		{Label: "Verified", Value: func(v VendorDTO) string { return v.Verification }},
		{Label: "Listings", Value: func(v VendorDTO) string { return strconv.FormatInt(v.ListingCount, 10) }},
		{Label: "Bookings", Value: func(v VendorDTO) string { return strconv.Itoa(v.BookingCount) }},
		{Label: "Revenue", Value: func(v VendorDTO) string { return v.Revenue.StringFixed(2) }},
		{Label: "Rating", Value: func(v VendorDTO) string { return fmt.Sprintf("%.1f", v.Rating) }},
		{Label: "Joined", Value: func(v VendorDTO) string { return v.CreatedAt.Format("2006-01-02") }},
	},
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
