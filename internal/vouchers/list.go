package vouchers

import (
	"fmt"
	"strconv"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
	"github.com/venuehub/venuehub-backend/pkg/usage"
)

// Filter names accepted on the voucher list.
const (
	FilterStatus     = "status"
	FilterType       = "type"
	FilterVisibility = "visibility"
	FilterScope      = "scope"
)

// Evaluator filters voucher list screens. Status is the derived label.
var Evaluator = filtering.New(
	[]filtering.Field[VoucherDTO]{
		{Name: "code", Value: func(v VoucherDTO) string { return v.Code }},
		{Name: "title", Value: func(v VoucherDTO) string { return v.Title }},
		{Name: "vendor", Value: func(v VoucherDTO) string { return v.VendorName }},
	},
	[]filtering.Field[VoucherDTO]{
		{Name: FilterStatus, Value: func(v VoucherDTO) string { return v.Status.String() }},
		{Name: FilterType, Value: func(v VoucherDTO) string { return v.DiscountType.String() }},
		{Name: FilterVisibility, Value: func(v VoucherDTO) string { return v.Visibility }},
		{Name: FilterScope, Value: func(v VoucherDTO) string { return v.Scope }},
	},
)

// ComputeStats aggregates exactly the provided vouchers.
func ComputeStats(items []VoucherDTO) Stats {
	var counts lifecycle.Counts
	stats := Stats{Total: len(items)}
	progress := make([]int, 0, len(items))
	for _, v := range items {
		counts.Add(v.Status)
		stats.Redemptions += v.CurrentUsageCount
		progress = append(progress, v.Progress)
	}
	stats.Active = counts.Active
	stats.Inactive = counts.Inactive
	stats.Expired = counts.Expired
	stats.AverageProgress = usage.AverageProgress(progress)
	return stats
}

// ReportStats renders stats for the report summary block.
func (s Stats) ReportStats() []report.Stat {
	return []report.Stat{
		{Label: "Total Vouchers", Value: strconv.Itoa(s.Total)},
		{Label: "Active", Value: strconv.Itoa(s.Active)},
		{Label: "Inactive", Value: strconv.Itoa(s.Inactive)},
		{Label: "Expired", Value: strconv.Itoa(s.Expired)},
		{Label: "Redemptions", Value: strconv.FormatInt(s.Redemptions, 10)},
		{Label: "Avg. Usage", Value: fmt.Sprintf("%d%%", s.AverageProgress)},
	}
}

const reportDateLayout = "2006-01-02"

// ReportSource lists every voucher field worth printing.
var ReportSource = report.Source[VoucherDTO]{
	Entity: "vouchers",
	Title:  "Voucher Report",
	Noun:   "voucher",
	Columns: []report.Column[VoucherDTO]{
		{Label: "Code", Value: func(v VoucherDTO) string { return v.Code }},
		{Label: "Title", Value: func(v VoucherDTO) string { return v.Title }},
		{Label: "Discount", Value: discountLabel},
		{Label: "Min Order", Value: func(v VoucherDTO) string { return v.MinOrderAmount.StringFixed(2) }},
		{Label: "Scope", Value: scopeLabel},
		{Label: "Visibility", Value: func(v VoucherDTO) string { return v.Visibility }},
		{Label: "Status", Value: func(v VoucherDTO) string { return v.Status.String() }},
		{Label: "Usage", Value: func(v VoucherDTO) string {
			return fmt.Sprintf("%d / %d", v.CurrentUsageCount, v.TotalUsageLimit)
		}},
		{Label: "Progress", Value: func(v VoucherDTO) string { return fmt.Sprintf("%d%%", v.Progress) }},
		{Label: "Valid From", Value: func(v VoucherDTO) string { return v.ValidFrom.Format(reportDateLayout) }},
		{Label: "Valid Until", Value: func(v VoucherDTO) string { return v.ValidUntil.Format(reportDateLayout) }},
	},
}

func discountLabel(v VoucherDTO) string {
	if v.DiscountType == enums.DiscountTypePercentage {
		return v.DiscountValue.String() + "%"
	}
	return v.DiscountValue.StringFixed(2)
}

func scopeLabel(v VoucherDTO) string {
	if v.Scope == ScopeVendor && v.VendorName != "" {
		return v.VendorName
	}
	return v.Scope
}
