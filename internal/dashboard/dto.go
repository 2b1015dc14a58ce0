package dashboard

import (
	"time"

	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
)

// Overview is the admin landing page summary.
type Overview struct {
	Vendors     CountBreakdown `json:"vendors"`
	Vouchers    VoucherSummary `json:"vouchers"`
	Listings    CountBreakdown `json:"listings"`
	Users       CountBreakdown `json:"users"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// CountBreakdown is a total plus counts keyed by a categorical value. Every
// known key is present, including zeros.
type CountBreakdown struct {
	Total int64            `json:"total"`
	By    map[string]int64 `json:"by"`
}

// VoucherSummary counts vouchers by their derived status.
type VoucherSummary struct {
	Total int `json:"total"`
	lifecycle.Counts
}
