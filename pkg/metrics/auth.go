package metrics

import "github.com/prometheus/client_golang/prometheus"

// OTP verification outcomes.
const (
	OTPResultSuccess  = "success"
	OTPResultMismatch = "mismatch"
	OTPResultExpired  = "expired"
	OTPResultLocked   = "locked"
)

// AuthMetrics records one-time-code issuance and verification.
type AuthMetrics struct {
	issued   *prometheus.CounterVec
	verified *prometheus.CounterVec
}

// NewAuthMetrics registers the auth metrics on the provided registerer.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	issued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "One-time codes issued by purpose.",
	}, []string{"purpose"})
	verified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verifications_total",
		Help: "One-time code verification attempts by purpose and result.",
	}, []string{"purpose", "result"})
	reg.MustRegister(issued, verified)
	return &AuthMetrics{issued: issued, verified: verified}
}

// IncIssued counts a code sent for purpose.
func (m *AuthMetrics) IncIssued(purpose string) {
	if m == nil || m.issued == nil {
		return
	}
	m.issued.WithLabelValues(normalizeLabel(purpose)).Inc()
}

// IncVerification counts a verification attempt.
func (m *AuthMetrics) IncVerification(purpose, result string) {
	if m == nil || m.verified == nil {
		return
	}
	m.verified.WithLabelValues(normalizeLabel(purpose), normalizeLabel(result)).Inc()
}
