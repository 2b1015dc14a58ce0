// Package lifecycle derives the Active/Inactive/Expired label shown for
// time-boxed records such as vouchers.
package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

// Status is a derived label. It is never persisted.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusExpired  Status = "Expired"
)

var validStatuses = []Status{StatusActive, StatusInactive, StatusExpired}

// Derive maps the stored flag and expiry to a label at the instant now.
// Inactive wins over Expired: a switched-off voucher reports Inactive even
// after its end date has passed.
func Derive(isActive bool, validUntil, now time.Time) Status {
	if !isActive {
		return StatusInactive
	}
	if validUntil.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Key is the lowercase form used in query strings and filter selections.
func (s Status) Key() string {
	return strings.ToLower(string(s))
}

// ParseStatus accepts any casing of a status label.
func ParseStatus(value string) (Status, error) {
	for _, candidate := range validStatuses {
		if strings.EqualFold(string(candidate), strings.TrimSpace(value)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lifecycle status %q", value)
}

// Counts tallies derived statuses.
type Counts struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Expired  int `json:"expired"`
}

// Add records one occurrence of s.
func (c *Counts) Add(s Status) {
	switch s {
	case StatusActive:
		c.Active++
	case StatusInactive:
		c.Inactive++
	case StatusExpired:
		c.Expired++
	}
}
