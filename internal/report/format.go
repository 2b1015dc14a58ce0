package report

import (
	"fmt"
	"strings"
)

// Format selects the Sink used for an export.
type Format string

const (
	FormatHTML Format = "html"
	FormatCSV  Format = "csv"
)

var validFormats = []Format{FormatHTML, FormatCSV}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// ContentType is the HTTP media type of the rendered document.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// ParseFormat accepts html or csv in any casing; empty means html.
func ParseFormat(value string) (Format, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return FormatHTML, nil
	}
	for _, candidate := range validFormats {
		if string(candidate) == v {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report format %q", value)
}
