package preferences

import (
	"strconv"
	"strings"

	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const (
	FilterType       = "type"
	FilterVisibility = "visibility"
)

var Evaluator = filtering.New(
	[]filtering.Field[PreferenceDTO]{
		{Name: "name", Value: func(p PreferenceDTO) string { return p.Name }},
		{Name: "description", Value: func(p PreferenceDTO) string { return deref(p.Description) }},
	},
	[]filtering.Field[PreferenceDTO]{
		{Name: FilterType, Value: func(p PreferenceDTO) string { return p.Type.String() }},
		{Name: FilterVisibility, Value: func(p PreferenceDTO) string { return p.Visibility }},
	},
)

var preferenceTypes = []enums.PreferenceType{
	enums.PreferenceTypeEventType,
	enums.PreferenceTypeAmenity,
	enums.PreferenceTypeCuisine,
	enums.PreferenceTypeStyle,
}

// ComputeStats aggregates exactly the provided preferences.
func ComputeStats(items []PreferenceDTO) Stats {
	stats := Stats{Total: len(items), ByType: make(map[string]int, len(preferenceTypes))}
	for _, t := range preferenceTypes {
		stats.ByType[t.String()] = 0
	}
	for _, p := range items {
		if p.IsVisible {
			stats.Visible++
		} else {
			stats.Hidden++
		}
		stats.ByType[p.Type.String()]++
	}
	return stats
}

func (s Stats) ReportStats() []report.Stat {
	out := []report.Stat{
		{Label: "Total Preferences", Value: strconv.Itoa(s.Total)},
		{Label: "Visible", Value: strconv.Itoa(s.Visible)},
		{Label: "Hidden", Value: strconv.Itoa(s.Hidden)},
	}
	for _, t := range preferenceTypes {
		out = append(out, report.Stat{Label: typeLabel(t), Value: strconv.Itoa(s.ByType[t.String()])})
	}
	return out
}

var ReportSource = report.Source[PreferenceDTO]{
	Entity: "preferences",
	Title:  "Preference Report",
	Noun:   "preference",
	Columns: []report.Column[PreferenceDTO]{
		{Label: "Name", Value: func(p PreferenceDTO) string { return p.Name }},
		{Label: "Type", Value: func(p PreferenceDTO) string { return typeLabel(p.Type) }},
		{Label: "Description", Value: func(p PreferenceDTO) string { return deref(p.Description) }},
		{Label: "Visibility", Value: func(p PreferenceDTO) string { return p.Visibility }},
		{Label: "Sort Order", Value: func(p PreferenceDTO) string { return strconv.Itoa(p.SortOrder) }},
		{Label: "Created", Value: func(p PreferenceDTO) string { return p.CreatedAt.Format("2006-01-02") }},
	},
}

// typeLabel turns event_type into "Event Type".
func typeLabel(t enums.PreferenceType) string {
	words := strings.Split(t.String(), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
