package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-backend/pkg/lifecycle"
)

type voucherRow struct {
	Code     string
	Title    string
	Type     string
	IsActive bool
	Until    time.Time
	status   lifecycle.Status
}

func voucherEvaluator() *Evaluator[voucherRow] {
	return New(
		[]Field[voucherRow]{
			{Name: "code", Value: func(v voucherRow) string { return v.Code }},
			{Name: "title", Value: func(v voucherRow) string { return v.Title }},
		},
		[]Field[voucherRow]{
			{Name: "status", Value: func(v voucherRow) string { return v.status.String() }},
			{Name: "type", Value: func(v voucherRow) string { return v.Type }},
		},
	)
}

func fixture(now time.Time) []voucherRow {
	rows := []voucherRow{
		{Code: "SAVE20", Title: "Wedding season", Type: "percentage", IsActive: true, Until: now.Add(30 * 24 * time.Hour)},
		{Code: "FIXED10", Title: "Flat discount", Type: "fixed", IsActive: true, Until: now.Add(10 * 24 * time.Hour)},
		{Code: "EXPIRED15", Title: "Last summer", Type: "percentage", IsActive: false, Until: now.Add(-24 * time.Hour)},
	}
	for i := range rows {
		rows[i].status = lifecycle.Derive(rows[i].IsActive, rows[i].Until, now)
	}
	return rows
}

func codes(rows []voucherRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Code)
	}
	return out
}

func TestEvaluateDefaultCriteriaReturnsInputInOrder(t *testing.T) {
	rows := fixture(time.Now())
	got := voucherEvaluator().Evaluate(rows, Criteria{Selections: Selections{"status": All, "type": All}})
	assert.Equal(t, rows, got)

	got = voucherEvaluator().Evaluate(rows, Criteria{})
	assert.Equal(t, rows, got)
}

func TestSearchMatchesEmptyQuery(t *testing.T) {
	e := voucherEvaluator()
	for _, r := range fixture(time.Now()) {
		assert.True(t, e.SearchMatches(r, ""))
		assert.True(t, e.SearchMatches(r, "   "))
	}
}

func TestSearchMatchesAnyFieldCaseInsensitive(t *testing.T) {
	e := voucherEvaluator()
	rows := fixture(time.Now())

	assert.Equal(t, []string{"SAVE20"}, codes(e.Evaluate(rows, Criteria{Query: "save"})))
	assert.Equal(t, []string{"FIXED10"}, codes(e.Evaluate(rows, Criteria{Query: " FLAT "})))
	assert.Empty(t, e.Evaluate(rows, Criteria{Query: "nothing-here"}))
}

func TestEvaluateDerivedStatus(t *testing.T) {
	e := voucherEvaluator()
	rows := fixture(time.Now())

	active := e.Evaluate(rows, Criteria{Selections: Selections{"status": "active"}})
	assert.Equal(t, []string{"SAVE20", "FIXED10"}, codes(active))

	expired := e.Evaluate(rows, Criteria{Selections: Selections{"status": "expired"}})
	require.NotNil(t, expired)
	assert.Empty(t, expired)

	inactive := e.Evaluate(rows, Criteria{Selections: Selections{"status": "inactive"}})
	assert.Equal(t, []string{"EXPIRED15"}, codes(inactive))
}

func TestEvaluateCombinesFiltersWithAnd(t *testing.T) {
	e := voucherEvaluator()
	rows := fixture(time.Now())

	got := e.Evaluate(rows, Criteria{
		Query:      "s",
		Selections: Selections{"status": "active", "type": "percentage"},
	})
	assert.Equal(t, []string{"SAVE20"}, codes(got))
}

func TestUnknownFilterNamesAreIgnored(t *testing.T) {
	e := voucherEvaluator()
	rows := fixture(time.Now())

	got := e.Evaluate(rows, Criteria{Selections: Selections{"colour": "blue"}})
	assert.Equal(t, rows, got)
	assert.Empty(t, e.Applied(Selections{"colour": "blue"}))
}

func TestApplied(t *testing.T) {
	e := voucherEvaluator()
	got := e.Applied(Selections{"type": "fixed", "status": "active", "other": "x"})
	assert.Equal(t, []AppliedFilter{
		{Name: "status", Value: "active"},
		{Name: "type", Value: "fixed"},
	}, got)

	assert.Empty(t, e.Applied(Selections{"status": "ALL", "type": ""}))
}

func TestCriteriaIsDefault(t *testing.T) {
	assert.True(t, Criteria{}.IsDefault())
	assert.True(t, Criteria{Selections: Selections{"status": "all"}}.IsDefault())
	assert.False(t, Criteria{Query: "x"}.IsDefault())
	assert.False(t, Criteria{Selections: Selections{"status": "active"}}.IsDefault())
}

func TestFilterNames(t *testing.T) {
	assert.Equal(t, []string{"status", "type"}, voucherEvaluator().FilterNames())
}
