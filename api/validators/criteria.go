package validators

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/filtering"
)

const maxQueryLength = 200

// ParseCriteria reads the free-text query from "q" and one selection per
// filter name. Absent filters are left out so they default to "all".
func ParseCriteria(r *http.Request, filterNames []string) filtering.Criteria {
	values := r.URL.Query()
	criteria := filtering.Criteria{
		Query:      SanitizeString(values.Get("q"), maxQueryLength),
		Selections: filtering.Selections{},
	}
	for _, name := range filterNames {
		if v := SanitizeString(values.Get(name), maxQueryLength); v != "" {
			criteria.Selections[name] = v
		}
	}
	return criteria
}

// ParseUUID validates a path or query identifier.
func ParseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(SanitizeString(raw, 64))
	if err != nil {
		return uuid.Nil, fieldError(field, "must be a valid uuid")
	}
	return id, nil
}
