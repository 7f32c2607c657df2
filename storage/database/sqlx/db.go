// Package sqlxrepos provides PostgreSQL-backed repository implementations
// on top of jmoiron/sqlx with hand-written queries.
package sqlxrepos

import (
	"strings"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

// orderBy renders the ORDER BY clause for the given ordering, or an
// empty string when no ordering is requested. Field names come from
// request query params, so only the allowed column names make it into
// the clause; anything else is dropped.
func orderBy(ordering []core.DBOrdering, allowed ...string) string {
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		for _, col := range allowed {
			if ord.Field == col {
				parts = append(parts, ord.String())
				break
			}
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
