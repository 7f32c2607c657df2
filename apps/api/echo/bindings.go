package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

var (
	orderingParam = "ordering"
	confirmParam  = "confirm"
)

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// confirmed reports whether the caller explicitly confirmed a destructive
// operation with `?confirm=true`.
func confirmed(ctx echo.Context) bool {
	return ctx.QueryParam(confirmParam) == "true"
}
