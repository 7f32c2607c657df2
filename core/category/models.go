package category

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

// Icon is the fixed set of renderable category icons. Rows persist the
// token; clients map it to an asset.
type Icon string

const (
	IconNetwork  Icon = "network"
	IconGlobe    Icon = "globe"
	IconDatabase Icon = "database"
	IconShield   Icon = "shield"
	IconWifi     Icon = "wifi"
	IconBook     Icon = "book"
)

var AllIcons = []Icon{IconNetwork, IconGlobe, IconDatabase, IconShield, IconWifi, IconBook}

var ErrUnknownIcon = errors.New("unknown category icon")

func ParseIcon(s string) (Icon, error) {
	icon := Icon(core.CleanString(s, true /* lower */))
	if !icon.Valid() {
		return "", ErrUnknownIcon
	}
	return icon, nil
}

func (i Icon) Valid() bool {
	for _, known := range AllIcons {
		if i == known {
			return true
		}
	}
	return false
}

func (i Icon) String() string { return string(i) }

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
	Color       string `json:"color"`
}

// NewCategory contains information needed to create a new Category.
type NewCategory struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"required,icon"`
	Color       string `json:"color"`
}

func (nc *NewCategory) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Icon = core.CleanString(nc.Icon, true /* lower */)
	nc.Color = core.CleanString(nc.Color, true /* lower */)
	return validate.Struct(nc)
}
