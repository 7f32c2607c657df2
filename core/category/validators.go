package category

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

var (
	iconTag  = "icon"
	iconText = "unknown category icon"
)

// InitValidators registers the category package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(iconTag, iconValidation)
	core.RegisterCustomTranslation(validate, translator, iconTag, iconText)
}

// iconValidation checks that the provided icon token is a known Icon.
func iconValidation(fl validator.FieldLevel) bool {
	return Icon(fl.Field().String()).Valid()
}
