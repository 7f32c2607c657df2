package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)

	data := struct {
		Title string `json:"title" validate:"required"`
	}{}
	err := validate.Struct(data)
	vErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, vErrs, 1)

	// JSON tag name, custom translation
	assert.Equal(t, "title", vErrs[0].Field())
	assert.Equal(t, "this field is required", vErrs[0].Translate(translator))
}
