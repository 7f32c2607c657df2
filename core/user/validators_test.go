package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func Test_validatePassword(t *testing.T) {
	validate := newTestValidator(t)

	commonPasswords = []string{"password", "qwerty123"} // sorted
	defer func() { commonPasswords = nil }()

	tests := []struct {
		name    string
		nu      NewUser
		wantTag string
	}{
		{name: "too short", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "ab1!"}, wantTag: pwdMinLenTag},
		{name: "exactly 5", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "abcd1"}, wantTag: pwdMinLenTag},
		{name: "whitespace", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "abc 123"}, wantTag: pwdNoSpaceTag},
		{name: "all numeric", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "83957101"}, wantTag: pwdNotAllNumTag},
		{name: "similar to email", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "jane@test.ec"}, wantTag: pwdAttrSimTag},
		{name: "similar to name", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "JaneDoe"}, wantTag: pwdAttrSimTag},
		{name: "common password", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "PassWord"}, wantTag: pwdNoCommonTag},
		{name: "minimum viable", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "x1y2z!"}},
		{name: "good password", nu: NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Struct() unexpected error = %v", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v, want ValidationErrors with tag %q", err, tt.wantTag)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Struct() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}

func Test_roleValidation(t *testing.T) {
	validate := newTestValidator(t)

	tests := []struct {
		role    string
		wantErr bool
	}{
		{role: "admin"},
		{role: "instructor"},
		{role: "student"},
		{role: "superuser", wantErr: true},
		{role: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("role="+tt.role, func(t *testing.T) {
			ur := UpdateRole{Role: tt.role}
			if err := ur.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
