package config

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("identifier", isIdentifier); err != nil {
		return nil, nil, fmt.Errorf("failed to register identifier validation: %w", err)
	}
	if err := validate.RegisterTranslation("identifier", trans, func(ut ut.Translator) error {
		return ut.Add("identifier", "{0} must be a single identifier such as x or t", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("identifier", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register identifier translation: %w", err)
	}

	return validate, trans, nil
}

// isIdentifier accepts names the equation parser reads as one symbol. "sqrt"
// is reserved for the square root.
func isIdentifier(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || name == "sqrt" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
