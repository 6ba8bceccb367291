package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Struct runs go-playground struct validation and converts the result into a
// field-addressable Errors map so a single response can surface every
// structural problem at once.
func Struct(v *validator.Validate, s interface{}) Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	errs := Errors{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("body", "Invalid request body.")
		return errs
	}

	for _, fieldError := range validationErrors {
		field := lowerFirst(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			errs.Add(field, "This field is required.")
		case "min":
			errs.Add(field, "Must be at least "+fieldError.Param()+" characters/items.")
		case "max":
			errs.Add(field, "Must be at most "+fieldError.Param()+" characters/items.")
		case "email":
			errs.Add(field, "Please enter a valid email address.")
		case "url":
			errs.Add(field, "Please enter a valid URL.")
		case "oneof":
			errs.Add(field, "Must be one of: "+strings.ReplaceAll(fieldError.Param(), " ", ", ")+".")
		default:
			errs.Add(field, "This field is invalid.")
		}
	}
	return errs
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
