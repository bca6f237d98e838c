// Package validation checks submitted video forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/ad-tracker/videoshelf-go/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Messages shown next to a field, keyed by "<form field>.<tag>".
var messages = map[string]string{
	"title.notblank":       "title is required",
	"url.required":         "a url is required",
	"title.storable":       "title contains characters that cannot be stored",
	"description.storable": "description contains characters that cannot be stored",
	"url.storable":         "url contains characters that cannot be stored",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so errors line up with the inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("storable", storable); err != nil {
		panic(fmt.Sprintf("register storable validation: %v", err))
	}

	return &Validator{validate: v}
}

// ValidateVideo runs every presence rule against in and returns all failures.
// It returns nil when the input is valid. The input is never modified.
func (v *Validator) ValidateVideo(in *models.VideoInput) models.FieldErrors {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable on programmer error (e.g. a nil input).
		return models.FieldErrors{"_": err.Error()}
	}

	fields := make(models.FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// storable rejects text Postgres refuses in a TEXT column: invalid UTF-8 and NUL bytes.
func storable(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
