package common

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the errorsMessages list returned to clients.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ValidationError carries the ordered field errors of a failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

// IncorrectMessage is the single message shape used for every field error.
func IncorrectMessage(field string) string {
	return "Incorrect " + field
}

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// RegisterPattern adds a struct tag that matches string fields against rx.
// It must be called from package init, before any validation runs.
func RegisterPattern(tag string, rx *regexp.Regexp) {
	err := rules.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rx.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validator collects field errors in the order they are found. Only the first
// error for a given field is kept.
type Validator struct {
	Errors []FieldError
	seen   map[string]struct{}
}

func NewValidator() *Validator {
	return &Validator{seen: make(map[string]struct{})}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.seen[field]; ok {
		return
	}
	v.seen[field] = struct{}{}
	v.Errors = append(v.Errors, FieldError{Message: message, Field: field})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Failed reports whether field already has an error.
func (v *Validator) Failed(field string) bool {
	_, ok := v.seen[field]
	return ok
}

// CheckStruct runs the declarative `validate` tags of s. Fields are reported in
// declaration order under their json names.
func (v *Validator) CheckStruct(s any) error {
	err := rules.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), IncorrectMessage(fe.Field()))
	}

	return nil
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
