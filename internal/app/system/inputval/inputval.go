// internal/app/system/inputval/inputval.go
//
// Package inputval validates decoded request bodies with struct tags
// (github.com/go-playground/validator/v10) and turns failures into short,
// user-safe messages keyed by the JSON field name.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// get returns the shared validator. It caches struct metadata, so one
// instance is used for the life of the process.
func get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("campaigncategory", func(fl validator.FieldLevel) bool {
			return models.IsCampaignCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("campaignstatus", func(fl validator.FieldLevel) bool {
			return models.IsCampaignStatus(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures for one struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether validation failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Fields maps JSON field name to message.
func (r Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = e.Message
	}
	return out
}

// Validate checks s against its `validate` tags.
func Validate(s any) Result {
	err := get().Struct(s)
	if err == nil {
		return Result{}
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Result{Errors: []FieldError{{Field: "", Message: "Invalid request."}}}
	}
	out := Result{Errors: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Errors = append(out.Errors, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name: "createRequest.location.lng" → "location.lng".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	f := fieldPath(fe)
	switch fe.Tag() {
	case "required", "nonblank":
		return fmt.Sprintf("%s is required.", f)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", f, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s may have at most %s items.", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", f, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", f, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must be on or after %s.", f, lowerFirst(fe.Param()))
	case "campaigncategory":
		return fmt.Sprintf("%s must be one of: %s.", f, strings.Join(models.CampaignCategories, ", "))
	case "campaignstatus":
		return fmt.Sprintf("%s must be one of: %s.", f, strings.Join(models.CampaignStatuses, ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL.", f)
	default:
		return fmt.Sprintf("%s is invalid.", f)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
