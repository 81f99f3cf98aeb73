package validation

import (
	"errors"
	"strings"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// HH:MM wall-clock time, as entered for sleep start and wake-up.
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	validate.RegisterValidation("symptom", func(fl validator.FieldLevel) bool {
		return domain.IsKnownSymptom(domain.Symptom(fl.Field().String()))
	})
	validate.RegisterValidation("workload_dimension", func(fl validator.FieldLevel) bool {
		return domain.IsKnownWorkloadDimension(domain.WorkloadDimension(fl.Field().String()))
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []problem.FieldError{{Field: "body", Message: err.Error()}}
	}

	var fieldErrors []problem.FieldError
	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   fieldName(err),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

// fieldName renders map entries as field[key], e.g. symptom_scores[headache].
func fieldName(err validator.FieldError) string {
	field := err.Field()
	name, key, isEntry := strings.Cut(field, "[")
	if !isEntry {
		return toSnakeCase(field)
	}
	return toSnakeCase(name) + "[" + key
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "symptom":
		return "must be a known symptom"
	case "workload_dimension":
		return "must be one of: " + strings.Join(dimensionNames(), ", ")
	default:
		return "is invalid"
	}
}

func dimensionNames() []string {
	var names []string
	for _, d := range domain.WorkloadDimensions() {
		names = append(names, string(d))
	}
	return names
}

// toSnakeCase keeps acronyms together: TraceID becomes trace_id.
func toSnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				result = append(result, '_')
			}
			result = append(result, byte(c+'a'-'A'))
		} else {
			result = append(result, byte(c))
		}
	}
	return string(result)
}
