package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/sahilchouksey/task-manager-api/model"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in reported
// errors are the JSON names of the struct fields.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return model.TaskStatus(fl.Field().String()).IsValid()
	})

	return &Validator{
		validate: v,
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a field -> message map.
// Every failing field is reported.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("%s is required", field)
		case "notblank":
			errs[field] = fmt.Sprintf("%s must not be blank", field)
		case "min":
			errs[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			errs[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "task_status":
			errs[field] = fmt.Sprintf("%s must be one of %s", field, statusList())
		default:
			errs[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return errs
}

func statusList() string {
	names := make([]string, len(model.TaskStatuses))
	for i, s := range model.TaskStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
