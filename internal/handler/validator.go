package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Report field names as their json tags so validation errors line up with
	// the request body keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("growthstage", validateGrowthStage)
	_ = v.RegisterValidation("irrigationtype", validateIrrigationType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "growthstage":
			errs[field] = "Invalid growth stage"
		case "irrigationtype":
			errs[field] = "Invalid irrigation type"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidGrowthStages defines the accepted crop growth stages
var ValidGrowthStages = map[string]bool{
	"SOWING":      true,
	"GERMINATION": true,
	"VEGETATIVE":  true,
	"FLOWERING":   true,
	"FRUITING":    true,
	"MATURATION":  true,
	"HARVEST":     true,
}

// ValidIrrigationTypes defines the accepted irrigation regimes
var ValidIrrigationTypes = map[string]bool{
	"RAINFED":   true,
	"DRIP":      true,
	"SPRINKLER": true,
	"CANAL":     true,
	"BOREWELL":  true,
}

func validateGrowthStage(fl validator.FieldLevel) bool {
	stage := fl.Field().String()
	if stage == "" {
		return true
	}
	return ValidGrowthStages[strings.ToUpper(stage)]
}

func validateIrrigationType(fl validator.FieldLevel) bool {
	irrType := fl.Field().String()
	if irrType == "" {
		return true
	}
	return ValidIrrigationTypes[strings.ToUpper(irrType)]
}
