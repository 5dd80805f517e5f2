package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// YAML .inf and TOML inf decode to +Inf, which passes gt=0.
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// ValidateHolding checks a single holding's struct constraints.
func ValidateHolding(h model.Holding) error {
	err := validate.Struct(h)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &Error{Fields: fields}
}

// ValidateHoldings validates every holding and reports the first failure
// with its position in the file.
func ValidateHoldings(holdings []model.Holding) error {
	for i, h := range holdings {
		if err := ValidateHolding(h); err != nil {
			return fmt.Errorf("%w at index %d (%q): %w", apperrors.ErrInvalidHolding, i, h.Name, err)
		}
	}
	return nil
}

// ValidateSymbols checks a parsed symbols list against the batch limit.
// A limit of 0 disables the upper bound.
func ValidateSymbols(symbols []string, limit int) error {
	if len(symbols) == 0 {
		return apperrors.ErrEmptySymbols
	}
	if limit > 0 && len(symbols) > limit {
		return fmt.Errorf("%w: %d (max %d)", apperrors.ErrTooManySymbols, len(symbols), limit)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "finite":
		return "must be a finite number"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
