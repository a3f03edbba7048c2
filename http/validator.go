package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"home-budget/domain"
	"home-budget/service"
)

const (
	maxAnnualIncome = service.MaxAnnualIncome
	maxFunds        = service.MaxFunds
	maxInterestRate = service.MaxInterestRate
)

// fieldMessages holds the user-facing message per request field.
var fieldMessages = map[string]string{
	"annualIncome":    "Please enter a valid annual income.",
	"totalSavings":    "Please enter a valid total savings amount.",
	"hasTrustFund":    "Please choose whether you have a trust fund.",
	"trustFundAmount": "Please enter a valid trust fund amount.",
	"city":            "Please select a valid city.",
	"interestRate":    "Please enter a valid interest rate between 5.5% and 15%.",
	"policy":          "Please select a valid policy.",
}

// Validator wraps a validator instance bound to the supported cities and policies.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(cities domain.CityTable, policyNames []string) *Validator {
	v := validator.New()

	// Report fields by their JSON name so the form can map errors to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		return cities.Contains(fl.Field().String())
	})

	_ = v.RegisterValidation("interest_rate", func(fl validator.FieldLevel) bool {
		rate, err := strconv.ParseFloat(fl.Field().String(), 64)
		if err != nil {
			return false
		}
		return rate >= service.MinInterestRate && rate <= service.MaxInterestRate
	})

	known := make(map[string]bool, len(policyNames))
	for _, n := range policyNames {
		known[n] = true
	}
	_ = v.RegisterValidation("policy", func(fl validator.FieldLevel) bool {
		return known[fl.Field().String()]
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError collects every failing field into a field -> message map.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ErrMsgInvalidRequest
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		if msg, ok := fieldMessages[field]; ok {
			errs[field] = msg
			continue
		}
		errs[field] = "Invalid value"
	}

	return errs
}
