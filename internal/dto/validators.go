package dto

import (
	"github.com/SscSPs/currency_conversion_app/internal/utils/isocurrency"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations adds the validations used by request binding
// tags to Gin's validator engine. Must be called once at startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	// currency_code accepts only supported ISO 4217 alphabetic codes.
	return v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return isocurrency.IsSupported(fl.Field().String())
	})
}
