package middleware

import (
	"SehatCare/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("appointmentstatus", func(fl validator.FieldLevel) bool {
		return services.ValidStatus(fl.Field().String())
	})
}
