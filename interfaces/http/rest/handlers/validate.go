package handlers

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateStruct validates a request DTO against its struct tags
func validateStruct(s interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate.Struct(s)
}
