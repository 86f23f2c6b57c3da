package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrorDetail campo y regla que fallaron en la validación de un request.
type ErrorDetail struct {
	Field string
	Tag   string
	Param string
}

func (e ErrorDetail) String() string {
	if e.Param != "" {
		return fmt.Sprintf("campo '%s' no cumple '%s=%s'", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("campo '%s' no cumple '%s'", e.Field, e.Tag)
}

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un DTO y devuelve los fallos.
func ValidateStruct(data interface{}) []ErrorDetail {
	var details []ErrorDetail
	err := validate.Struct(data)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			details = append(details, ErrorDetail{
				Field: fe.StructNamespace(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return details
}
