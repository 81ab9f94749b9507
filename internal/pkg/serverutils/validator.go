package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds failures into a single
// ValidationError message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		ves, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewInternalError(err)
		}

		var fields []string
		for _, fe := range ves {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return NewValidationError("invalid request: " + strings.Join(fields, ", "))
	}
	return nil
}
