package commands

import (
	"slot-swapper/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return errs.Mark(errs.Wrap(err, "invalid input"), errs.ErrInvalidInput)
	}
	return nil
}
