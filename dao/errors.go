package dao

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an identifier does not match any row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidInput wraps validation failures and dangling references
	ErrInvalidInput = errors.New("invalid input")
	// ErrReferenced is returned when a delete is blocked by dependent rows
	ErrReferenced = errors.New("record is still referenced")
	// ErrCodeSpaceExhausted is returned when no free agent code turns up within MaxCodeAttempts
	ErrCodeSpaceExhausted = errors.New("agent code space exhausted")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs the struct's validate tags and wraps failures in ErrInvalidInput
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("%w: field %s failed on %s", ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translateError maps gorm errors onto the package sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}
