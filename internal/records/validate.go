package records

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var recordValidate *validator.Validate

func init() {
	recordValidate = validator.New()
	if err := recordValidate.RegisterValidation("phone", validatePhone); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
}

// ValidationError lists the fields that failed strict validation.
type ValidationError struct {
	Problems []FieldProblem
}

// FieldProblem is one failed rule on one field.
type FieldProblem struct {
	Field Field
	Rule  string
}

func (p FieldProblem) String() string {
	switch p.Rule {
	case "required":
		return p.Field.Label() + " is required"
	case "email":
		return p.Field.Label() + " is not a valid email"
	case "phone":
		return p.Field.Label() + " is not a valid phone number"
	default:
		return fmt.Sprintf("%s failed %s", p.Field.Label(), p.Rule)
	}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks r against the strict-mode rules: both names required,
// email and phone checked for shape only when present.
func Validate(r Record) error {
	err := recordValidate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate record: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Problems = append(out.Problems, FieldProblem{Field: fieldForStruct(fe.StructField()), Rule: fe.Tag()})
	}
	return out
}

func fieldForStruct(name string) Field {
	switch name {
	case "LastName":
		return FieldLastName
	case "Email":
		return FieldEmail
	case "Phone":
		return FieldPhone
	default:
		return FieldFirstName
	}
}

// validatePhone accepts digits with common separators and at least seven digits.
func validatePhone(fl validator.FieldLevel) bool {
	digits := 0
	for i, r := range fl.Field().String() {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ', r == '-', r == '(', r == ')', r == '.':
		default:
			return false
		}
	}
	return digits >= 7
}
