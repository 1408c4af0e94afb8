package records

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the number of rows shown per table page.
const PageSize = 5

// Record is a single person entry. Its position in the list is its only identity.
type Record struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	Phone     string `validate:"omitempty,phone"`
}

// Field names one editable column of a Record.
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldEmail
	FieldPhone
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPhone}

var (
	// ErrUnknownField indicates a field name that maps to no record column.
	ErrUnknownField = errors.New("unknown field")
	// ErrIndexOutOfRange indicates an index that does not address a record.
	ErrIndexOutOfRange = errors.New("record index out of range")
	// ErrPageOutOfRange indicates a page number outside the rendered page list.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Name returns the form name used for the field.
func (f Field) Name() string {
	switch f {
	case FieldFirstName:
		return "fname"
	case FieldLastName:
		return "lname"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "number"
	default:
		return ""
	}
}

// Label returns the human readable column title.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First Name"
	case FieldLastName:
		return "Last Name"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Mobile Number"
	default:
		return ""
	}
}

func (f Field) String() string {
	return f.Name()
}

// ParseField resolves a form field name or a column heading.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fname", "first", "first_name", "firstname", "first name":
		return FieldFirstName, nil
	case "lname", "last", "last_name", "lastname", "last name":
		return FieldLastName, nil
	case "email", "e-mail":
		return FieldEmail, nil
	case "number", "phone", "mobile", "mobile number":
		return FieldPhone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of the field on r.
func (r Record) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	default:
		return ""
	}
}

// Set assigns value to the field on r. Unknown fields are ignored.
func (r *Record) Set(f Field, value string) {
	switch f {
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	}
}
