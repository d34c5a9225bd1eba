// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the console handlers and every storage backend import types without
// depending on each other.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  controls how the field appears when encoded to JSON.
//
//  2. validate:"..." are the rules checked by the go-playground/validator
//     package. Only the numeric fields carry rules; names, date of birth,
//     gender and program are stored exactly as entered.
type Student struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      string  `json:"gender"`
	GPA         float64 `json:"gpa"         validate:"gte=0,lte=4"`
	Semester    int     `json:"semester"    validate:"gte=1"`
	Program     string  `json:"program"`
	NumCourses  int     `json:"num_courses" validate:"gte=0"`
}

// validate is shared by every check in this package; it caches the parsed
// struct tags of Student after the first call.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrUnknownField is returned when a Field value outside the known set is
// used to modify a record.
var ErrUnknownField = errors.New("unknown student field")

// Validate checks every tagged field of s.
// It returns validator.ValidationErrors when one or more rules fail.
func (s Student) Validate() error {
	return validate.Struct(s)
}

// ValidateGPA reports whether v is a GPA in [0.0, 4.0].
func ValidateGPA(v float64) error {
	return validate.StructPartial(Student{GPA: v}, FieldGPA.structField())
}

// ValidateSemester reports whether v is a semester number of at least 1.
func ValidateSemester(v int) error {
	return validate.StructPartial(Student{Semester: v}, FieldSemester.structField())
}

// ValidateNumCourses reports whether v is a non-negative course count.
func ValidateNumCourses(v int) error {
	return validate.StructPartial(Student{NumCourses: v}, FieldNumCourses.structField())
}

// Set parses raw according to the type of field and assigns it to s.
//
// Text fields take raw verbatim. Numeric fields are parsed and then checked
// against the same rules Validate applies; on any failure s is left
// untouched and the parse error (*strconv.NumError) or the
// validator.ValidationErrors is returned.
func (s *Student) Set(field Field, raw string) error {
	next := *s

	switch field {
	case FieldFirstName:
		next.FirstName = raw
	case FieldLastName:
		next.LastName = raw
	case FieldDateOfBirth:
		next.DateOfBirth = raw
	case FieldGender:
		next.Gender = raw
	case FieldProgram:
		next.Program = raw
	case FieldGPA:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		next.GPA = v
	case FieldSemester:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		next.Semester = v
	case FieldNumCourses:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		next.NumCourses = v
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}

	if field.Numeric() {
		if err := validate.StructPartial(next, field.structField()); err != nil {
			return err
		}
	}

	*s = next
	return nil
}
