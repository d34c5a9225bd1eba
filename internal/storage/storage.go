// Package storage defines the Storage interface, the contract that every
// record backend must satisfy, together with the two error kinds a backend
// may report: NotFound and Validation.
//
// Console handlers depend only on this interface. The memory backend is
// the default; the sqlite backend keeps the same guarantees on top of an
// in-memory SQLite database.
package storage

import (
	"errors"
	"fmt"

	"github.com/aanand-mishra/enrollment-system/internal/types"
	"github.com/go-playground/validator/v10"
)

// FirstStudentID is the id given to the first record a store creates.
// Every later record gets the previous id plus one; ids are never reused.
const FirstStudentID int64 = 100001

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrValidation is returned when a value is of the wrong type or
	// outside its allowed range. The record is left unchanged.
	ErrValidation = errors.New("invalid student field")
)

// ValidationError reports which field was rejected and why.
//
// Err is either a *strconv.NumError (wrong type) or a
// validator.ValidationErrors (out of range). Both ErrValidation and Err
// are reachable through errors.Is / errors.As.
type ValidationError struct {
	Field types.Field
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// NotFound wraps ErrNotFound with the id that was looked up.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Storage is the record store contract.
// Any concrete type that implements ALL of these methods satisfies this
// interface.
type Storage interface {
	// CreateStudent validates student, assigns the next id, and stores it.
	// Any ID already set on student is ignored. On a *ValidationError no
	// id is consumed.
	CreateStudent(student types.Student) (int64, error)

	// GetStudentByID returns a copy of the record, or an error wrapping
	// ErrNotFound.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every record in insertion order.
	// Returns an empty slice (not nil) when there are no students.
	GetStudents() ([]types.Student, error)

	// UpdateStudentField parses raw for field and updates that single
	// field in place. It returns the updated record, an error wrapping
	// ErrNotFound, or a *ValidationError leaving the record untouched.
	UpdateStudentField(id int64, field types.Field, raw string) (types.Student, error)

	// DeleteStudentByID removes a record, or returns an error wrapping
	// ErrNotFound and changes nothing.
	DeleteStudentByID(id int64) error
}

// Validate runs the record-level checks and converts a failure into a
// *ValidationError naming the first rejected field.
func Validate(student types.Student) error {
	err := student.Validate()
	if err == nil {
		return nil
	}
	return &ValidationError{Field: firstInvalidField(err), Err: err}
}

// SetField applies types.Student.Set and converts a failure into a
// *ValidationError. Every backend routes modify through it.
func SetField(student *types.Student, field types.Field, raw string) error {
	if err := student.Set(field, raw); err != nil {
		return &ValidationError{Field: field, Err: err}
	}
	return nil
}

func firstInvalidField(err error) types.Field {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return 0
	}
	for _, fe := range verrs {
		if f, ok := types.FieldFromStructName(fe.StructField()); ok {
			return f
		}
	}
	return 0
}
