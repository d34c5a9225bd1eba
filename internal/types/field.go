package types

import (
	"fmt"
	"strings"
)

// Field selects one modifiable attribute of a Student.
// The numeric values match the entries of the "Select field to modify" menu.
// ID has no Field: it is assigned by storage and never changes.
type Field int

const (
	FieldFirstName Field = iota + 1
	FieldLastName
	FieldDateOfBirth
	FieldGender
	FieldGPA
	FieldSemester
	FieldProgram
	FieldNumCourses
)

type fieldSpec struct {
	name    string // snake_case, matches the json tag
	label   string // shown to the user
	goName  string // struct field name, as reported by validator
	numeric bool
}

var fieldSpecs = map[Field]fieldSpec{
	FieldFirstName:   {name: "first_name", label: "First Name", goName: "FirstName"},
	FieldLastName:    {name: "last_name", label: "Last Name", goName: "LastName"},
	FieldDateOfBirth: {name: "date_of_birth", label: "Date of Birth", goName: "DateOfBirth"},
	FieldGender:      {name: "gender", label: "Gender", goName: "Gender"},
	FieldGPA:         {name: "gpa", label: "GPA", goName: "GPA", numeric: true},
	FieldSemester:    {name: "semester", label: "Semester", goName: "Semester", numeric: true},
	FieldProgram:     {name: "program", label: "Program", goName: "Program"},
	FieldNumCourses:  {name: "num_courses", label: "Number of Courses", goName: "NumCourses", numeric: true},
}

// Fields returns every modifiable field in menu order.
func Fields() []Field {
	return []Field{
		FieldFirstName,
		FieldLastName,
		FieldDateOfBirth,
		FieldGender,
		FieldGPA,
		FieldSemester,
		FieldProgram,
		FieldNumCourses,
	}
}

// String returns the snake_case name, e.g. "num_courses".
func (f Field) String() string {
	if spec, ok := fieldSpecs[f]; ok {
		return spec.name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Label returns the human-readable name, e.g. "Number of Courses".
func (f Field) Label() string {
	return fieldSpecs[f].label
}

// Numeric reports whether values for f are parsed and range-checked.
func (f Field) Numeric() bool {
	return fieldSpecs[f].numeric
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	_, ok := fieldSpecs[f]
	return ok
}

func (f Field) structField() string {
	return fieldSpecs[f].goName
}

// FieldFromChoice maps a field-menu number (1..8) to its Field.
func FieldFromChoice(choice int) (Field, bool) {
	f := Field(choice)
	return f, f.Valid()
}

// FieldFromStructName maps a Go struct field name, as found in
// validator.FieldError.StructField(), back to its Field.
func FieldFromStructName(name string) (Field, bool) {
	for f, spec := range fieldSpecs {
		if spec.goName == name {
			return f, true
		}
	}
	return 0, false
}

// ParseField accepts the snake_case name of a field, case-insensitively.
func ParseField(name string) (Field, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields() {
		if fieldSpecs[f].name == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
