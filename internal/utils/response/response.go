// Package response turns errors from the record store into the sentences
// shown to the console user.
//
// Every handler reports rejected input the same way. Rather than repeating
// the error inspection in each handler, it is centralised here.
package response

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/types"
	"github.com/go-playground/validator/v10"
)

// User-facing messages.
const (
	MsgInvalidGPA       = "Invalid GPA. Please enter a value between 0.0 and 4.0."
	MsgInvalidSemester  = "Invalid semester. Please enter a positive number."
	MsgInvalidCourses   = "Invalid number. Please enter a non-negative number."
	MsgNotNumeric       = "Invalid input. Please enter a numeric value."
	MsgNotInteger       = "Invalid input. Please enter an integer."
	MsgInvalidInput     = "Invalid input."
	MsgRecordNotFound   = "No record found with that Student ID."
	MsgStudentNotFound  = "No student found with that Student ID."
	MsgNoRecords        = "No student records found."
	MsgInvalidChoice    = "Invalid choice."
	MsgInvalidMenuInput = "Invalid input. Please enter a number."
	MsgInvalidOption    = "Invalid option. Please try again."
)

// ─────────────────────────────────────────────────────────────────────────────
// GeneralError renders any error that has no dedicated message.
// ─────────────────────────────────────────────────────────────────────────────
func GeneralError(err error) string {
	return fmt.Sprintf("Error: %s", err.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable message.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. Known fields get their fixed sentence; anything else falls
// back to a sentence built from the broken tag.
//
// Example output:
//
//	Invalid GPA. Please enter a value between 0.0 and 4.0.
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) string {
	var errMessages []string

	for _, e := range errs {
		field, _ := types.FieldFromStructName(e.StructField())
		switch field {
		case types.FieldGPA:
			errMessages = append(errMessages, MsgInvalidGPA)
		case types.FieldSemester:
			errMessages = append(errMessages, MsgInvalidSemester)
		case types.FieldNumCourses:
			errMessages = append(errMessages, MsgInvalidCourses)
		default:
			switch e.ActualTag() {
			case "required":
				errMessages = append(errMessages,
					fmt.Sprintf("field %s is required", e.Field()))
			case "gte", "lte", "min", "max":
				errMessages = append(errMessages,
					fmt.Sprintf("field %s is out of range", e.Field()))
			default:
				errMessages = append(errMessages,
					fmt.Sprintf("field %s is invalid", e.Field()))
			}
		}
	}

	return strings.Join(errMessages, " ")
}

// ─────────────────────────────────────────────────────────────────────────────
// InvalidInput picks the message for a value the store rejected.
//
//	*strconv.NumError         → "please enter a numeric value / an integer"
//	validator.ValidationErrors → the range sentence from ValidationError
//	anything else             → GeneralError
//
// ─────────────────────────────────────────────────────────────────────────────
func InvalidInput(err error) string {
	var field types.Field
	var verr *storage.ValidationError
	if errors.As(err, &verr) {
		field = verr.Field
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if field == types.FieldGPA {
			return MsgNotNumeric
		}
		return MsgNotInteger
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return ValidationError(fieldErrs)
	}

	return GeneralError(err)
}
