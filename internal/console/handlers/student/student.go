// Package student contains the console handlers for the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────
// console.Menu expects handlers with the signature:
//
//	func(*console.Session) error
//
// That signature has no room for the record store, so each handler is
// built by a factory that accepts the store and returns the closure:
//
//	menu.Handle("Add Student Record", student.New(store))
//	//                                ^^^^^^^^^^^^^^^^^
//	//             New(store) is called ONCE at startup.
//	//             The returned func runs EVERY time the item is chosen.
package student

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aanand-mishra/enrollment-system/internal/console"
	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/types"
	"github.com/aanand-mishra/enrollment-system/internal/utils/response"
)

// addPrompts are shown, in types.Fields() order, when creating a record.
var addPrompts = map[types.Field]string{
	types.FieldFirstName:   "Enter First Name: ",
	types.FieldLastName:    "Enter Last Name: ",
	types.FieldDateOfBirth: "Enter Date of Birth (YYYY-MM-DD): ",
	types.FieldGender:      "Enter Gender: ",
	types.FieldGPA:         "Enter GPA from Previous Institution: ",
	types.FieldSemester:    "Enter Current Semester: ",
	types.FieldProgram:     "Enter Program: ",
	types.FieldNumCourses:  "Enter Number of Courses: ",
}

// promptUntilValid asks for a value until apply accepts it. A rejection
// wrapping storage.ErrValidation is explained and asked again; any other
// error (including io.EOF) is returned.
func promptUntilValid(s *console.Session, label string, apply func(raw string) error) error {
	for {
		raw, err := s.Prompt(label)
		if err != nil {
			return err
		}

		err = apply(raw)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrValidation) {
			return err
		}
		s.Println(response.InvalidInput(err))
	}
}

// promptID reads a student id. ok is false when the answer was not an
// integer, in which case the user has already been told.
func promptID(s *console.Session, label string) (id int64, ok bool, err error) {
	id, err = s.PromptInt(label)
	if err == nil {
		return id, true, nil
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		s.Println(response.MsgInvalidInput)
		return 0, false, nil
	}
	return 0, false, err
}

func printStudent(s *console.Session, st types.Student) {
	s.Printf("Student ID: %d\n", st.ID)
	s.Printf("Name: %s %s\n", st.FirstName, st.LastName)
	s.Printf("DOB: %s\n", st.DateOfBirth)
	s.Printf("Gender: %s\n", st.Gender)
	s.Printf("GPA: %.2f\n", st.GPA)
	s.Printf("Semester: %d\n", st.Semester)
	s.Printf("Program: %s\n", st.Program)
	s.Printf("Courses: %d\n", st.NumCourses)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles "Add Student Record".
// Prompts for every field, re-asking a numeric field until it is in range,
// then stores the record and reports the assigned id.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) console.HandlerFunc {
	return func(s *console.Session) error {
		slog.Info("creating a student")

		var st types.Student
		for _, field := range types.Fields() {
			err := promptUntilValid(s, addPrompts[field], func(raw string) error {
				return storage.SetField(&st, field, raw)
			})
			if err != nil {
				return err
			}
		}

		id, err := store.CreateStudent(st)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			if errors.Is(err, storage.ErrValidation) {
				s.Println(response.InvalidInput(err))
				return nil
			}
			return fmt.Errorf("create student: %w", err)
		}

		slog.Info("student created", slog.Int64("id", id))
		s.Printf("Student record added successfully. Assigned Student ID: %d\n", id)
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Modify handles "Modify Student Record".
// Looks the record up, lets the user pick one field, and keeps asking for
// a new value until the store accepts it.
// ─────────────────────────────────────────────────────────────────────────────
func Modify(store storage.Storage) console.HandlerFunc {
	return func(s *console.Session) error {
		id, ok, err := promptID(s, "Enter Student ID to modify: ")
		if err != nil || !ok {
			return err
		}
		slog.Info("modifying a student", slog.Int64("id", id))

		st, err := store.GetStudentByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			s.Println(response.MsgRecordNotFound)
			return nil
		}
		if err != nil {
			return fmt.Errorf("modify student %d: %w", id, err)
		}

		s.Printf("Record found for ID %d: %s %s\n", st.ID, st.FirstName, st.LastName)
		s.Println("Select field to modify:")
		for _, f := range types.Fields() {
			s.Printf("%d. %s\n", int(f), f.Label())
		}

		choice, ok, err := promptID(s, "Enter choice: ")
		if err != nil || !ok {
			return err
		}
		field, valid := types.FieldFromChoice(int(choice))
		if !valid {
			s.Println(response.MsgInvalidChoice)
			return nil
		}

		err = promptUntilValid(s, "Enter new "+field.Label()+": ", func(raw string) error {
			_, err := store.UpdateStudentField(id, field, raw)
			return err
		})
		if err != nil {
			return err
		}

		slog.Info("student updated",
			slog.Int64("id", id),
			slog.String("field", field.String()))
		s.Println("Record updated successfully.")
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles "Remove Student Record".
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) console.HandlerFunc {
	return func(s *console.Session) error {
		id, ok, err := promptID(s, "Enter Student ID of the student to remove: ")
		if err != nil || !ok {
			return err
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		err = store.DeleteStudentByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			s.Println(response.MsgStudentNotFound)
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete student %d: %w", id, err)
		}

		slog.Info("student deleted", slog.Int64("id", id))
		s.Printf("Student record with ID %d removed successfully.\n", id)
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles "Display Student Record".
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) console.HandlerFunc {
	return func(s *console.Session) error {
		id, ok, err := promptID(s, "Enter Student ID to display: ")
		if err != nil || !ok {
			return err
		}
		slog.Info("getting a student", slog.Int64("id", id))

		st, err := store.GetStudentByID(id)
		if errors.Is(err, storage.ErrNotFound) {
			s.Println(response.MsgStudentNotFound)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get student %d: %w", id, err)
		}

		s.Println("----- Student Information -----")
		printStudent(s, st)
		s.Println("-------------------------------")
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles "Display All Student Records".
// An empty store is reported explicitly rather than printing nothing.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) console.HandlerFunc {
	return func(s *console.Session) error {
		slog.Info("getting all students")

		students, err := store.GetStudents()
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}

		if len(students) == 0 {
			s.Println(response.MsgNoRecords)
			return nil
		}

		s.Println("----- Student Records -----")
		for _, st := range students {
			printStudent(s, st)
			s.Println("----------------------------")
		}
		return nil
	}
}
