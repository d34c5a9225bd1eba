package types

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
)

func sample() Student {
	return Student{
		ID:          100001,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: "1815-12-10",
		Gender:      "F",
		GPA:         3.5,
		Semester:    2,
		Program:     "Software Development",
		NumCourses:  4,
	}
}

func TestValidatePredicates_Bounds(t *testing.T) {
	for _, v := range []float64{0, 0.01, 2, 3.99, 4} {
		if err := ValidateGPA(v); err != nil {
			t.Fatalf("ValidateGPA(%v): unexpected error %v", v, err)
		}
	}
	for _, v := range []float64{-0.01, 4.01, 100, math.NaN(), math.Inf(1)} {
		if err := ValidateGPA(v); err == nil {
			t.Fatalf("ValidateGPA(%v): expected error", v)
		}
	}

	if err := ValidateSemester(1); err != nil {
		t.Fatalf("ValidateSemester(1): %v", err)
	}
	if err := ValidateSemester(0); err == nil {
		t.Fatalf("ValidateSemester(0): expected error")
	}

	if err := ValidateNumCourses(0); err != nil {
		t.Fatalf("ValidateNumCourses(0): %v", err)
	}
	if err := ValidateNumCourses(-1); err == nil {
		t.Fatalf("ValidateNumCourses(-1): expected error")
	}
}

func TestValidatePredicates_ReportStructField(t *testing.T) {
	err := ValidateSemester(-2)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("expected one validator error, got %v", err)
	}
	if verrs[0].StructField() != "Semester" {
		t.Fatalf("expected Semester, got %q", verrs[0].StructField())
	}
}

func TestStudentValidate_IgnoresFreeText(t *testing.T) {
	st := Student{Semester: 1}
	if err := st.Validate(); err != nil {
		t.Fatalf("empty text fields and zero gpa/courses must be valid: %v", err)
	}

	st.DateOfBirth = "sometime in spring"
	if err := st.Validate(); err != nil {
		t.Fatalf("date of birth is not format-checked: %v", err)
	}
}

func TestStudentValidate_ReportsEveryBadField(t *testing.T) {
	st := sample()
	st.GPA, st.Semester, st.NumCourses = 9, 0, -1

	var verrs validator.ValidationErrors
	if err := st.Validate(); !errors.As(err, &verrs) {
		t.Fatalf("expected validator errors, got %v", err)
	}
	if len(verrs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestSet_TextFieldsVerbatim(t *testing.T) {
	st := sample()
	cases := map[Field]string{
		FieldFirstName:   "  Grace ",
		FieldLastName:    "",
		FieldDateOfBirth: "12/09/1906",
		FieldGender:      "X",
		FieldProgram:     "Nursing",
	}
	for f, raw := range cases {
		if err := st.Set(f, raw); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}
	if st.FirstName != "  Grace " || st.LastName != "" || st.DateOfBirth != "12/09/1906" ||
		st.Gender != "X" || st.Program != "Nursing" {
		t.Fatalf("text fields not stored verbatim: %+v", st)
	}
}

func TestSet_NumericFieldsParsed(t *testing.T) {
	st := sample()
	if err := st.Set(FieldGPA, " 2.75 "); err != nil {
		t.Fatalf("Set gpa: %v", err)
	}
	if err := st.Set(FieldSemester, "3"); err != nil {
		t.Fatalf("Set semester: %v", err)
	}
	if err := st.Set(FieldNumCourses, "0"); err != nil {
		t.Fatalf("Set num_courses: %v", err)
	}
	if st.GPA != 2.75 || st.Semester != 3 || st.NumCourses != 0 {
		t.Fatalf("numeric fields not parsed: %+v", st)
	}
}

func TestSet_RejectsLeaveRecordUnchanged(t *testing.T) {
	cases := []struct {
		field   Field
		raw     string
		wantNum bool
	}{
		{FieldGPA, "5.0", false},
		{FieldGPA, "-0.5", false},
		{FieldGPA, "three", true},
		{FieldSemester, "0", false},
		{FieldSemester, "2.5", true},
		{FieldNumCourses, "-1", false},
		{FieldNumCourses, "", true},
	}

	for _, tc := range cases {
		st := sample()
		err := st.Set(tc.field, tc.raw)
		if err == nil {
			t.Fatalf("Set(%s, %q): expected error", tc.field, tc.raw)
		}

		var numErr *strconv.NumError
		if got := errors.As(err, &numErr); got != tc.wantNum {
			t.Fatalf("Set(%s, %q): parse error = %v, want %v (err=%v)", tc.field, tc.raw, got, tc.wantNum, err)
		}
		if st != sample() {
			t.Fatalf("Set(%s, %q) changed the record: %+v", tc.field, tc.raw, st)
		}
	}
}

func TestSet_UnknownField(t *testing.T) {
	st := sample()
	if err := st.Set(Field(0), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := st.Set(Field(9), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if st != sample() {
		t.Fatalf("record changed: %+v", st)
	}
}
