// Package storagetest holds the behavioural checks every storage.Storage
// backend has to pass. Backend test files call Run with a constructor.
package storagetest

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/types"
	"github.com/go-playground/validator/v10"
)

// Factory returns a new, empty backend. Cleanup belongs in t.Cleanup.
type Factory func(t *testing.T) storage.Storage

// Sample returns a valid record with gpa=3.5, semester=2, num_courses=4.
func Sample() types.Student {
	return types.Student{
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

// Run executes the full suite as subtests of t.
func Run(t *testing.T, newStorage Factory) {
	t.Run("IDsStartAt100001AndIncrement", func(t *testing.T) { testSequentialIDs(t, newStorage(t)) })
	t.Run("IDsNotReusedAfterRemove", func(t *testing.T) { testIDsNotReused(t, newStorage(t)) })
	t.Run("AddThenGet", func(t *testing.T) { testAddThenGet(t, newStorage(t)) })
	t.Run("AddIgnoresCallerID", func(t *testing.T) { testAddIgnoresCallerID(t, newStorage(t)) })
	t.Run("AddRejectsInvalid", func(t *testing.T) { testAddRejectsInvalid(t, newStorage(t)) })
	t.Run("AddAcceptsBoundaries", func(t *testing.T) { testAddAcceptsBoundaries(t, newStorage(t)) })
	t.Run("ListEmptyIsNotNil", func(t *testing.T) { testListEmpty(t, newStorage(t)) })
	t.Run("ListInsertionOrder", func(t *testing.T) { testListOrder(t, newStorage(t)) })
	t.Run("RemovePresent", func(t *testing.T) { testRemovePresent(t, newStorage(t)) })
	t.Run("RemoveAbsent", func(t *testing.T) { testRemoveAbsent(t, newStorage(t)) })
	t.Run("GetAbsent", func(t *testing.T) { testGetAbsent(t, newStorage(t)) })
	t.Run("ModifyEachField", func(t *testing.T) { testModifyEachField(t, newStorage(t)) })
	t.Run("ModifyRejectsOutOfRange", func(t *testing.T) { testModifyRejectsOutOfRange(t, newStorage(t)) })
	t.Run("ModifyRejectsWrongType", func(t *testing.T) { testModifyRejectsWrongType(t, newStorage(t)) })
	t.Run("ModifyAbsent", func(t *testing.T) { testModifyAbsent(t, newStorage(t)) })
	t.Run("ModifyUnknownField", func(t *testing.T) { testModifyUnknownField(t, newStorage(t)) })
	t.Run("ModifyVisibleInList", func(t *testing.T) { testModifyVisibleInList(t, newStorage(t)) })
	t.Run("GetReturnsCopy", func(t *testing.T) { testGetReturnsCopy(t, newStorage(t)) })
	t.Run("ScenarioAddAddRemove", func(t *testing.T) { testScenarioAddAddRemove(t, newStorage(t)) })
	t.Run("ScenarioRejectGPA", func(t *testing.T) { testScenarioRejectGPA(t, newStorage(t)) })
}

func mustCreate(t *testing.T, s storage.Storage, student types.Student) int64 {
	t.Helper()
	id, err := s.CreateStudent(student)
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	return id
}

func mustList(t *testing.T, s storage.Storage) []types.Student {
	t.Helper()
	list, err := s.GetStudents()
	if err != nil {
		t.Fatalf("GetStudents: %v", err)
	}
	return list
}

func mustGet(t *testing.T, s storage.Storage, id int64) types.Student {
	t.Helper()
	got, err := s.GetStudentByID(id)
	if err != nil {
		t.Fatalf("GetStudentByID(%d): %v", id, err)
	}
	return got
}

func ids(list []types.Student) []int64 {
	out := make([]int64, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func testSequentialIDs(t *testing.T, s storage.Storage) {
	for i := 0; i < 5; i++ {
		want := storage.FirstStudentID + int64(i)
		if got := mustCreate(t, s, Sample()); got != want {
			t.Fatalf("add #%d: expected id %d, got %d", i+1, want, got)
		}
	}
}

func testIDsNotReused(t *testing.T, s storage.Storage) {
	a := mustCreate(t, s, Sample())
	b := mustCreate(t, s, Sample())
	if err := s.DeleteStudentByID(b); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	if err := s.DeleteStudentByID(a); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	if got := mustCreate(t, s, Sample()); got != b+1 {
		t.Fatalf("expected id %d after removals, got %d", b+1, got)
	}
}

func testAddThenGet(t *testing.T, s storage.Storage) {
	before := len(mustList(t, s))

	in := Sample()
	id := mustCreate(t, s, in)

	want := in
	want.ID = id
	if got := mustGet(t, s, id); !reflect.DeepEqual(got, want) {
		t.Fatalf("stored record mismatch:\n got %+v\nwant %+v", got, want)
	}
	if after := len(mustList(t, s)); after != before+1 {
		t.Fatalf("expected list length %d, got %d", before+1, after)
	}
}

func testAddIgnoresCallerID(t *testing.T, s storage.Storage) {
	in := Sample()
	in.ID = 42
	if id := mustCreate(t, s, in); id != storage.FirstStudentID {
		t.Fatalf("expected store-assigned id %d, got %d", storage.FirstStudentID, id)
	}
	if _, err := s.GetStudentByID(42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected caller id to be ignored, got err=%v", err)
	}
}

func testAddRejectsInvalid(t *testing.T, s storage.Storage) {
	cases := []struct {
		name  string
		mut   func(*types.Student)
		field types.Field
	}{
		{"gpa below zero", func(st *types.Student) { st.GPA = -0.01 }, types.FieldGPA},
		{"gpa above four", func(st *types.Student) { st.GPA = 4.01 }, types.FieldGPA},
		{"semester zero", func(st *types.Student) { st.Semester = 0 }, types.FieldSemester},
		{"negative courses", func(st *types.Student) { st.NumCourses = -1 }, types.FieldNumCourses},
	}
	for _, tc := range cases {
		in := Sample()
		tc.mut(&in)

		_, err := s.CreateStudent(in)
		if !errors.Is(err, storage.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
		var verr *storage.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("%s: expected ValidationError on %s, got %v", tc.name, tc.field, err)
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("%s: expected validator errors in chain, got %v", tc.name, err)
		}
	}

	if n := len(mustList(t, s)); n != 0 {
		t.Fatalf("rejected adds must not store anything, have %d records", n)
	}
	if id := mustCreate(t, s, Sample()); id != storage.FirstStudentID {
		t.Fatalf("rejected adds must not consume ids, got %d", id)
	}
}

func testAddAcceptsBoundaries(t *testing.T, s storage.Storage) {
	low := Sample()
	low.GPA, low.Semester, low.NumCourses = 0, 1, 0
	high := Sample()
	high.GPA = 4

	mustCreate(t, s, low)
	mustCreate(t, s, high)
}

func testListEmpty(t *testing.T, s storage.Storage) {
	list := mustList(t, s)
	if list == nil {
		t.Fatalf("expected empty non-nil slice")
	}
	if len(list) != 0 {
		t.Fatalf("expected no records, got %d", len(list))
	}
}

func testListOrder(t *testing.T, s storage.Storage) {
	var want []int64
	for _, name := range []string{"Cy", "Ann", "Bo"} {
		in := Sample()
		in.FirstName = name
		want = append(want, mustCreate(t, s, in))
	}

	list := mustList(t, s)
	if got := ids(list); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected insertion order %v, got %v", want, got)
	}
	if list[0].FirstName != "Cy" || list[2].FirstName != "Bo" {
		t.Fatalf("records out of order: %+v", list)
	}
}

func testRemovePresent(t *testing.T, s storage.Storage) {
	a := mustCreate(t, s, Sample())
	b := mustCreate(t, s, Sample())
	c := mustCreate(t, s, Sample())

	if err := s.DeleteStudentByID(b); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	if _, err := s.GetStudentByID(b); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if got := ids(mustList(t, s)); !reflect.DeepEqual(got, []int64{a, c}) {
		t.Fatalf("expected %v after remove, got %v", []int64{a, c}, got)
	}
}

func testRemoveAbsent(t *testing.T, s storage.Storage) {
	mustCreate(t, s, Sample())
	before := mustList(t, s)

	err := s.DeleteStudentByID(999999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if after := mustList(t, s); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed by failed remove:\nbefore %+v\nafter  %+v", before, after)
	}
}

func testGetAbsent(t *testing.T, s storage.Storage) {
	if _, err := s.GetStudentByID(storage.FirstStudentID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
}

func testModifyEachField(t *testing.T, s storage.Storage) {
	cases := []struct {
		field types.Field
		raw   string
		apply func(*types.Student)
	}{
		{types.FieldFirstName, "Grace", func(st *types.Student) { st.FirstName = "Grace" }},
		{types.FieldLastName, "Hopper", func(st *types.Student) { st.LastName = "Hopper" }},
		{types.FieldDateOfBirth, "not-a-date", func(st *types.Student) { st.DateOfBirth = "not-a-date" }},
		{types.FieldGender, "", func(st *types.Student) { st.Gender = "" }},
		{types.FieldGPA, "4.0", func(st *types.Student) { st.GPA = 4 }},
		{types.FieldSemester, "7", func(st *types.Student) { st.Semester = 7 }},
		{types.FieldProgram, "Data Analytics", func(st *types.Student) { st.Program = "Data Analytics" }},
		{types.FieldNumCourses, "0", func(st *types.Student) { st.NumCourses = 0 }},
	}

	for _, tc := range cases {
		id := mustCreate(t, s, Sample())
		want := mustGet(t, s, id)
		tc.apply(&want)

		got, err := s.UpdateStudentField(id, tc.field, tc.raw)
		if err != nil {
			t.Fatalf("modify %s: %v", tc.field, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("modify %s returned:\n got %+v\nwant %+v", tc.field, got, want)
		}
		if stored := mustGet(t, s, id); !reflect.DeepEqual(stored, want) {
			t.Fatalf("modify %s stored:\n got %+v\nwant %+v", tc.field, stored, want)
		}
	}
}

func testModifyRejectsOutOfRange(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, Sample())
	before := mustGet(t, s, id)

	cases := []struct {
		field types.Field
		raw   string
	}{
		{types.FieldGPA, "5.0"},
		{types.FieldGPA, "-1"},
		{types.FieldSemester, "0"},
		{types.FieldNumCourses, "-3"},
	}
	for _, tc := range cases {
		_, err := s.UpdateStudentField(id, tc.field, tc.raw)
		var verr *storage.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("modify %s=%s: expected ValidationError, got %v", tc.field, tc.raw, err)
		}
		if after := mustGet(t, s, id); !reflect.DeepEqual(after, before) {
			t.Fatalf("modify %s=%s changed the record: %+v", tc.field, tc.raw, after)
		}
	}
}

func testModifyRejectsWrongType(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, Sample())
	before := mustGet(t, s, id)

	for _, f := range []types.Field{types.FieldGPA, types.FieldSemester, types.FieldNumCourses} {
		_, err := s.UpdateStudentField(id, f, "abc")
		if !errors.Is(err, storage.ErrValidation) {
			t.Fatalf("modify %s=abc: expected ErrValidation, got %v", f, err)
		}
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) {
			t.Fatalf("modify %s=abc: expected *strconv.NumError in chain, got %v", f, err)
		}
	}
	if after := mustGet(t, s, id); !reflect.DeepEqual(after, before) {
		t.Fatalf("wrong-type modify changed the record: %+v", after)
	}
}

func testModifyAbsent(t *testing.T, s storage.Storage) {
	_, err := s.UpdateStudentField(123, types.FieldFirstName, "X")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testModifyUnknownField(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, Sample())
	before := mustGet(t, s, id)

	_, err := s.UpdateStudentField(id, types.Field(99), "x")
	if !errors.Is(err, types.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if after := mustGet(t, s, id); !reflect.DeepEqual(after, before) {
		t.Fatalf("unknown field changed the record: %+v", after)
	}
}

func testModifyVisibleInList(t *testing.T, s storage.Storage) {
	mustCreate(t, s, Sample())
	id := mustCreate(t, s, Sample())

	if _, err := s.UpdateStudentField(id, types.FieldProgram, "Nursing"); err != nil {
		t.Fatalf("UpdateStudentField: %v", err)
	}
	list := mustList(t, s)
	if list[1].ID != id || list[1].Program != "Nursing" {
		t.Fatalf("modify not visible through listing: %+v", list[1])
	}
	if list[0].Program != Sample().Program {
		t.Fatalf("modify leaked into another record: %+v", list[0])
	}
}

func testGetReturnsCopy(t *testing.T, s storage.Storage) {
	id := mustCreate(t, s, Sample())

	got := mustGet(t, s, id)
	got.FirstName = "Mallory"
	list := mustList(t, s)
	list[0].LastName = "Mallory"

	if stored := mustGet(t, s, id); stored.FirstName != "Ada" || stored.LastName != "Lovelace" {
		t.Fatalf("store mutated through a returned value: %+v", stored)
	}
}

func testScenarioAddAddRemove(t *testing.T, s storage.Storage) {
	first := mustCreate(t, s, Sample())
	if first != 100001 {
		t.Fatalf("expected 100001, got %d", first)
	}
	if got := ids(mustList(t, s)); !reflect.DeepEqual(got, []int64{100001}) {
		t.Fatalf("expected [100001], got %v", got)
	}

	second := mustCreate(t, s, Sample())
	if second != 100002 {
		t.Fatalf("expected 100002, got %d", second)
	}

	if err := s.DeleteStudentByID(100001); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	if got := ids(mustList(t, s)); !reflect.DeepEqual(got, []int64{100002}) {
		t.Fatalf("expected [100002], got %v", got)
	}
	if _, err := s.GetStudentByID(100001); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 100001, got %v", err)
	}
}

func testScenarioRejectGPA(t *testing.T, s storage.Storage) {
	mustCreate(t, s, Sample())
	mustCreate(t, s, Sample())

	_, err := s.UpdateStudentField(100002, types.FieldGPA, "5.0")
	if !errors.Is(err, storage.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := mustGet(t, s, 100002); got.GPA != 3.5 {
		t.Fatalf("expected gpa to stay 3.5, got %v", got.GPA)
	}
}
