package memory

import (
	"testing"

	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/storage/storagetest"
	"github.com/aanand-mishra/enrollment-system/internal/types"
)

func TestMemory_Conformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return New() })
}

// assertConsistent checks that the slice and the map hold exactly the same
// records, as the same pointers.
func assertConsistent(t *testing.T, m *Memory) {
	t.Helper()
	if len(m.records) != len(m.byID) {
		t.Fatalf("slice has %d records, map has %d", len(m.records), len(m.byID))
	}
	for _, rec := range m.records {
		indexed, ok := m.byID[rec.ID]
		if !ok {
			t.Fatalf("id %d in slice but not in map", rec.ID)
		}
		if indexed != rec {
			t.Fatalf("id %d: slice and map point at different records", rec.ID)
		}
	}
}

func TestMemory_ContainersStayConsistent(t *testing.T) {
	m := New()
	assertConsistent(t, m)

	var ids []int64
	for i := 0; i < 4; i++ {
		id, err := m.CreateStudent(storagetest.Sample())
		if err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}
		ids = append(ids, id)
		assertConsistent(t, m)
	}

	if _, err := m.UpdateStudentField(ids[2], types.FieldSemester, "5"); err != nil {
		t.Fatalf("UpdateStudentField: %v", err)
	}
	assertConsistent(t, m)
	if m.records[2].Semester != 5 {
		t.Fatalf("update through map not visible in slice: %+v", m.records[2])
	}

	_, _ = m.UpdateStudentField(ids[2], types.FieldSemester, "0")
	assertConsistent(t, m)

	if err := m.DeleteStudentByID(ids[0]); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	assertConsistent(t, m)
	_ = m.DeleteStudentByID(ids[0])
	assertConsistent(t, m)

	if err := m.DeleteStudentByID(ids[3]); err != nil {
		t.Fatalf("DeleteStudentByID: %v", err)
	}
	assertConsistent(t, m)

	if m.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", m.Len())
	}
	if m.records[0].ID != ids[1] || m.records[1].ID != ids[2] {
		t.Fatalf("unexpected remaining order: %d, %d", m.records[0].ID, m.records[1].ID)
	}
}

func TestMemory_CreateCopiesInput(t *testing.T) {
	m := New()
	in := storagetest.Sample()
	id, err := m.CreateStudent(in)
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	in.FirstName = "Changed"
	if m.byID[id].FirstName != "Ada" {
		t.Fatalf("store aliases the caller's value")
	}
	if in.ID != 0 {
		t.Fatalf("CreateStudent must not write the id back into the caller's value")
	}
}
