// Package memory provides the default implementation of storage.Storage:
// an ordered slice of records plus a map from id to the same records.
//
// Both containers hold the same *types.Student pointers, so a change made
// through the map is visible through the slice. Every method updates both
// or neither.
//
// Memory is single-threaded: it performs no locking and must not be shared
// between goroutines.
package memory

import (
	"slices"

	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/types"
)

// Memory is the in-process record store.
type Memory struct {
	records []*types.Student         // insertion order
	byID    map[int64]*types.Student // index over records
	nextID  int64
}

// New returns an empty store whose first record will get
// storage.FirstStudentID.
func New() *Memory {
	return &Memory{
		records: make([]*types.Student, 0),
		byID:    make(map[int64]*types.Student),
		nextID:  storage.FirstStudentID,
	}
}

// CreateStudent validates student, stamps it with the next id, and appends
// it to both containers.
func (m *Memory) CreateStudent(student types.Student) (int64, error) {
	if err := storage.Validate(student); err != nil {
		return 0, err
	}

	rec := student
	rec.ID = m.nextID
	m.nextID++

	m.records = append(m.records, &rec)
	m.byID[rec.ID] = &rec

	return rec.ID, nil
}

// GetStudentByID returns a copy of the stored record.
func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	rec, ok := m.byID[id]
	if !ok {
		return types.Student{}, storage.NotFound(id)
	}
	return *rec, nil
}

// GetStudents returns copies of all records in insertion order.
func (m *Memory) GetStudents() ([]types.Student, error) {
	students := make([]types.Student, 0, len(m.records))
	for _, rec := range m.records {
		students = append(students, *rec)
	}
	return students, nil
}

// UpdateStudentField changes a single field of the record through the
// map; the slice observes the change because it shares the pointer.
func (m *Memory) UpdateStudentField(id int64, field types.Field, raw string) (types.Student, error) {
	rec, ok := m.byID[id]
	if !ok {
		return types.Student{}, storage.NotFound(id)
	}
	if err := storage.SetField(rec, field, raw); err != nil {
		return types.Student{}, err
	}
	return *rec, nil
}

// DeleteStudentByID removes the record from the slice and the map.
func (m *Memory) DeleteStudentByID(id int64) error {
	rec, ok := m.byID[id]
	if !ok {
		return storage.NotFound(id)
	}

	i := slices.Index(m.records, rec)
	if i >= 0 {
		m.records = slices.Delete(m.records, i, i+1)
	}
	delete(m.byID, id)

	return nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	return len(m.records)
}
