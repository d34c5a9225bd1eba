// Package sqlite provides an implementation of the storage.Storage
// interface on top of an in-memory SQLite database, using Go's standard
// database/sql package.
//
// The database lives only inside the process (DSN ":memory:"): nothing is
// written to disk and everything is discarded on Close or exit.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/enrollment-system/internal/storage"
	"github.com/aanand-mishra/enrollment-system/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// dsn opens a private in-memory database. Each connection to ":memory:"
// gets its own empty database, so the pool is capped at one connection.
const dsn = ":memory:"

// studentColumns is the column list shared by every SELECT; Scan order in
// scanStudent must match it.
const studentColumns = "id, first_name, last_name, date_of_birth, gender, gpa, semester, program, num_courses"

// SQLite is a storage.Storage backed by *sql.DB.
type SQLite struct {
	Db *sql.DB
}

// New opens the in-memory database, creates the students table, and seeds
// the AUTOINCREMENT counter so that the first row gets
// storage.FirstStudentID.
func New() (*SQLite, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// AUTOINCREMENT guarantees ids are never reused after a DELETE,
	// unlike a plain INTEGER PRIMARY KEY.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name    TEXT    NOT NULL,
			last_name     TEXT    NOT NULL,
			date_of_birth TEXT    NOT NULL,
			gender        TEXT    NOT NULL,
			gpa           REAL    NOT NULL,
			semester      INTEGER NOT NULL,
			program       TEXT    NOT NULL,
			num_courses   INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	// sqlite_sequence holds the last id handed out per AUTOINCREMENT table.
	_, err = db.Exec(
		"INSERT INTO sqlite_sequence (name, seq) VALUES ('students', ?)",
		storage.FirstStudentID-1,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: seed sequence: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection and with it the whole database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateStudent validates the record and inserts it, returning the id
// SQLite assigned.
func (s *SQLite) CreateStudent(student types.Student) (int64, error) {
	if err := storage.Validate(student); err != nil {
		return 0, err
	}

	stmt, err := s.Db.Prepare(`
		INSERT INTO students
			(first_name, last_name, date_of_birth, gender, gpa, semester, program, num_courses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		student.FirstName,
		student.LastName,
		student.DateOfBirth,
		student.Gender,
		student.GPA,
		student.Semester,
		student.Program,
		student.NumCourses,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return lastID, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.DateOfBirth,
		&student.Gender,
		&student.GPA,
		&student.Semester,
		&student.Program,
		&student.NumCourses,
	)
	return student, err
}

// GetStudentByID fetches exactly one row matched by primary key.
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT " + studentColumns + " FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.NotFound(id)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all rows ordered by id, which is insertion order
// because ids only ever grow.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT " + studentColumns + " FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentField loads the row, applies the single-field change in Go
// so the validation rules match the memory backend, and writes the row
// back.
func (s *SQLite) UpdateStudentField(id int64, field types.Field, raw string) (types.Student, error) {
	student, err := s.GetStudentByID(id)
	if err != nil {
		return types.Student{}, err
	}

	if err := storage.SetField(&student, field, raw); err != nil {
		return types.Student{}, err
	}

	stmt, err := s.Db.Prepare(`
		UPDATE students SET
			first_name = ?, last_name = ?, date_of_birth = ?, gender = ?,
			gpa = ?, semester = ?, program = ?, num_courses = ?
		WHERE id = ?
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentField: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		student.FirstName,
		student.LastName,
		student.DateOfBirth,
		student.Gender,
		student.GPA,
		student.Semester,
		student.Program,
		student.NumCourses,
		id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentField: exec: %w", err)
	}

	return s.GetStudentByID(id)
}

// DeleteStudentByID removes a row by primary key.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return storage.NotFound(id)
	}

	return nil
}
