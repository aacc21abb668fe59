// Package student defines the student record, its grid columns and the
// rules of the add/edit form.
package student

import (
	"fmt"
	"strconv"

	"github.com/getmockd/roster/pkg/grid"
)

// Field keys. They double as JSON names and backend query parameters.
const (
	FieldID         = "id"
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldDepartment = "department"
	FieldGPA        = "gpa"
)

// ExcellentGPA is the lower GPA bound of excellent students and honor
// candidates.
const ExcellentGPA = 90

// Student is a record as served by the backend.
type Student struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	GPA        float64 `json:"gpa"`
}

// NewStudent is a Student without its server-assigned ID.
type NewStudent struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	GPA        float64 `json:"gpa"`
}

// Field implements grid.Record.
func (s Student) Field(key string) any {
	switch key {
	case FieldID:
		return s.ID
	case FieldFirstName:
		return s.FirstName
	case FieldLastName:
		return s.LastName
	case FieldEmail:
		return s.Email
	case FieldDepartment:
		return s.Department
	case FieldGPA:
		return s.GPA
	}
	return nil
}

// Map returns the record keyed by field name.
func (s Student) Map() map[string]any {
	return map[string]any{
		FieldID:         s.ID,
		FieldFirstName:  s.FirstName,
		FieldLastName:   s.LastName,
		FieldEmail:      s.Email,
		FieldDepartment: s.Department,
		FieldGPA:        s.GPA,
	}
}

// Input returns the editable part of s.
func (s Student) Input() NewStudent {
	return NewStudent{
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Email:      s.Email,
		Department: s.Department,
		GPA:        s.GPA,
	}
}

// FullName is "First Last".
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s Student) String() string {
	return fmt.Sprintf("#%d %s <%s>", s.ID, s.FullName(), s.Email)
}

// FormatGPA renders a GPA without trailing zeros.
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'f', -1, 64)
}

// AllColumns are the columns of the students grids.
var AllColumns = []grid.Column{
	{Key: FieldID, Header: "ID", Sortable: true, Filterable: true},
	{Key: FieldFirstName, Header: "First Name", Sortable: true, Filterable: true},
	{Key: FieldLastName, Header: "Last Name", Sortable: true, Filterable: true},
	{Key: FieldEmail, Header: "Email", Sortable: true, Filterable: true},
	{Key: FieldDepartment, Header: "Department", Sortable: true, Filterable: true},
	{Key: FieldGPA, Header: "GPA", Sortable: true, Filterable: true},
}

// HonorColumns are the columns of the honor candidates grid.
var HonorColumns = []grid.Column{
	{Key: FieldEmail, Header: "Email", Sortable: true, Filterable: true},
	{Key: FieldDepartment, Header: "Department", Sortable: true, Filterable: true},
	{Key: FieldGPA, Header: "GPA", Sortable: true, Filterable: true},
}

// IsField reports whether key names a Student field.
func IsField(key string) bool {
	switch key {
	case FieldID, FieldFirstName, FieldLastName, FieldEmail, FieldDepartment, FieldGPA:
		return true
	}
	return false
}
