package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateRange is returned when dateFrom falls after dateTo.
var ErrInvalidDateRange = errors.New("dateFrom cannot be greater than dateTo")

var validate = validator.New()

// Employee is the stored document. JSON and bson names match so records
// round-trip unchanged between the API and the collection.
type Employee struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	EmployeeID    string             `json:"employeeId" bson:"employeeId" validate:"required"`
	FirstName     string             `json:"firstName" bson:"firstName" validate:"required"`
	LastName      string             `json:"lastName" bson:"lastName" validate:"required"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber   string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	DateOfBirth   *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Department    string             `json:"department,omitempty" bson:"department,omitempty"`
	Position      string             `json:"position,omitempty" bson:"position,omitempty"`
	DateOfJoining *time.Time         `json:"dateOfJoining,omitempty" bson:"dateOfJoining,omitempty"`
	Salary        *float64           `json:"salary,omitempty" bson:"salary,omitempty" validate:"omitempty,gte=0"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the full record against the schema rules.
func (e *Employee) Validate() error {
	return validate.Struct(e)
}

type CreateEmployeeDTO struct {
	EmployeeID    string   `json:"employeeId" binding:"required"`
	FirstName     string   `json:"firstName" binding:"required"`
	LastName      string   `json:"lastName" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	PhoneNumber   string   `json:"phoneNumber"`
	DateOfBirth   string   `json:"dateOfBirth"` // YYYY-MM-DD or RFC 3339
	Department    string   `json:"department"`
	Position      string   `json:"position"`
	DateOfJoining string   `json:"dateOfJoining"` // YYYY-MM-DD or RFC 3339
	Salary        *float64 `json:"salary" binding:"omitempty,gte=0"`
}

// ToEmployee builds a new record with a fresh ObjectID. Timestamps are left
// for the repository to stamp.
func (in CreateEmployeeDTO) ToEmployee() (Employee, error) {
	e := Employee{
		ID:          primitive.NewObjectID(),
		EmployeeID:  strings.TrimSpace(in.EmployeeID),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       normalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Department:  strings.TrimSpace(in.Department),
		Position:    strings.TrimSpace(in.Position),
		Salary:      in.Salary,
	}
	var err error
	if e.DateOfBirth, err = parseOptionalDate("dateOfBirth", in.DateOfBirth); err != nil {
		return Employee{}, err
	}
	if e.DateOfJoining, err = parseOptionalDate("dateOfJoining", in.DateOfJoining); err != nil {
		return Employee{}, err
	}
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// UpdateEmployeeDTO carries a partial update: nil fields are left untouched.
// An empty date string clears the date.
type UpdateEmployeeDTO struct {
	EmployeeID    *string  `json:"employeeId"`
	FirstName     *string  `json:"firstName"`
	LastName      *string  `json:"lastName"`
	Email         *string  `json:"email"`
	PhoneNumber   *string  `json:"phoneNumber"`
	DateOfBirth   *string  `json:"dateOfBirth"`
	Department    *string  `json:"department"`
	Position      *string  `json:"position"`
	DateOfJoining *string  `json:"dateOfJoining"`
	Salary        *float64 `json:"salary"`
}

// Empty reports whether the update names no field at all.
func (in UpdateEmployeeDTO) Empty() bool {
	return in == UpdateEmployeeDTO{}
}

// ApplyTo copies the supplied fields onto e, normalizing them the same way
// create does.
func (in UpdateEmployeeDTO) ApplyTo(e *Employee) error {
	setString(&e.EmployeeID, in.EmployeeID)
	setString(&e.FirstName, in.FirstName)
	setString(&e.LastName, in.LastName)
	setString(&e.PhoneNumber, in.PhoneNumber)
	setString(&e.Department, in.Department)
	setString(&e.Position, in.Position)
	if in.Email != nil {
		e.Email = normalizeEmail(*in.Email)
	}
	if in.Salary != nil {
		s := *in.Salary
		e.Salary = &s
	}
	if in.DateOfBirth != nil {
		d, err := parseOptionalDate("dateOfBirth", *in.DateOfBirth)
		if err != nil {
			return err
		}
		e.DateOfBirth = d
	}
	if in.DateOfJoining != nil {
		d, err := parseOptionalDate("dateOfJoining", *in.DateOfJoining)
		if err != nil {
			return err
		}
		e.DateOfJoining = d
	}
	return nil
}

// SearchQuery holds GET /search parameters.
type SearchQuery struct {
	EmployeeID string `form:"employeeId"`
	Name       string `form:"name"`
	Department string `form:"department"`
}

// ListQuery holds GET / parameters.
type ListQuery struct {
	EmployeeID string `form:"employeeId"`
	Name       string `form:"name"`
	Department string `form:"department"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
}

// JoiningRange returns the inclusive dateOfJoining bounds. Both bounds must
// be present for the range to apply; a lone bound is ignored.
func (q ListQuery) JoiningRange() (from, to *time.Time, err error) {
	if q.DateFrom == "" || q.DateTo == "" {
		return nil, nil, nil
	}
	f, err := ParseDate(q.DateFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("dateFrom: %w", err)
	}
	t, err := ParseDate(q.DateTo)
	if err != nil {
		return nil, nil, fmt.Errorf("dateTo: %w", err)
	}
	if f.After(t) {
		return nil, nil, ErrInvalidDateRange
	}
	return &f, &t, nil
}

// ParseDate accepts a calendar date (YYYY-MM-DD, taken as UTC midnight) or a
// full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q must be YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
