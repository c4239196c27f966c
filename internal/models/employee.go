package models

import "github.com/shopspring/decimal"

// Employee represents one person managed by roster.
type Employee struct {
	// ID is assigned by the store on creation and never changes afterwards.
	ID int64

	FirstName string
	LastName  string

	// Email is unique across all employees.
	Email string

	// Contact is a phone number or other contact string.
	Contact string

	// Designation is the job title, used as a grouping key.
	Designation string

	// Salary is the current monthly salary.
	Salary decimal.Decimal
}

// FullName returns the first and last name joined by a space.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeUpdate carries the fields to change on an existing employee.
// A nil field keeps its current value.
type EmployeeUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Contact     *string
	Designation *string
	Salary      *decimal.Decimal
}

// IsEmpty reports whether the update changes nothing.
func (u EmployeeUpdate) IsEmpty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.Email == nil &&
		u.Contact == nil &&
		u.Designation == nil &&
		u.Salary == nil
}

// Apply returns a copy of e with the update's non-nil fields written over it.
func (u EmployeeUpdate) Apply(e Employee) Employee {
	if u.FirstName != nil {
		e.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		e.LastName = *u.LastName
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.Contact != nil {
		e.Contact = *u.Contact
	}
	if u.Designation != nil {
		e.Designation = *u.Designation
	}
	if u.Salary != nil {
		e.Salary = *u.Salary
	}
	return e
}
