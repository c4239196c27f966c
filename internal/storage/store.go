// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roster/internal/models"
)

// SalaryFunc computes a new salary from the current one.
type SalaryFunc func(current decimal.Decimal) (decimal.Decimal, error)

// Store defines the interface for employee storage operations.
// This abstraction keeps the service layer independent of the SQL backend.
type Store interface {
	// CreateEmployee persists a new employee and returns the assigned ID.
	// The employee.ID field will be populated by the store.
	// Returns ErrConstraintViolation if the email is already taken.
	CreateEmployee(ctx context.Context, employee *models.Employee) (int64, error)

	// GetEmployee retrieves an employee by ID.
	// Returns ErrNotFound if the employee does not exist.
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)

	// ListEmployees returns every employee in insertion order.
	ListEmployees(ctx context.Context) ([]*models.Employee, error)

	// ListEmployeesByDesignation returns employees whose designation matches exactly.
	ListEmployeesByDesignation(ctx context.Context, designation string) ([]*models.Employee, error)

	// UpdateEmployee changes the non-nil fields of update on the employee with the given ID.
	// Returns ErrNotFound if the employee does not exist.
	UpdateEmployee(ctx context.Context, id int64, update models.EmployeeUpdate) error

	// DeleteEmployee removes an employee and reports whether a row was deleted.
	// A missing ID is not an error.
	DeleteEmployee(ctx context.Context, id int64) (bool, error)

	// UpdateSalariesByDesignation applies fn to the salary of every employee
	// with the given designation inside a single transaction and returns the
	// number of rows updated. Either every matching row is updated or none is.
	UpdateSalariesByDesignation(ctx context.Context, designation string, fn SalaryFunc) (int, error)

	// CreateSalaryAdjustment records an applied batch adjustment.
	CreateSalaryAdjustment(ctx context.Context, adjustment *models.SalaryAdjustment) error

	// ListSalaryAdjustments returns adjustment history, newest first.
	ListSalaryAdjustments(ctx context.Context) ([]*models.SalaryAdjustment, error)

	// Close releases any resources held by the store.
	Close() error
}
