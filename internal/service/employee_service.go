package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roster/internal/calculator"
	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
)

// RegisterInput is the data needed to register a new employee.
type RegisterInput struct {
	FirstName   string          `label:"first name" validate:"required"`
	LastName    string          `label:"last name" validate:"required"`
	Email       string          `label:"email" validate:"required,email"`
	Contact     string          `label:"contact" validate:"required"`
	Designation string          `label:"designation" validate:"required"`
	Salary      decimal.Decimal `label:"salary" validate:"-"`
}

func (in *RegisterInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Designation = strings.TrimSpace(in.Designation)
}

// EmployeeService is the operation set the console drives. It validates input,
// delegates persistence to the store and runs the calculator over the results.
type EmployeeService struct {
	store    storage.Store
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewEmployeeService creates a new EmployeeService with the given storage backend.
// m may be nil.
func NewEmployeeService(store storage.Store, m *metrics.Metrics) *EmployeeService {
	return &EmployeeService{
		store:    store,
		metrics:  m,
		validate: newValidator(),
	}
}

// Register validates and stores a new employee, returning its ID.
func (s *EmployeeService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	in.normalize()
	slog.Info("Register request received", "email", in.Email, "designation", in.Designation)

	if err := s.validate.Struct(in); err != nil {
		return 0, mapValidationError(err)
	}
	if in.Salary.IsNegative() {
		return 0, fmt.Errorf("%w: salary cannot be negative", ErrValidation)
	}

	employee := &models.Employee{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Contact:     in.Contact,
		Designation: in.Designation,
		Salary:      in.Salary,
	}
	id, err := s.store.CreateEmployee(ctx, employee)
	if err != nil {
		slog.Warn("Register failed", "email", in.Email, "error", err)
		return 0, err
	}

	slog.Info("Employee registered", "employee_id", id)
	return id, nil
}

// ListAll returns every employee.
func (s *EmployeeService) ListAll(ctx context.Context) ([]*models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// ListByDesignation returns the employees holding designation exactly.
func (s *EmployeeService) ListByDesignation(ctx context.Context, designation string) ([]*models.Employee, error) {
	return s.store.ListEmployeesByDesignation(ctx, designation)
}

// Get returns one employee.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// UpdateFields validates and applies a partial update.
func (s *EmployeeService) UpdateFields(ctx context.Context, id int64, update models.EmployeeUpdate) error {
	slog.Info("UpdateFields request received", "employee_id", id)

	update, err := s.normalizeUpdate(update)
	if err != nil {
		return err
	}

	if err := s.store.UpdateEmployee(ctx, id, update); err != nil {
		slog.Warn("UpdateFields failed", "employee_id", id, "error", err)
		return err
	}

	slog.Info("Employee updated", "employee_id", id)
	return nil
}

// normalizeUpdate returns a trimmed, validated copy of update. The caller's
// strings are left untouched.
func (s *EmployeeService) normalizeUpdate(update models.EmployeeUpdate) (models.EmployeeUpdate, error) {
	for _, f := range []struct {
		label string
		value **string
	}{
		{"first name", &update.FirstName},
		{"last name", &update.LastName},
		{"email", &update.Email},
		{"contact", &update.Contact},
		{"designation", &update.Designation},
	} {
		if *f.value == nil {
			continue
		}
		v := strings.TrimSpace(**f.value)
		if v == "" {
			return update, fmt.Errorf("%w: %s cannot be empty", ErrValidation, f.label)
		}
		*f.value = &v
	}

	if update.Email != nil {
		if err := s.validate.Var(*update.Email, "email"); err != nil {
			return update, fmt.Errorf("%w: email is not a valid email address", ErrValidation)
		}
	}
	if update.Salary != nil && update.Salary.IsNegative() {
		return update, fmt.Errorf("%w: salary cannot be negative", ErrValidation)
	}
	return update, nil
}

// Remove deletes an employee and reports whether one was removed.
func (s *EmployeeService) Remove(ctx context.Context, id int64) (bool, error) {
	slog.Info("Remove request received", "employee_id", id)

	deleted, err := s.store.DeleteEmployee(ctx, id)
	if err != nil {
		slog.Error("Remove failed", "employee_id", id, "error", err)
		return false, err
	}

	slog.Info("Remove completed", "employee_id", id, "deleted", deleted)
	return deleted, nil
}

// AdjustSalary changes the salary of every employee holding designation and
// returns how many were updated. A designation nobody holds updates nothing
// and records no history.
func (s *EmployeeService) AdjustSalary(ctx context.Context, designation string, mode calculator.AdjustmentMode, magnitude decimal.Decimal) (int, error) {
	slog.Info("AdjustSalary request received",
		"designation", designation,
		"mode", mode,
		"magnitude", magnitude.String(),
	)

	// Reject a bad mode before opening a transaction.
	if _, err := calculator.AdjustSalary(decimal.Zero, mode, magnitude); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	count, err := s.store.UpdateSalariesByDesignation(ctx, designation, func(current decimal.Decimal) (decimal.Decimal, error) {
		return calculator.AdjustSalary(current, mode, magnitude)
	})
	if err != nil {
		slog.Error("AdjustSalary failed", "designation", designation, "error", err)
		return 0, err
	}
	if count == 0 {
		slog.Info("AdjustSalary matched no employees", "designation", designation)
		return 0, nil
	}

	if s.metrics != nil {
		s.metrics.SalariesAdjusted.WithLabelValues(string(mode)).Add(float64(count))
	}

	adjustment := &models.SalaryAdjustment{
		Designation:  designation,
		Mode:         string(mode),
		Magnitude:    magnitude,
		UpdatedCount: count,
	}
	if err := s.store.CreateSalaryAdjustment(ctx, adjustment); err != nil {
		// Salaries are already committed; losing the history row is not fatal.
		slog.Warn("Failed to record salary adjustment", "designation", designation, "error", err)
	}

	slog.Info("AdjustSalary successful", "designation", designation, "updated_count", count)
	return count, nil
}

// AdjustmentHistory returns recorded batch adjustments, newest first.
func (s *EmployeeService) AdjustmentHistory(ctx context.Context) ([]*models.SalaryAdjustment, error) {
	return s.store.ListSalaryAdjustments(ctx)
}

// SummaryReport groups every employee by designation with totals and averages.
func (s *EmployeeService) SummaryReport(ctx context.Context) (calculator.Summary, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		slog.Error("SummaryReport failed - could not list employees", "error", err)
		return calculator.Summary{}, err
	}

	records := make([]calculator.SalaryRecord, len(employees))
	for i, e := range employees {
		records[i] = calculator.SalaryRecord{Designation: e.Designation, Salary: e.Salary}
	}
	summary := calculator.Summarize(records)

	if s.metrics != nil {
		s.metrics.Employees.Set(float64(summary.EmployeeCount))
	}

	slog.Info("SummaryReport successful",
		"employees_count", summary.EmployeeCount,
		"designations_count", len(summary.Groups),
	)
	return summary, nil
}

// SeedDemoData registers the demo employees and returns how many were inserted.
// Demo employees whose email is already taken are skipped, so running it
// twice inserts nothing the second time.
func (s *EmployeeService) SeedDemoData(ctx context.Context) (int, error) {
	inserted := 0
	for _, in := range DemoEmployees() {
		if _, err := s.Register(ctx, in); err != nil {
			if errors.Is(err, storage.ErrConstraintViolation) {
				slog.Warn("Demo employee skipped", "email", in.Email)
				continue
			}
			return inserted, fmt.Errorf("failed to seed %s: %w", in.Email, err)
		}
		inserted++
	}

	slog.Info("Demo data seeded", "inserted", inserted)
	return inserted, nil
}
