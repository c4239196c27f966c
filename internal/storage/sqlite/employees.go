package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
)

const employeeColumns = "id, first_name, last_name, email, contact, designation, salary"

// CreateEmployee inserts a new employee and populates employee.ID.
func (s *SQLiteStore) CreateEmployee(ctx context.Context, employee *models.Employee) (int64, error) {
	err := s.withTx(ctx, "create employee", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO employees (first_name, last_name, email, contact, designation, salary)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			employee.FirstName,
			employee.LastName,
			employee.Email,
			employee.Contact,
			employee.Designation,
			employee.Salary.String(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", storage.ErrConstraintViolation, employee.Email)
			}
			return storage.Persistence("insert employee", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return storage.Persistence("read employee id", err)
		}
		employee.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return employee.ID, nil
}

// GetEmployee retrieves an employee by ID.
func (s *SQLiteStore) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	employee := &models.Employee{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?",
		id,
	).Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Contact,
		&employee.Designation,
		&employee.Salary,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, storage.Persistence("get employee", err)
	}
	return employee, nil
}

// ListEmployees retrieves all employees ordered by ID.
func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.queryEmployees(ctx, "list employees",
		"SELECT "+employeeColumns+" FROM employees ORDER BY id",
	)
}

// ListEmployeesByDesignation retrieves the employees holding designation.
// SQLite's = on TEXT is case-sensitive under the default BINARY collation.
func (s *SQLiteStore) ListEmployeesByDesignation(ctx context.Context, designation string) ([]*models.Employee, error) {
	return s.queryEmployees(ctx, "list employees by designation",
		"SELECT "+employeeColumns+" FROM employees WHERE designation = ? ORDER BY id",
		designation,
	)
}

func (s *SQLiteStore) queryEmployees(ctx context.Context, op, query string, args ...interface{}) ([]*models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Persistence(op, err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(
			&employee.ID,
			&employee.FirstName,
			&employee.LastName,
			&employee.Email,
			&employee.Contact,
			&employee.Designation,
			&employee.Salary,
		); err != nil {
			return nil, storage.Persistence("scan employee", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Persistence("iterate employees", err)
	}

	return employees, nil
}

// UpdateEmployee writes the non-nil fields of update to the employee row.
func (s *SQLiteStore) UpdateEmployee(ctx context.Context, id int64, update models.EmployeeUpdate) error {
	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Contact != nil {
		add("contact", *update.Contact)
	}
	if update.Designation != nil {
		add("designation", *update.Designation)
	}
	if update.Salary != nil {
		add("salary", update.Salary.String())
	}

	return s.withTx(ctx, "update employee", func(tx *sql.Tx) error {
		if len(sets) == 0 {
			return employeeExists(ctx, tx, id)
		}

		res, err := tx.ExecContext(ctx,
			"UPDATE employees SET "+strings.Join(sets, ", ")+" WHERE id = ?",
			append(args, id)...,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: employee %d", storage.ErrConstraintViolation, id)
			}
			return storage.Persistence("update employee", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return storage.Persistence("read affected rows", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %d", storage.ErrNotFound, id)
		}
		return nil
	})
}

func employeeExists(ctx context.Context, tx *sql.Tx, id int64) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM employees WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return storage.Persistence("check employee existence", err)
	}
	return nil
}

// DeleteEmployee removes an employee by ID and reports whether it existed.
func (s *SQLiteStore) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.withTx(ctx, "delete employee", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
		if err != nil {
			return storage.Persistence("delete employee", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return storage.Persistence("read affected rows", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

type salaryRow struct {
	id     int64
	salary decimal.Decimal
}

// UpdateSalariesByDesignation rewrites the salary of every employee holding
// designation using fn. All rows are updated in one transaction.
func (s *SQLiteStore) UpdateSalariesByDesignation(ctx context.Context, designation string, fn storage.SalaryFunc) (int, error) {
	var updated int
	err := s.withTx(ctx, "update salaries", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT id, salary FROM employees WHERE designation = ? ORDER BY id",
			designation,
		)
		if err != nil {
			return storage.Persistence("select salaries", err)
		}

		// Drain the cursor before writing on the same connection.
		var matched []salaryRow
		for rows.Next() {
			var row salaryRow
			if err := rows.Scan(&row.id, &row.salary); err != nil {
				rows.Close()
				return storage.Persistence("scan salary", err)
			}
			matched = append(matched, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return storage.Persistence("iterate salaries", err)
		}

		for _, row := range matched {
			next, err := fn(row.salary)
			if err != nil {
				return fmt.Errorf("failed to compute salary for employee %d: %w", row.id, err)
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE employees SET salary = ? WHERE id = ?",
				next.String(), row.id,
			); err != nil {
				return storage.Persistence("update salary", err)
			}
		}

		updated = len(matched)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
