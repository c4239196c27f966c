package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/roster/internal/calculator"
	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/storage"
	"github.com/mmynk/roster/internal/storage/sqlite"
)

// setupEmployeeService creates a service over a fresh SQLite database.
func setupEmployeeService(t *testing.T) (*EmployeeService, *metrics.Metrics) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	return NewEmployeeService(store, m), m
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validInput(email, designation, salary string) RegisterInput {
	return RegisterInput{
		FirstName:   "Meera",
		LastName:    "Pillai",
		Email:       email,
		Contact:     "9000000000",
		Designation: designation,
		Salary:      dec(salary),
	}
}

func TestRegister(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput("meera@example.com", "Engineer", "1000.00"))
	require.NoError(t, err)
	assert.NotZero(t, id)

	employees, err := svc.ListByDesignation(ctx, "Engineer")
	require.NoError(t, err)
	require.Len(t, employees, 1)

	got := employees[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Meera", got.FirstName)
	assert.Equal(t, "Pillai", got.LastName)
	assert.Equal(t, "meera@example.com", got.Email)
	assert.Equal(t, "9000000000", got.Contact)
	assert.True(t, got.Salary.Equal(dec("1000.00")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput("dup@example.com", "Engineer", "1"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, validInput("dup@example.com", "Manager", "2"))
	assert.ErrorIs(t, err, storage.ErrConstraintViolation)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := setupEmployeeService(t)

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantMsg string
	}{
		{"blank first name", func(in *RegisterInput) { in.FirstName = "   " }, "first name is required"},
		{"missing contact", func(in *RegisterInput) { in.Contact = "" }, "contact is required"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email is not a valid email address"},
		{"negative salary", func(in *RegisterInput) { in.Salary = dec("-1") }, "salary cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("valid@example.com", "Engineer", "100")
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestUpdateFields(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput("upd@example.com", "Engineer", "1000"))
	require.NoError(t, err)

	t.Run("applies trimmed values", func(t *testing.T) {
		contact := "  +91 11 2345 6789 "
		err := svc.UpdateFields(ctx, id, models.EmployeeUpdate{Contact: &contact})
		require.NoError(t, err)

		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "+91 11 2345 6789", got.Contact)
	})

	t.Run("leaves the caller's values untouched", func(t *testing.T) {
		designation := "  Lead Engineer  "
		email := " lead@example.com "
		update := models.EmployeeUpdate{Designation: &designation, Email: &email}

		require.NoError(t, svc.UpdateFields(ctx, id, update))

		assert.Equal(t, "  Lead Engineer  ", designation)
		assert.Equal(t, " lead@example.com ", email)
		assert.Same(t, &designation, update.Designation)

		got, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Lead Engineer", got.Designation)
		assert.Equal(t, "lead@example.com", got.Email)
	})

	t.Run("rejects empty strings", func(t *testing.T) {
		empty := " "
		err := svc.UpdateFields(ctx, id, models.EmployeeUpdate{LastName: &empty})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		bad := "nope"
		err := svc.UpdateFields(ctx, id, models.EmployeeUpdate{Email: &bad})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing employee is NotFound", func(t *testing.T) {
		name := "Ghost"
		err := svc.UpdateFields(ctx, id+100, models.EmployeeUpdate{FirstName: &name})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRemove(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	ctx := context.Background()

	deleted, err := svc.Remove(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	id, err := svc.Register(ctx, validInput("gone@example.com", "Engineer", "1"))
	require.NoError(t, err)

	deleted, err = svc.Remove(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAdjustSalary(t *testing.T) {
	svc, m := setupEmployeeService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput("e1@example.com", "Engineer", "1000.00"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput("e2@example.com", "Engineer", "2000.00"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput("m1@example.com", "Manager", "3000.00"))
	require.NoError(t, err)

	t.Run("fixed applied three times is exact", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			count, err := svc.AdjustSalary(ctx, "Engineer", calculator.Fixed, dec("10.00"))
			require.NoError(t, err)
			assert.Equal(t, 2, count)
		}

		engineers, err := svc.ListByDesignation(ctx, "Engineer")
		require.NoError(t, err)
		assert.Equal(t, "1030.00", engineers[0].Salary.StringFixed(2))
		assert.True(t, engineers[0].Salary.Equal(dec("1030")))
		assert.True(t, engineers[1].Salary.Equal(dec("2030")))
	})

	t.Run("percentage", func(t *testing.T) {
		count, err := svc.AdjustSalary(ctx, "Manager", calculator.Percentage, dec("10"))
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		managers, err := svc.ListByDesignation(ctx, "Manager")
		require.NoError(t, err)
		assert.True(t, managers[0].Salary.Equal(dec("3300.00")), "got %s", managers[0].Salary)
	})

	t.Run("unknown designation updates nothing", func(t *testing.T) {
		before, err := svc.ListAll(ctx)
		require.NoError(t, err)

		count, err := svc.AdjustSalary(ctx, "engineer", calculator.Fixed, dec("500"))
		require.NoError(t, err)
		assert.Zero(t, count)

		after, err := svc.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unknown mode is a validation error", func(t *testing.T) {
		_, err := svc.AdjustSalary(ctx, "Engineer", calculator.AdjustmentMode("bonus"), dec("1"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("history records applied adjustments only", func(t *testing.T) {
		history, err := svc.AdjustmentHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history, 4)

		var fixed, percentage int
		for _, h := range history {
			switch h.Mode {
			case "fixed":
				fixed++
				assert.Equal(t, 2, h.UpdatedCount)
			case "percentage":
				percentage++
				assert.Equal(t, "Manager", h.Designation)
			}
		}
		assert.Equal(t, 3, fixed)
		assert.Equal(t, 1, percentage)
	})

	t.Run("metrics count adjusted salaries", func(t *testing.T) {
		assert.Equal(t, 6.0, testutil.ToFloat64(m.SalariesAdjusted.WithLabelValues("fixed")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.SalariesAdjusted.WithLabelValues("percentage")))
	})
}

func TestSummaryReport(t *testing.T) {
	svc, m := setupEmployeeService(t)
	ctx := context.Background()

	summary, err := svc.SummaryReport(ctx)
	require.NoError(t, err)
	assert.True(t, summary.IsEmpty())

	_, err = svc.Register(ctx, validInput("a@example.com", "Engineer", "1000"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput("b@example.com", "Engineer", "2000"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, validInput("c@example.com", "Manager", "3000"))
	require.NoError(t, err)

	summary, err = svc.SummaryReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.EmployeeCount)
	assert.True(t, summary.TotalSalary.Equal(dec("6000")))
	assert.Equal(t, 2, summary.Groups["Engineer"].Count)
	assert.True(t, summary.Groups["Engineer"].Total.Equal(dec("3000")))
	assert.True(t, summary.Groups["Engineer"].Average.Equal(dec("1500")))
	assert.Equal(t, 1, summary.Groups["Manager"].Count)
	assert.True(t, summary.Groups["Manager"].Average.Equal(dec("3000")))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Employees))
}

// Seeding is not guarded against repeats. The second run inserts nothing only
// because every demo email is already taken.
func TestSeedDemoData_RepeatedRunsCollideOnEmail(t *testing.T) {
	svc, _ := setupEmployeeService(t)
	ctx := context.Background()

	inserted, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, inserted)

	inserted, err = svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 12)

	summary, err := svc.SummaryReport(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Groups, 5)
}
