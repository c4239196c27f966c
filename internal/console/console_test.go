package console

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/roster/internal/metrics"
	"github.com/mmynk/roster/internal/middleware"
	"github.com/mmynk/roster/internal/service"
	"github.com/mmynk/roster/internal/storage/sqlite"
)

func setupService(t *testing.T) *service.EmployeeService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	return service.NewEmployeeService(store, nil)
}

// run feeds script to a fresh console and returns everything it printed.
func run(t *testing.T, svc *service.EmployeeService, script ...string) string {
	t.Helper()

	var out bytes.Buffer
	c := New(svc, strings.NewReader(strings.Join(script, "\n")+"\n"), &out, "₹", nil)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestRun_RegisterAndList(t *testing.T) {
	svc := setupService(t)

	out := run(t, svc,
		"1", "Asha", "Rao", "asha@example.com", "9000000001", "Engineer", "lots", "1,500.50",
		"2",
		"10",
	)

	assert.Contains(t, out, "EMPLOYEE DATA MANAGEMENT SYSTEM")
	assert.Contains(t, out, "Invalid amount! Please enter a number.")
	assert.Contains(t, out, "Employee registered successfully with ID: 1")
	assert.Contains(t, out, "All Employees (1)")
	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, "₹1,500.50")
	assert.Contains(t, out, "THANK YOU FOR USING THE SYSTEM")

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Salary.Equal(decimal.RequireFromString("1500.50")))
}

func TestRun_InvalidChoiceReprompts(t *testing.T) {
	out := run(t, setupService(t), "abc", "0", "11", "10")

	assert.Equal(t, 3, strings.Count(out, "Invalid choice! Please enter a number between 1-10."))
	assert.Contains(t, out, "Application closed successfully.")
}

func TestRun_EndOfInputExits(t *testing.T) {
	svc := setupService(t)

	// Input ends halfway through a registration.
	out := run(t, svc, "1", "Asha", "Rao")
	assert.NotContains(t, out, "registered successfully")

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRun_CancelledContextExits(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(svc, strings.NewReader("2\n2\n10\n"), &out, "₹", nil)
	require.NoError(t, c.Run(ctx))

	assert.Contains(t, out.String(), "Interrupted.")
	assert.NotContains(t, out.String(), "MAIN MENU")
	assert.NotContains(t, out.String(), "context canceled")
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())

	// The writer side stays open, so the menu blocks on its first prompt.
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := New(svc, pr, &out, "₹", nil)

	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Contains(t, out.String(), "Interrupted.")
}

func TestRun_ReadFailureIsReturned(t *testing.T) {
	var out bytes.Buffer
	c := New(setupService(t), strings.NewReader(strings.Repeat("x", bufio.MaxScanTokenSize+1)+"\n"), &out, "₹", nil)

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestRun_ErrorsReturnToMenu(t *testing.T) {
	svc := setupService(t)

	out := run(t, svc,
		"7", "y",
		"1", "Copy", "Cat", "aarav.sharma@company.com", "1", "Engineer", "10",
		"1", "", "Cat", "copy@example.com", "1", "Engineer", "10",
		"10",
	)

	assert.Contains(t, out, "Inserted 12 demo employees.")
	assert.Contains(t, out, "Error: An employee with this email already exists!")
	assert.Contains(t, out, "Error: invalid input: first name is required")
	assert.Contains(t, out, "THANK YOU FOR USING THE SYSTEM")

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 12)
}

func TestRun_ViewByDesignation(t *testing.T) {
	svc := setupService(t)
	_, err := svc.SeedDemoData(context.Background())
	require.NoError(t, err)

	out := run(t, svc, "3", "3", "10")

	assert.Contains(t, out, "1. Data Analyst (3 employees)")
	assert.Contains(t, out, "3. Manager (2 employees)")
	assert.Contains(t, out, "Manager Employees (2)")
	assert.Contains(t, out, "Neha Gupta")
	assert.NotContains(t, out, "Aarav Sharma")
}

func TestRun_AdjustSalaries(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)

	// Managers get 10%, then the submenu is left without changes.
	out := run(t, svc,
		"6", "2", "3", "10",
		"6", "3",
		"10",
	)

	assert.Contains(t, out, "Manager Employees - Before Update (2)")
	assert.Contains(t, out, "Updated salaries for 2 Manager employees (added 10%)")
	assert.Contains(t, out, "₹165,000.00")
	assert.Contains(t, out, "₹170,500.00")

	managers, err := svc.ListByDesignation(ctx, "Manager")
	require.NoError(t, err)
	require.Len(t, managers, 2)
	assert.True(t, managers[0].Salary.Equal(decimal.RequireFromString("165000")))
	assert.True(t, managers[1].Salary.Equal(decimal.RequireFromString("170500")))

	history, err := svc.AdjustmentHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRun_UpdateKeepsBlankFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	id, err := svc.Register(ctx, service.RegisterInput{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com",
		Contact: "9000000001", Designation: "Engineer", Salary: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)

	out := run(t, svc,
		"4", "1", "", "", "", "9111111111", "Lead", "",
		"4", "1", "", "", "", "", "", "",
		"4", "99",
		"10",
	)

	assert.Contains(t, out, "Employee details updated successfully!")
	assert.Contains(t, out, "No changes made.")
	assert.Contains(t, out, "Error: Employee not found!")

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.FirstName)
	assert.Equal(t, "9111111111", got.Contact)
	assert.Equal(t, "Lead", got.Designation)
	assert.True(t, got.Salary.Equal(decimal.RequireFromString("1000")))
}

func TestRun_DeleteConfirms(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)

	out := run(t, svc,
		"5", "1", "n",
		"5", "1", "y",
		"5", "1", "y",
		"10",
	)

	assert.Contains(t, out, "Deletion cancelled.")
	assert.Contains(t, out, "Employee deleted successfully!")
	assert.Contains(t, out, "Employee with ID 1 not found!")

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
}

func TestRun_SummaryAndInterceptors(t *testing.T) {
	svc := setupService(t)
	m := metrics.New()

	var out bytes.Buffer
	script := strings.Join([]string{"8", "7", "y", "8", "9", "10"}, "\n") + "\n"
	c := New(svc, strings.NewReader(script), &out, "$", middleware.MetricsInterceptor(m))
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "No employees found!")
	assert.Contains(t, out.String(), "Total Employees: 12")
	assert.Contains(t, out.String(), "Total Salary Expense: $1,065,000.00")
	assert.Contains(t, out.String(), "Manager: 2 employees, Total: $305,000.00, Average: $152,500.00")
	assert.Contains(t, out.String(), "No salary adjustments recorded.")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("summary_report", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("seed_demo_data", "ok")))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"1234.5", "₹1,234.50"},
		{"1234567.005", "₹1,234,567.01"},
		{"-2500", "-₹2,500.00"},
		{"999.994", "₹999.99"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney("₹", decimal.RequireFromString(tt.in)), "FormatMoney(%s)", tt.in)
	}
}
