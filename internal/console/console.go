// Package console implements roster's menu-driven terminal interface.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roster/internal/calculator"
	"github.com/mmynk/roster/internal/middleware"
	"github.com/mmynk/roster/internal/models"
	"github.com/mmynk/roster/internal/service"
	"github.com/mmynk/roster/internal/storage"
)

type menuEntry struct {
	label  string
	action string
	run    func(c *Console, ctx context.Context) error
}

var mainMenu = []menuEntry{
	{"Register New Employee", "register", (*Console).register},
	{"View All Employees", "list_all", (*Console).viewAll},
	{"View Employees by Designation", "list_by_designation", (*Console).viewByDesignation},
	{"Update Employee Details", "update", (*Console).update},
	{"Delete Employee", "remove", (*Console).remove},
	{"Update Salaries by Designation", "adjust_salary", (*Console).adjustSalaries},
	{"Insert Demo Data", "seed_demo_data", (*Console).seedDemoData},
	{"Employee Summary Statistics", "summary_report", (*Console).summary},
	{"Salary Adjustment History", "adjustment_history", (*Console).history},
}

type inputLine struct {
	text string
	err  error
}

// Console reads menu choices and prompts from in and writes to out.
type Console struct {
	svc      *service.EmployeeService
	in       *bufio.Scanner
	lines    chan inputLine
	out      io.Writer
	currency string
	wrap     middleware.Interceptor
}

// New creates a Console. wrap decorates every menu action and may be nil.
func New(svc *service.EmployeeService, in io.Reader, out io.Writer, currency string, wrap middleware.Interceptor) *Console {
	if wrap == nil {
		wrap = middleware.Chain()
	}
	return &Console{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
		wrap:     wrap,
	}
}

// Run shows the main menu until the user exits, input ends or ctx is
// cancelled. Those all count as a clean exit; only a failure to read input is
// returned.
func (c *Console) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	c.lines = make(chan inputLine)
	go c.readLines(c.lines, done)

	writeHeader(c.out)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(c.out, "\nInterrupted.")
			return nil
		}

		c.printMenu()
		choice, err := c.readChoice(ctx, len(mainMenu)+1)
		if err != nil {
			return c.stopped(ctx, err)
		}

		if choice == len(mainMenu)+1 {
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, rule("="))
			fmt.Fprintln(c.out, strings.Repeat(" ", 20)+"THANK YOU FOR USING THE SYSTEM")
			fmt.Fprintln(c.out, rule("="))
			fmt.Fprintln(c.out, "Application closed successfully.")
			return nil
		}

		entry := mainMenu[choice-1]
		err = c.wrap(entry.action, func(ctx context.Context) error {
			return entry.run(c, ctx)
		})(ctx)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return c.stopped(ctx, err)
		}
		if isInputError(err) {
			return err
		}
		if err != nil {
			c.report(err)
		}
	}
}

// stopped turns the error that ended the menu into Run's result.
func (c *Console) stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		fmt.Fprintln(c.out, "\nInterrupted.")
		return nil
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readLines feeds scanned lines to prompt until input ends or done closes.
func (c *Console) readLines(lines chan<- inputLine, done <-chan struct{}) {
	defer close(lines)
	for c.in.Scan() {
		select {
		case lines <- inputLine{text: c.in.Text()}:
		case <-done:
			return
		}
	}
	if err := c.in.Err(); err != nil {
		select {
		case lines <- inputLine{err: &inputError{err: err}}:
		case <-done:
		}
	}
}

// inputError marks a failure reading the terminal, as opposed to a failed
// action.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return "failed to read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func isInputError(err error) bool {
	var ie *inputError
	return errors.As(err, &ie)
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	fmt.Fprintln(c.out, "           MAIN MENU")
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	for i, entry := range mainMenu {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, entry.label)
	}
	fmt.Fprintf(c.out, "%d. Exit\n", len(mainMenu)+1)
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
}

// readChoice keeps asking until it gets a number in [1, limit].
func (c *Console) readChoice(ctx context.Context, limit int) (int, error) {
	for {
		line, err := c.prompt(ctx, fmt.Sprintf("\nEnter your choice (1-%d): ", limit))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= limit {
			return n, nil
		}
		fmt.Fprintf(c.out, "Invalid choice! Please enter a number between 1-%d.\n", limit)
	}
}

// report prints a recoverable error and returns to the menu.
func (c *Console) report(err error) {
	switch {
	case errors.Is(err, storage.ErrConstraintViolation):
		fmt.Fprintln(c.out, "Error: An employee with this email already exists!")
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(c.out, "Error: Employee not found!")
	case errors.Is(err, service.ErrValidation):
		fmt.Fprintf(c.out, "Error: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Database error: %v\n", err)
	}
}

// prompt prints label and waits for the next line of input. It returns
// io.EOF when input ends and ctx.Err() once ctx is cancelled.
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

func (c *Console) promptDecimal(ctx context.Context, label string) (decimal.Decimal, error) {
	for {
		line, err := c.prompt(ctx, label)
		if err != nil {
			return decimal.Decimal{}, err
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(line, ",", ""))
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(c.out, "Invalid amount! Please enter a number.")
	}
}

func (c *Console) promptID(ctx context.Context, label string) (int64, bool, error) {
	line, err := c.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid Employee ID!")
		return 0, false, nil
	}
	return id, true, nil
}

func (c *Console) confirm(ctx context.Context, label string) (bool, error) {
	line, err := c.prompt(ctx, label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

func (c *Console) register(ctx context.Context) error {
	writeSection(c.out, "EMPLOYEE REGISTRATION")

	var in service.RegisterInput
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"First Name: ", &in.FirstName},
		{"Last Name: ", &in.LastName},
		{"Email: ", &in.Email},
		{"Contact: ", &in.Contact},
		{"Designation: ", &in.Designation},
	} {
		v, err := c.prompt(ctx, f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	salary, err := c.promptDecimal(ctx, fmt.Sprintf("Salary (%s): ", c.currency))
	if err != nil {
		return err
	}
	in.Salary = salary

	id, err := c.svc.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\nEmployee registered successfully with ID: %d\n", id)
	return nil
}

func (c *Console) viewAll(ctx context.Context) error {
	writeSection(c.out, "ALL EMPLOYEE RECORDS")

	employees, err := c.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	WriteEmployees(c.out, "All Employees", c.currency, employees)
	return nil
}

// chooseDesignation lists the current designations with head counts and
// returns the one picked. ok is false when nothing was chosen.
func (c *Console) chooseDesignation(ctx context.Context, label string) (designation string, ok bool, err error) {
	summary, err := c.svc.SummaryReport(ctx)
	if err != nil {
		return "", false, err
	}
	if summary.IsEmpty() {
		fmt.Fprintln(c.out, "No employees found!")
		return "", false, nil
	}

	designations := summary.Designations()
	fmt.Fprintln(c.out, "\nAvailable Designations:")
	for i, d := range designations {
		fmt.Fprintf(c.out, "%d. %s (%d employees)\n", i+1, d, summary.Groups[d].Count)
	}

	line, err := c.prompt(ctx, label)
	if err != nil {
		return "", false, err
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil || n < 1 || n > len(designations) {
		fmt.Fprintln(c.out, "Invalid designation choice!")
		return "", false, nil
	}
	return designations[n-1], true, nil
}

func (c *Console) viewByDesignation(ctx context.Context) error {
	writeSection(c.out, "VIEW BY DESIGNATION")

	designation, ok, err := c.chooseDesignation(ctx, "\nSelect designation to view: ")
	if err != nil || !ok {
		return err
	}

	employees, err := c.svc.ListByDesignation(ctx, designation)
	if err != nil {
		return err
	}
	WriteEmployees(c.out, designation+" Employees", c.currency, employees)
	return nil
}

// showCurrent prints every employee for reference and reports whether there
// were any.
func (c *Console) showCurrent(ctx context.Context) (bool, error) {
	employees, err := c.svc.ListAll(ctx)
	if err != nil {
		return false, err
	}
	WriteEmployees(c.out, "Current Employees", c.currency, employees)
	return len(employees) > 0, nil
}

func (c *Console) update(ctx context.Context) error {
	writeSection(c.out, "UPDATE EMPLOYEE DETAILS")

	found, err := c.showCurrent(ctx)
	if err != nil || !found {
		return err
	}

	id, ok, err := c.promptID(ctx, "\nEnter Employee ID to update: ")
	if err != nil || !ok {
		return err
	}
	current, err := c.svc.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\nUpdating %s. Press Enter to keep the current value.\n", current.FullName())

	var update models.EmployeeUpdate
	for _, f := range []struct {
		label   string
		current string
		dst     **string
	}{
		{"First Name", current.FirstName, &update.FirstName},
		{"Last Name", current.LastName, &update.LastName},
		{"Email", current.Email, &update.Email},
		{"Contact", current.Contact, &update.Contact},
		{"Designation", current.Designation, &update.Designation},
	} {
		v, err := c.prompt(ctx, fmt.Sprintf("%s [%s]: ", f.label, f.current))
		if err != nil {
			return err
		}
		if v != "" && v != f.current {
			*f.dst = &v
		}
	}

	for {
		v, err := c.prompt(ctx, fmt.Sprintf("Salary [%s]: ", FormatMoney(c.currency, current.Salary)))
		if err != nil {
			return err
		}
		if v == "" {
			break
		}
		salary, parseErr := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
		if parseErr != nil {
			fmt.Fprintln(c.out, "Invalid amount! Please enter a number.")
			continue
		}
		if !salary.Equal(current.Salary) {
			update.Salary = &salary
		}
		break
	}

	if update.IsEmpty() {
		fmt.Fprintln(c.out, "\nNo changes made.")
		return nil
	}
	if err := c.svc.UpdateFields(ctx, id, update); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "\nEmployee details updated successfully!")
	return nil
}

func (c *Console) remove(ctx context.Context) error {
	writeSection(c.out, "DELETE EMPLOYEE")

	found, err := c.showCurrent(ctx)
	if err != nil || !found {
		return err
	}

	id, ok, err := c.promptID(ctx, "\nEnter Employee ID to delete: ")
	if err != nil || !ok {
		return err
	}

	yes, err := c.confirm(ctx, fmt.Sprintf("Are you sure you want to delete employee %d? (y/n): ", id))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(c.out, "Deletion cancelled.")
		return nil
	}

	deleted, err := c.svc.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(c.out, "Employee with ID %d not found!\n", id)
		return nil
	}
	fmt.Fprintln(c.out, "Employee deleted successfully!")
	return nil
}

func (c *Console) adjustSalaries(ctx context.Context) error {
	writeSection(c.out, "SALARY UPDATES")

	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	fmt.Fprintln(c.out, "     SALARY UPDATE OPTIONS")
	fmt.Fprintln(c.out, strings.Repeat("=", 40))
	fmt.Fprintln(c.out, "1. Add fixed amount to designation")
	fmt.Fprintln(c.out, "2. Add percentage increase to designation")
	fmt.Fprintln(c.out, "3. Back to main menu")

	choice, err := c.prompt(ctx, "\nEnter choice (1-3): ")
	if err != nil {
		return err
	}
	var mode calculator.AdjustmentMode
	switch choice {
	case "1":
		mode = calculator.Fixed
	case "2":
		mode = calculator.Percentage
	case "3":
		return nil
	default:
		fmt.Fprintln(c.out, "Invalid choice!")
		return nil
	}

	designation, ok, err := c.chooseDesignation(ctx, "\nSelect designation: ")
	if err != nil || !ok {
		return err
	}

	before, err := c.svc.ListByDesignation(ctx, designation)
	if err != nil {
		return err
	}
	WriteEmployees(c.out, designation+" Employees - Before Update", c.currency, before)

	label := fmt.Sprintf("\nEnter amount to add (%s): ", c.currency)
	if mode == calculator.Percentage {
		label = "\nEnter percentage to add (%): "
	}
	magnitude, err := c.promptDecimal(ctx, label)
	if err != nil {
		return err
	}

	count, err := c.svc.AdjustSalary(ctx, designation, mode, magnitude)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\nUpdated salaries for %d %s employees (added %s)\n",
		count, designation, strings.TrimPrefix(describeAdjustment(c.currency, mode, magnitude), "+"))

	if count > 0 {
		after, err := c.svc.ListByDesignation(ctx, designation)
		if err != nil {
			return err
		}
		WriteEmployees(c.out, designation+" Employees - After Update", c.currency, after)
	}
	return nil
}

func (c *Console) seedDemoData(ctx context.Context) error {
	writeSection(c.out, "INSERT DEMO DATA")

	yes, err := c.confirm(ctx, fmt.Sprintf("This will insert %d demo employees. Continue? (y/n): ", len(service.DemoEmployees())))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(c.out, "Demo data insertion cancelled.")
		return nil
	}

	inserted, err := c.svc.SeedDemoData(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Inserted %d demo employees.\n", inserted)
	return nil
}

func (c *Console) summary(ctx context.Context) error {
	s, err := c.svc.SummaryReport(ctx)
	if err != nil {
		return err
	}
	WriteSummary(c.out, c.currency, s)
	return nil
}

func (c *Console) history(ctx context.Context) error {
	writeSection(c.out, "SALARY ADJUSTMENT HISTORY")

	h, err := c.svc.AdjustmentHistory(ctx)
	if err != nil {
		return err
	}
	WriteHistory(c.out, c.currency, h)
	return nil
}
