package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/roster/internal/calculator"
	"github.com/mmynk/roster/internal/models"
)

const ruleWidth = 60

var printer = message.NewPrinter(language.English)

// FormatMoney renders d rounded half away from zero to two places, with
// thousands separators and the currency symbol: ₹1,234,567.50.
func FormatMoney(symbol string, d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = printer.Sprintf("%d", n)
	}
	return sign + symbol + whole + "." + frac
}

func rule(ch string) string {
	return strings.Repeat(ch, ruleWidth)
}

func writeHeader(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule("="))
	fmt.Fprintln(w, strings.Repeat(" ", 15)+"EMPLOYEE DATA MANAGEMENT SYSTEM")
	fmt.Fprintln(w, rule("="))
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule("-"))
	fmt.Fprintln(w, " "+title)
	fmt.Fprintln(w, rule("-"))
}

// WriteEmployees renders employees as an aligned table under title.
func WriteEmployees(w io.Writer, title, currency string, employees []*models.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(w, "No employees found!")
		return
	}

	fmt.Fprintf(w, "\n%s (%d)\n", title, len(employees))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCONTACT\tDESIGNATION\tSALARY")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.FullName(), e.Email, e.Contact, e.Designation, FormatMoney(currency, e.Salary))
	}
	tw.Flush()
}

// WriteSummary renders the grouped statistics report.
func WriteSummary(w io.Writer, currency string, s calculator.Summary) {
	if s.IsEmpty() {
		fmt.Fprintln(w, "No employees found!")
		return
	}

	writeSection(w, "EMPLOYEE SUMMARY STATISTICS")
	fmt.Fprintf(w, "\nTotal Employees: %d\n", s.EmployeeCount)
	fmt.Fprintf(w, "Total Salary Expense: %s\n", FormatMoney(currency, s.TotalSalary))
	fmt.Fprintln(w, "\nBreakdown by Designation:")
	for _, d := range s.Designations() {
		g := s.Groups[d]
		fmt.Fprintf(w, "  %s: %d employees, Total: %s, Average: %s\n",
			d, g.Count, FormatMoney(currency, g.Total), FormatMoney(currency, g.Average))
	}
}

// WriteHistory renders recorded salary adjustments.
func WriteHistory(w io.Writer, currency string, history []*models.SalaryAdjustment) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No salary adjustments recorded.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tDESIGNATION\tCHANGE\tEMPLOYEES")
	for _, h := range history {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			time.Unix(h.CreatedAt, 0).Format("2006-01-02 15:04"),
			h.Designation,
			describeAdjustment(currency, calculator.AdjustmentMode(h.Mode), h.Magnitude),
			h.UpdatedCount,
		)
	}
	tw.Flush()
}

func describeAdjustment(currency string, mode calculator.AdjustmentMode, magnitude decimal.Decimal) string {
	sign := "+"
	if magnitude.IsNegative() {
		sign = ""
	}
	if mode == calculator.Percentage {
		return sign + magnitude.String() + "%"
	}
	return sign + FormatMoney(currency, magnitude)
}
