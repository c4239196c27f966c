package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// averagePrecision is the number of fractional digits kept when dividing a
// group total by its head count.
const averagePrecision = 16

// SalaryRecord is the minimal information needed to summarize one employee.
type SalaryRecord struct {
	Designation string
	Salary      decimal.Decimal
}

// DesignationStats aggregates the salaries of one designation.
type DesignationStats struct {
	Designation string
	Count       int
	Total       decimal.Decimal // full precision
	Average     decimal.Decimal // Total / Count, see averagePrecision
}

// Summary is the grouped salary report across all employees.
type Summary struct {
	Groups        map[string]*DesignationStats
	TotalSalary   decimal.Decimal
	EmployeeCount int
}

// IsEmpty reports whether the summary covers no employees.
func (s Summary) IsEmpty() bool {
	return s.EmployeeCount == 0
}

// Designations returns the group keys in sorted order.
func (s Summary) Designations() []string {
	keys := make([]string, 0, len(s.Groups))
	for k := range s.Groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summarize groups records by designation, summing salaries per group and
// overall. Averages are computed once the fold is complete; an empty input
// yields an empty summary without dividing.
func Summarize(records []SalaryRecord) Summary {
	summary := Summary{
		Groups:      make(map[string]*DesignationStats),
		TotalSalary: decimal.Zero,
	}

	for _, r := range records {
		group, exists := summary.Groups[r.Designation]
		if !exists {
			group = &DesignationStats{Designation: r.Designation, Total: decimal.Zero}
			summary.Groups[r.Designation] = group
		}
		group.Count++
		group.Total = group.Total.Add(r.Salary)

		summary.TotalSalary = summary.TotalSalary.Add(r.Salary)
		summary.EmployeeCount++
	}

	for _, group := range summary.Groups {
		group.Average = group.Total.DivRound(decimal.NewFromInt(int64(group.Count)), averagePrecision)
	}

	return summary
}
