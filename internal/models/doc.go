// Package models defines the core domain models for roster.
//
// # Models
//
//   - Employee: one person on the payroll, identified by a store-assigned integer ID
//   - EmployeeUpdate: a partial update to an Employee; nil fields are left untouched
//   - SalaryAdjustment: history record of one batch salary change applied to a designation
//
// # Money
//
// Salaries are decimal.Decimal values end to end. They are persisted as their
// canonical decimal string and never pass through float64, so repeated fixed or
// percentage adjustments do not drift.
//
// # Designations
//
// A designation is a free-form job title used as a grouping and filter key. It is
// not a separate entity and matching is exact and case-sensitive.
package models
