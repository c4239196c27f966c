package models

import "github.com/shopspring/decimal"

// SalaryAdjustment records a batch salary change applied to every employee
// holding one designation.
type SalaryAdjustment struct {
	// ID is the unique identifier for the adjustment (UUID format).
	ID string

	// Designation is the job title the adjustment was applied to.
	Designation string

	// Mode is "fixed" or "percentage".
	Mode string

	// Magnitude is the amount added (fixed) or the percentage applied.
	Magnitude decimal.Decimal

	// UpdatedCount is how many employees had their salary changed.
	UpdatedCount int

	// CreatedAt is the Unix timestamp when the adjustment was applied.
	CreatedAt int64
}
