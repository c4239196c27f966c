package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AdjustmentMode selects how a magnitude is applied to a salary.
type AdjustmentMode string

const (
	// Fixed adds the magnitude to the salary.
	Fixed AdjustmentMode = "fixed"
	// Percentage adds magnitude percent of the salary to the salary.
	Percentage AdjustmentMode = "percentage"
)

var ErrUnknownMode = errors.New("unknown adjustment mode")

// ParseAdjustmentMode converts user input into an AdjustmentMode.
func ParseAdjustmentMode(s string) (AdjustmentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "amount":
		return Fixed, nil
	case "percentage", "percent", "%":
		return Percentage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// AdjustSalary computes a new salary from current.
//
//	fixed:      current + magnitude
//	percentage: current + current × magnitude / 100
//
// The division by 100 is a decimal shift, so no rounding ever happens and
// repeated adjustments stay exact. Negative magnitudes are allowed.
func AdjustSalary(current decimal.Decimal, mode AdjustmentMode, magnitude decimal.Decimal) (decimal.Decimal, error) {
	switch mode {
	case Fixed:
		return current.Add(magnitude), nil
	case Percentage:
		return current.Add(current.Mul(magnitude).Shift(-2)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
}
