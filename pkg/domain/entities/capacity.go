package entities

import "github.com/shopspring/decimal"

// WorkPattern describes a shift schedule used to derive monthly line
// capacities from working days and line speed.
type WorkPattern struct {
	Name           string
	ShiftsPerDay   int
	HoursPerShift  decimal.Decimal
	ExclusionHours decimal.Decimal
}

// MonthlyHours returns the productive hours for a month with the given number
// of working days, clamped at zero.
func (p WorkPattern) MonthlyHours(workingDays int) decimal.Decimal {
	days := decimal.NewFromInt(int64(workingDays))
	shifts := decimal.NewFromInt(int64(p.ShiftsPerDay))
	hours := days.Mul(p.HoursPerShift).Mul(shifts).Sub(p.ExclusionHours)
	if hours.IsNegative() {
		return decimal.Zero
	}
	return hours
}

// MonthlyCapacity returns floor(jph * productive hours) for a month, clamped
// at zero. JPH is the line's jobs-per-hour rate.
func (p WorkPattern) MonthlyCapacity(jph decimal.Decimal, workingDays int) Quantity {
	capacity := jph.Mul(p.MonthlyHours(workingDays)).Floor()
	if capacity.IsNegative() {
		return 0
	}
	return Quantity(capacity.IntPart())
}
