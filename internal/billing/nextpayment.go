package billing

import (
	"math"
	"time"
)

// Nominal period lengths in days used to work out how many cycles have
// elapsed since the start date. Months are approximated as fixed day counts
// on purpose: the arithmetic stays deterministic and dependency-free at the
// cost of billing-date precision.
const (
	daysPerWeek     = 7
	daysPerMonth    = 30
	daysPerQuarter  = 90
	daysPerHalfYear = 182
	daysPerYear     = 365
)

// NextPaymentDate computes when a subscription is next due.
//
// Lifetime subscriptions never recur, so the result is nil. If current is
// set and still in the future, it is returned unchanged; repeated calls
// before the due date do not advance it. Otherwise the next occurrence is
// rebuilt from the start date: the number of whole periods elapsed is taken
// by floor division and the (periods+1)-th occurrence is returned.
//
// Month-based cycles advance the month field (carrying year overflow) and
// clamp the day of month to min(start day, 28), so a computed due date never
// lands on the 29th-31st.
func NextPaymentDate(start time.Time, cycle Cycle, current *time.Time, now time.Time) *time.Time {
	if cycle == CycleLifetime {
		return nil
	}
	if current != nil && current.After(now) {
		return current
	}

	daysPassed := int(math.Floor(now.Sub(start).Hours() / 24))

	switch cycle {
	case CycleWeekly:
		weeksPassed := floorDiv(daysPassed, daysPerWeek)
		next := start.AddDate(0, 0, (weeksPassed+1)*daysPerWeek)
		return &next
	case CycleMonthly:
		monthsPassed := floorDiv(daysPassed, daysPerMonth)
		return addMonths(start, monthsPassed+1)
	case CycleQuarterly:
		quartersPassed := floorDiv(daysPassed, daysPerQuarter)
		return addMonths(start, (quartersPassed+1)*3)
	case CycleBiAnnually:
		halfYearsPassed := floorDiv(daysPassed, daysPerHalfYear)
		return addMonths(start, (halfYearsPassed+1)*6)
	case CycleYearly:
		yearsPassed := floorDiv(daysPassed, daysPerYear)
		next := time.Date(start.Year()+yearsPassed+1, start.Month(), clampDay(start.Day()), 0, 0, 0, 0, time.UTC)
		return &next
	}
	return nil
}

// addMonths advances start by n calendar months, carrying year overflow
// explicitly rather than relying on time.AddDate normalization, and returns
// midnight on the clamped day.
func addMonths(start time.Time, n int) *time.Time {
	monthIndex := int(start.Month()) - 1 + n
	year := start.Year() + floorDiv(monthIndex, 12)
	month := time.Month(mod(monthIndex, 12) + 1)
	next := time.Date(year, month, clampDay(start.Day()), 0, 0, 0, 0, time.UTC)
	return &next
}

func clampDay(day int) int {
	if day > 28 {
		return 28
	}
	return day
}

// floorDiv rounds toward negative infinity, unlike Go's truncating division.
// It only matters for start dates in the future, but the calculator should
// not misbehave on them.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
