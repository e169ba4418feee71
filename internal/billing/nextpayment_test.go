package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextPaymentDateLifetime(t *testing.T) {
	now := date(2024, time.March, 15)
	current := date(2024, time.April, 1)

	assert.Nil(t, NextPaymentDate(date(2020, time.January, 1), CycleLifetime, nil, now))
	// A stale stored date makes no difference either.
	assert.Nil(t, NextPaymentDate(date(2020, time.January, 1), CycleLifetime, &current, now))
}

func TestNextPaymentDateKeepsFutureDate(t *testing.T) {
	start := date(2024, time.January, 1)
	now := date(2024, time.March, 15)
	current := date(2024, time.March, 20)

	first := NextPaymentDate(start, CycleMonthly, &current, now)
	second := NextPaymentDate(start, CycleMonthly, first, now)

	assert.Equal(t, &current, first)
	assert.Equal(t, first, second)
}

func TestNextPaymentDateWeekly(t *testing.T) {
	start := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	now := date(2024, time.March, 15) // 9 full days after start

	next := NextPaymentDate(start, CycleWeekly, nil, now)

	assert.NotNil(t, next)
	// One whole week passed, so the second occurrence is due.
	assert.Equal(t, start.AddDate(0, 0, 14), *next)
	assert.True(t, next.After(now))
	// Weekly arithmetic keeps the start's time of day.
	assert.Equal(t, 9, next.Hour())
}

func TestNextPaymentDateMonthlyClampsTo28(t *testing.T) {
	start := date(2024, time.January, 31)
	now := date(2024, time.March, 15)

	next := NextPaymentDate(start, CycleMonthly, nil, now)

	assert.NotNil(t, next)
	// 44 days passed -> one 30-day period -> two months after January,
	// with the 31st clamped down to the 28th.
	assert.Equal(t, date(2024, time.March, 28), *next)
}

func TestNextPaymentDateMonthlyRecomputesPastDate(t *testing.T) {
	start := date(2024, time.January, 10)
	now := date(2024, time.March, 15)
	stale := date(2024, time.February, 10)

	next := NextPaymentDate(start, CycleMonthly, &stale, now)

	assert.NotNil(t, next)
	// 65 days passed -> two 30-day periods -> three months after January.
	assert.Equal(t, date(2024, time.April, 10), *next)
	assert.True(t, next.After(now))
}

func TestNextPaymentDateQuarterlyCarriesYear(t *testing.T) {
	start := date(2024, time.November, 15)
	now := date(2024, time.December, 20)

	next := NextPaymentDate(start, CycleQuarterly, nil, now)

	assert.NotNil(t, next)
	assert.Equal(t, date(2025, time.February, 15), *next)
}

func TestNextPaymentDateBiAnnually(t *testing.T) {
	start := date(2024, time.January, 5)
	now := date(2024, time.August, 1) // 209 days, one 182-day period

	next := NextPaymentDate(start, CycleBiAnnually, nil, now)

	assert.NotNil(t, next)
	assert.Equal(t, date(2025, time.January, 5), *next)
}

func TestNextPaymentDateYearly(t *testing.T) {
	start := date(2023, time.June, 10)
	now := date(2025, time.January, 1)

	next := NextPaymentDate(start, CycleYearly, nil, now)

	assert.NotNil(t, next)
	assert.Equal(t, date(2025, time.June, 10), *next)
}

func TestNextPaymentDateYearlyClampsTo28(t *testing.T) {
	start := date(2023, time.October, 31)
	now := date(2024, time.February, 1)

	next := NextPaymentDate(start, CycleYearly, nil, now)

	assert.NotNil(t, next)
	assert.Equal(t, date(2024, time.October, 28), *next)
}

func TestNextPaymentDateAlwaysFutureForFreshSubscriptions(t *testing.T) {
	now := date(2024, time.March, 15)
	starts := []time.Time{
		now.AddDate(0, 0, -1),
		now.AddDate(0, -2, 0),
		now.AddDate(-1, 0, 0),
		now.AddDate(-5, -3, -11),
	}

	for _, cycle := range []Cycle{CycleWeekly, CycleMonthly, CycleQuarterly, CycleBiAnnually, CycleYearly} {
		for _, start := range starts {
			next := NextPaymentDate(start, cycle, nil, now)
			assert.NotNil(t, next, "cycle %s start %s", cycle, start)
			assert.True(t, next.After(now), "cycle %s start %s produced %s", cycle, start, next)
		}
	}
}

func TestParseCycle(t *testing.T) {
	for _, c := range Cycles {
		parsed, err := ParseCycle(string(c))
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCycle("fortnightly")
	assert.Error(t, err)

	_, err = ParseCycle("")
	assert.Error(t, err)
}
