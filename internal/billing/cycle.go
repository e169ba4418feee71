package billing

import "fmt"

// Cycle is the recurrence period of a subscription's payment. It is a closed
// set: anything coming in over the wire goes through ParseCycle so an unknown
// value can never reach the calculator.
type Cycle string

const (
	CycleWeekly     Cycle = "weekly"
	CycleMonthly    Cycle = "monthly"
	CycleQuarterly  Cycle = "quarterly"
	CycleBiAnnually Cycle = "bi-annually"
	CycleYearly     Cycle = "yearly"
	CycleLifetime   Cycle = "lifetime"
)

// Cycles lists every valid cycle, in display order.
var Cycles = []Cycle{CycleWeekly, CycleMonthly, CycleQuarterly, CycleBiAnnually, CycleYearly, CycleLifetime}

// ParseCycle validates a raw cycle string from a form or CSV row.
func ParseCycle(s string) (Cycle, error) {
	switch Cycle(s) {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleBiAnnually, CycleYearly, CycleLifetime:
		return Cycle(s), nil
	}
	return "", fmt.Errorf("unknown billing cycle %q", s)
}

func (c Cycle) String() string {
	return string(c)
}
