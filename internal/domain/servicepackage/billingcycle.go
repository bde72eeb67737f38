package servicepackage

import (
	"fmt"
	"strings"
	"time"
)

type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// fallbackDays is used for any cycle outside the known set.
const fallbackDays = 30

var billingCycleDays = map[BillingCycle]int{
	BillingCycleMonthly:   30,
	BillingCycleQuarterly: 90,
	BillingCycleYearly:    365,
}

// ParseBillingCycle accepts only the known cycles, case-insensitively.
func ParseBillingCycle(value string) (BillingCycle, error) {
	cycle := BillingCycle(strings.ToLower(strings.TrimSpace(value)))
	if !cycle.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBillingCycle, value)
	}
	return cycle, nil
}

func (b BillingCycle) IsValid() bool {
	_, ok := billingCycleDays[b]
	return ok
}

func (b BillingCycle) String() string {
	return string(b)
}

// Days is the length of one billing period.
func (b BillingCycle) Days() int {
	if days, ok := billingCycleDays[b]; ok {
		return days
	}
	return fallbackDays
}

// EndDate returns the last date of a period starting on start.
func (b BillingCycle) EndDate(start time.Time) time.Time {
	return start.AddDate(0, 0, b.Days())
}
