package compliance

import "fmt"

// Metric identifies a graded compliance metric.
type Metric int

const (
	MetricFlightHours Metric = iota
	MetricContactHours
	MetricConsecutiveDays
	MetricDutySpan
	MetricRollingWeek
	MetricRestGap
)

// Metrics lists every metric in display order.
func Metrics() []Metric {
	return []Metric{
		MetricFlightHours,
		MetricContactHours,
		MetricConsecutiveDays,
		MetricDutySpan,
		MetricRollingWeek,
		MetricRestGap,
	}
}

func (m Metric) String() string {
	switch m {
	case MetricFlightHours:
		return "Flight Instruction"
	case MetricContactHours:
		return "Contact Time"
	case MetricConsecutiveDays:
		return "Consecutive Days"
	case MetricDutySpan:
		return "Duty Period"
	case MetricRollingWeek:
		return "Past 7 Days"
	case MetricRestGap:
		return "Rest Period"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Tier is the warning level of a metric value.
type Tier int

const (
	TierNormal Tier = iota
	TierCaution
	TierViolation
)

func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierCaution:
		return "caution"
	case TierViolation:
		return "violation"
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Evaluate maps a metric value to its tier.
//
//	flight hours      caution (6, 8]    violation > 8
//	contact hours     caution (8, 10)   violation >= 10
//	consecutive days  caution == 15     violation > 15
//	duty span         caution (14, 16]  violation > 16
//	rolling 7 days    caution [48, 50]  violation > 50
//	rest gap          caution (0, 10)   never a violation; 0 means no data
func Evaluate(metric Metric, value float64) Tier {
	switch metric {
	case MetricFlightHours:
		return grade(value > 8, value > 6)
	case MetricContactHours:
		return grade(value >= 10, value > 8)
	case MetricConsecutiveDays:
		return grade(value > 15, value == 15)
	case MetricDutySpan:
		return grade(value > 16, value > 14)
	case MetricRollingWeek:
		return grade(value > 50, value >= 48)
	case MetricRestGap:
		return grade(false, value > 0 && value < 10)
	}
	return TierNormal
}

// Limit returns the rule's bound for metric: a maximum for every metric
// except the rest gap, where it is the required minimum.
func Limit(metric Metric) float64 {
	switch metric {
	case MetricFlightHours:
		return 8
	case MetricContactHours:
		return 10
	case MetricConsecutiveDays:
		return 15
	case MetricDutySpan:
		return 16
	case MetricRollingWeek:
		return 50
	case MetricRestGap:
		return 10
	}
	return 0
}

func grade(violation, caution bool) Tier {
	switch {
	case violation:
		return TierViolation
	case caution:
		return TierCaution
	}
	return TierNormal
}

var citations = map[Metric]string{
	MetricFlightHours: "14 CFR § 61.195(j) – Flight Instructor Limitations: " +
		"A flight instructor may not conduct more than 8 hours of flight training in any 24-consecutive-hour period.",
	MetricContactHours: "SP&P 2.10.7(B): No more than 10 contact hours in any 24 consecutive hour period.",
	MetricConsecutiveDays: "SP&P 2.10.8 Duty Free Days: No flight instructor or crew member shall work more than " +
		"15 consecutive days without at least one day free of UNDAF employment activities.",
	MetricDutySpan: "SP&P 2.10.6 Duty Period involving Aircraft Activity: Each duty period must not exceed 16 hours " +
		"and must be preceded by 10 hours of uninterrupted rest that should include 6 to 8 hours of sleep.",
	MetricRollingWeek: "SP&P 2.10.7(C): No more than 50 contact hours in any 7 consecutive day period. " +
		"A day is the hours between 00:00:00 and 23:59:59 local time.",
	MetricRestGap: "SP&P 2.10.6: Each duty period must be preceded by 10 hours of uninterrupted rest.",
}

// Citation returns the rule text behind a metric's limits.
func Citation(metric Metric) string {
	return citations[metric]
}

// Assessment is a graded metric value with the rule it is graded against.
type Assessment struct {
	Metric   Metric
	Value    float64
	Tier     Tier
	Citation string
}

// Assess evaluates value and attaches the metric's citation.
func Assess(metric Metric, value float64) Assessment {
	return Assessment{
		Metric:   metric,
		Value:    value,
		Tier:     Evaluate(metric, value),
		Citation: Citation(metric),
	}
}
