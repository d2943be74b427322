package compliance

import "safehours/storage"

// Report is the full compliance picture for one target date.
type Report struct {
	Date        storage.Date
	Assessments []Assessment
}

// BuildReport computes and grades every metric for date.
func BuildReport(records []storage.Record, date storage.Date) Report {
	values := map[Metric]float64{
		MetricFlightHours:     DailyFlightHours(records, date),
		MetricContactHours:    DailyContactHours(records, date),
		MetricConsecutiveDays: float64(ConsecutiveDayStreak(records, date)),
		MetricDutySpan:        DutySpan(records, date),
		MetricRollingWeek:     RollingWeekHours(records, date),
		MetricRestGap:         RestGap(records, date),
	}

	report := Report{Date: date}
	for _, metric := range Metrics() {
		report.Assessments = append(report.Assessments, Assess(metric, values[metric]))
	}
	return report
}

// Get returns the assessment for metric.
func (r Report) Get(metric Metric) Assessment {
	for _, a := range r.Assessments {
		if a.Metric == metric {
			return a
		}
	}
	return Assessment{Metric: metric}
}

// Worst returns the highest tier in the report.
func (r Report) Worst() Tier {
	worst := TierNormal
	for _, a := range r.Assessments {
		if a.Tier > worst {
			worst = a.Tier
		}
	}
	return worst
}
