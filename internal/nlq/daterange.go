package nlq

import (
	"strings"
	"time"
)

// DateRange is an inclusive calendar-day interval. Start and End are midnight
// UTC dates; both bounds participate in the generated BETWEEN predicate.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type dateRule struct {
	phrases []string
	resolve func(today time.Time) DateRange
}

// dateRules is evaluated in order; the first phrase found in the input wins.
var dateRules = []dateRule{
	{
		phrases: []string{"today"},
		resolve: func(today time.Time) DateRange {
			return DateRange{Start: today, End: today}
		},
	},
	{
		phrases: []string{"yesterday"},
		resolve: func(today time.Time) DateRange {
			day := today.AddDate(0, 0, -1)
			return DateRange{Start: day, End: day}
		},
	},
	{
		phrases: []string{"last 7 days", "past 7 days"},
		resolve: func(today time.Time) DateRange {
			return DateRange{Start: today.AddDate(0, 0, -6), End: today}
		},
	},
	{
		phrases: []string{"last week"},
		resolve: func(today time.Time) DateRange {
			monday := startOfISOWeek(today).AddDate(0, 0, -7)
			return DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}
		},
	},
	{
		phrases: []string{"this week"},
		resolve: func(today time.Time) DateRange {
			monday := startOfISOWeek(today)
			return DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}
		},
	},
	{
		phrases: []string{"this month"},
		resolve: func(today time.Time) DateRange {
			first := firstOfMonth(today)
			return DateRange{Start: first, End: lastOfMonth(first)}
		},
	},
	{
		phrases: []string{"last month"},
		resolve: func(today time.Time) DateRange {
			first := firstOfMonth(today).AddDate(0, -1, 0)
			return DateRange{Start: first, End: lastOfMonth(first)}
		},
	},
	{
		phrases: []string{"this quarter"},
		resolve: func(today time.Time) DateRange {
			startMonth := ((int(today.Month())-1)/3)*3 + 1
			first := time.Date(today.Year(), time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
			return DateRange{Start: first, End: lastOfMonth(first.AddDate(0, 2, 0))}
		},
	},
	{
		phrases: []string{"last 30 days", "past 30 days"},
		resolve: func(today time.Time) DateRange {
			return DateRange{Start: today.AddDate(0, 0, -29), End: today}
		},
	},
}

// ResolveDateRange maps a relative date phrase in the normalized text to a
// concrete range anchored at today. Today is an explicit argument so the
// mapping stays deterministic under test; callers pass their clock's current
// date. Returns nil when no phrase matches.
func ResolveDateRange(normalized string, today time.Time) *DateRange {
	day := truncateToDay(today)
	for _, rule := range dateRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(normalized, phrase) {
				resolved := rule.resolve(day)
				return &resolved
			}
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfISOWeek returns the Monday of the week containing day.
func startOfISOWeek(day time.Time) time.Time {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}

func firstOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func lastOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
