package tui

import (
	"sort"

	"safehours/compliance"
	"safehours/storage"
	"safehours/tui/components"
)

// ViewRange returns the first and last date shown by a view mode ending on
// date. The week view matches the rolling seven-day window.
func ViewRange(mode ViewMode, date storage.Date) (storage.Date, storage.Date) {
	switch mode {
	case ViewWeek:
		return date.AddDays(-(compliance.WindowDays - 1)), date
	case ViewMonth:
		return date.AddDays(-27), date
	}
	return date, date
}

// FilterEntriesByRange keeps entries dated from first to last inclusive.
func FilterEntriesByRange(entries []storage.Entry, first, last storage.Date) []storage.Entry {
	var filtered []storage.Entry
	for _, e := range entries {
		if !e.Date.Before(first) && !last.Before(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GroupByKind groups entries by kind, largest total first. Entries inside a
// group are ordered by date and start, newest first.
func GroupByKind(entries []storage.Entry) []components.KindGroup {
	byKind := make(map[storage.Kind]*components.KindGroup)
	for _, e := range entries {
		group, ok := byKind[e.Kind]
		if !ok {
			group = &components.KindGroup{Kind: e.Kind}
			byKind[e.Kind] = group
		}
		group.Hours += e.DurationHours()
		group.Entries = append(group.Entries, e)
	}

	groups := make([]components.KindGroup, 0, len(byKind))
	for _, group := range byKind {
		sort.SliceStable(group.Entries, func(i, j int) bool {
			a, b := group.Entries[i], group.Entries[j]
			if c := a.Date.Compare(b.Date); c != 0 {
				return c > 0
			}
			return a.Start > b.Start
		})
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Hours != groups[j].Hours {
			return groups[i].Hours > groups[j].Hours
		}
		return groups[i].Kind < groups[j].Kind
	})
	return groups
}

// CalculateKindTotals sums hours per kind over the entries.
func CalculateKindTotals(entries []storage.Entry) map[storage.Kind]float64 {
	records := make([]storage.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	return compliance.ActivityTotals(records)
}
