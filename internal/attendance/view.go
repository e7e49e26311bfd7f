package attendance

import (
	"sort"
	"strings"
)

// Filter is the listing criteria. Empty fields impose no constraint;
// set fields are combined with AND.
type Filter struct {
	StudentContains string // case-insensitive substring of StudentNumber
	ClassContains   string // case-insensitive substring of ClassName
	Date            string // exact YYYY-MM-DD match
}

// View returns a filtered copy of records sorted newest first: date
// descending, then in-time descending. Both fields are fixed-width
// zero-padded, so plain string comparison is chronological. The input
// slice is never mutated.
func View(records []Record, f Filter) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].InTime > sorted[j].InTime
	})

	if f.StudentContains == "" && f.ClassContains == "" && f.Date == "" {
		return sorted
	}

	student := strings.ToLower(f.StudentContains)
	class := strings.ToLower(f.ClassContains)
	out := sorted[:0]
	for _, rec := range sorted {
		if student != "" && !strings.Contains(strings.ToLower(rec.StudentNumber), student) {
			continue
		}
		if class != "" && !strings.Contains(strings.ToLower(rec.ClassName), class) {
			continue
		}
		if f.Date != "" && rec.Date != f.Date {
			continue
		}
		out = append(out, rec)
	}
	return out
}
