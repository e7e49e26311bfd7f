package attendance

import "strings"

// keyDelim separates the natural-key fields. Student numbers are free
// text and regularly contain hyphens, so a printable delimiter would be
// collision-prone; the unit separator cannot be typed into the form and
// never appears in a date or class label.
const keyDelim = "\x1f"

// Record is one attendance entry, at most one per student, class and
// calendar date. The JSON field names match the original browser-stored
// payload so existing exports stay readable.
type Record struct {
	ID            string `json:"id"`
	ClassName     string `json:"className"`
	StudentNumber string `json:"studentNumber"`
	Date          string `json:"date"`   // YYYY-MM-DD
	InTime        string `json:"inTime"` // HH:mm:ss
	OutTime       string `json:"outTime,omitempty"`
}

// Complete reports whether the record has both an in and an out time.
func (r Record) Complete() bool { return r.OutTime != "" }

// RecordID derives the natural key for a (student, class, date) triple.
// Two submissions for the same triple always map to the same record.
func RecordID(studentNumber, className, date string) string {
	return strings.Join([]string{studentNumber, className, date}, keyDelim)
}
