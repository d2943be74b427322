package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Kind is the activity category as it appears in the row format.
type Kind string

const (
	KindFlight Kind = "Flight"
	KindSimATD Kind = "SIM/ATD"
	KindGround Kind = "Ground"
	KindOther  Kind = "Other Sched. Act."
)

// Kinds lists every activity kind in display order.
func Kinds() []Kind {
	return []Kind{KindFlight, KindSimATD, KindGround, KindOther}
}

var kindAliases = map[string]Kind{
	"flight":            KindFlight,
	"sim":               KindSimATD,
	"simatd":            KindSimATD,
	"sim/atd":           KindSimATD,
	"ground":            KindGround,
	"other":             KindOther,
	"other sched. act.": KindOther,
}

// ParseKind accepts a row label or a case-insensitive short alias.
func ParseKind(value string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: activity %q", ErrInvalidValue, value)
}

// AllowsPrePost reports whether pre/post allowance applies to the kind.
func (k Kind) AllowsPrePost() bool {
	return k == KindFlight || k == KindSimATD
}

// IsContact reports whether the kind counts toward contact time.
func (k Kind) IsContact() bool {
	return k != KindOther
}

// Record is one logged activity. End is always derived or validated against
// Start; the duration is never stored independently.
type Record struct {
	Date    Date
	Start   TimeOfDay
	End     TimeOfDay
	PrePost float64
	Kind    Kind
	Note    string
}

// Minutes returns End - Start in minutes.
func (r Record) Minutes() int {
	return int(r.End - r.Start)
}

// DurationHours returns End - Start in hours.
func (r Record) DurationHours() float64 {
	return float64(r.End-r.Start) / 60
}

// Header is the fixed column order of the row format.
var Header = []string{"Date", "Start", "End", "Duration", "Pre/Post", "Activity", "Note"}

// ToRow renders a record in Header column order. Fields are not escaped.
func ToRow(r Record) []string {
	return []string{
		r.Date.String(),
		FormatTimeOfDay(r.Start),
		FormatTimeOfDay(r.End),
		decimalHours(r.DurationHours()),
		strconv.FormatFloat(r.PrePost, 'f', -1, 64),
		string(r.Kind),
		r.Note,
	}
}

// FromRow parses fields in Header column order. The Duration column is
// ignored in favour of End - Start. Extra columns, such as the tail of a note
// that contained a comma, are dropped.
func FromRow(fields []string) (Record, error) {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	for i, name := range []string{"date", "start", "end"} {
		if get(i) == "" {
			return Record{}, &MissingFieldError{Field: name}
		}
	}
	if get(5) == "" {
		return Record{}, &MissingFieldError{Field: "activity"}
	}

	date, err := ParseDate(get(0))
	if err != nil {
		return Record{}, err
	}
	start, err := ParseTimeOfDay(get(1))
	if err != nil {
		return Record{}, err
	}
	end, err := ParseTimeOfDay(get(2))
	if err != nil {
		return Record{}, err
	}
	if _, err := DurationHours(start, end); err != nil {
		return Record{}, err
	}
	kind, err := ParseKind(get(5))
	if err != nil {
		return Record{}, err
	}
	prePost, err := parsePrePost(get(4), kind)
	if err != nil {
		return Record{}, err
	}
	var note string
	if len(fields) > 6 {
		note = fields[6]
	}

	return Record{
		Date:    date,
		Start:   start,
		End:     end,
		PrePost: prePost,
		Kind:    kind,
		Note:    note,
	}, nil
}

// FormatLine joins ToRow with commas.
func FormatLine(r Record) string {
	return strings.Join(ToRow(r), ",")
}

// ParseLine splits a raw line on commas and parses it with FromRow.
func ParseLine(raw string) (Record, error) {
	return FromRow(strings.Split(raw, ","))
}

func parsePrePost(value string, kind Kind) (float64, error) {
	if value == "" || !kind.AllowsPrePost() {
		return 0, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: pre/post %q", ErrInvalidValue, value)
	}
	return v, nil
}

// decimalHours renders the Duration column, e.g. "1.5".
func decimalHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64)
}

// DefaultDataPath returns ~/.safehours/activities.csv.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".safehours", "activities.csv")
	}
	return filepath.Join(home, ".safehours", "activities.csv")
}

// ReadRecords reads all rows from a file in the row format.
// The header row, blank lines and malformed rows are skipped.
// A missing file yields no records.
func ReadRecords(path string) ([]Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	records := []Record{}
	for i, line := range strings.Split(string(content), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isHeader(stripped) {
			continue
		}

		record, err := ParseLine(stripped)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":   path,
				"line":   i + 1,
				"reason": err.Error(),
			}).Warn("skipping malformed row")
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// WriteRecords writes the header followed by one row per record.
func WriteRecords(records []Record, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, record := range records {
		lines = append(lines, FormatLine(record))
	}

	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(content), 0644)
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, Header[0]+","+Header[1]+",")
}
