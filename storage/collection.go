package storage

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var entryNamespace = uuid.MustParse("6f1c2a9e-4d0b-5e7a-9c3f-2b8d1e0a7c55")

// Entry is a record together with its identity inside a Collection.
type Entry struct {
	ID string
	Record
}

// Candidate is the raw input for a new activity, as typed by a user.
// End is never supplied; it is derived from Start and Duration.
type Candidate struct {
	Date     string
	Start    string
	Duration string // hours, e.g. "1.5"
	Kind     string
	PrePost  string // optional, hours
	Note     string
}

// Field names an editable record field.
type Field string

const (
	FieldDate     Field = "date"
	FieldStart    Field = "start"
	FieldEnd      Field = "end"
	FieldDuration Field = "duration"
	FieldPrePost  Field = "prepost"
	FieldKind     Field = "kind"
	FieldNote     Field = "note"
)

// ParseField accepts a field name, including the row header spellings.
func ParseField(value string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "date":
		return FieldDate, nil
	case "start":
		return FieldStart, nil
	case "end":
		return FieldEnd, nil
	case "duration":
		return FieldDuration, nil
	case "prepost", "pre/post":
		return FieldPrePost, nil
	case "kind", "activity":
		return FieldKind, nil
	case "note":
		return FieldNote, nil
	}
	return "", fmt.Errorf("%w: field %q", ErrInvalidValue, value)
}

// Collection is the validated set of activity entries, in insertion order.
// It is a value: mutators return a new Collection and never modify the
// receiver, so a rejected change leaves the caller's copy intact.
type Collection struct {
	entries []Entry
}

// NewCollection returns an empty collection.
func NewCollection() Collection {
	return Collection{}
}

// FromRecords builds a collection by inserting each record in order.
// Records that fail validation are left out and their errors returned.
func FromRecords(records []Record) (Collection, []error) {
	c := NewCollection()
	var rejected []error
	for i, r := range records {
		next, _, err := c.Insert(r)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		c = next
	}
	return c, rejected
}

// Len returns the number of entries.
func (c Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Records returns the bare records in insertion order.
func (c Collection) Records() []Record {
	out := make([]Record, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Record
	}
	return out
}

// Get looks an entry up by ID.
func (c Collection) Get(id string) (Entry, bool) {
	if i := c.index(id); i >= 0 {
		return c.entries[i], true
	}
	return Entry{}, false
}

// Sorted returns the entries ordered by (date, start) descending, the order
// used for display.
func (c Collection) Sorted() []Entry {
	out := c.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := out[i].Date.Compare(out[j].Date); cmp != 0 {
			return cmp > 0
		}
		return out[i].Start > out[j].Start
	})
	return out
}

// OnDate returns the entries on d ordered by start time.
func (c Collection) OnDate(d Date) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Date == d {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Add validates a raw candidate and appends it.
// Required fields are checked first (ErrMissingField), then parsed
// (ErrInvalidValue), then the interval is validated (ErrInvalidTimeRange,
// ErrOverlapConflict). An absent pre/post defaults to 0.
func (c Collection) Add(candidate Candidate) (Collection, Entry, error) {
	required := []struct {
		name  string
		value string
	}{
		{"date", candidate.Date},
		{"start", candidate.Start},
		{"duration", candidate.Duration},
		{"activity", candidate.Kind},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return c, Entry{}, &MissingFieldError{Field: f.name}
		}
	}

	date, err := ParseDate(strings.TrimSpace(candidate.Date))
	if err != nil {
		return c, Entry{}, err
	}
	start, err := ParseTimeOfDay(strings.TrimSpace(candidate.Start))
	if err != nil {
		return c, Entry{}, err
	}
	hours, err := parseDurationHours(candidate.Duration)
	if err != nil {
		return c, Entry{}, err
	}
	kind, err := ParseKind(candidate.Kind)
	if err != nil {
		return c, Entry{}, err
	}
	prePost, err := parsePrePost(strings.TrimSpace(candidate.PrePost), kind)
	if err != nil {
		return c, Entry{}, err
	}
	end, err := EndAfter(start, hours)
	if err != nil {
		return c, Entry{}, err
	}

	return c.Insert(Record{
		Date:    date,
		Start:   start,
		End:     end,
		PrePost: prePost,
		Kind:    kind,
		Note:    candidate.Note,
	})
}

// Insert validates an already parsed record and appends it under a new ID.
func (c Collection) Insert(r Record) (Collection, Entry, error) {
	return c.InsertWithID("", r)
}

// InsertWithID is Insert for a record that already has an identity, such as
// a stored row. An empty ID, or one already taken, is replaced by a derived one.
func (c Collection) InsertWithID(id string, r Record) (Collection, Entry, error) {
	r, err := normalize(r)
	if err != nil {
		return c, Entry{}, err
	}
	if existing, overlap, found := CheckOverlap(c.entries, r.Date, r.Start, r.End, ""); found {
		return c, Entry{}, &OverlapError{Existing: existing, Overlap: overlap}
	}

	if id == "" || c.index(id) >= 0 {
		id = c.newID(r)
	}
	entry := Entry{ID: id, Record: r}
	next := make([]Entry, len(c.entries), len(c.entries)+1)
	copy(next, c.entries)
	next = append(next, entry)
	return Collection{entries: next}, entry, nil
}

// Edit changes a single field of the entry with the given ID and returns the
// edited entry. Any change to the interval (date, start, end or duration)
// re-runs the time range and overlap checks before the change is committed.
// Moving the date or start gives the entry the ID a reload would derive.
func (c Collection) Edit(id string, field Field, value string) (Collection, Entry, error) {
	i := c.index(id)
	if i < 0 {
		return c, Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	before := c.entries[i].Record
	r := before
	value = strings.TrimSpace(value)
	if value == "" && field != FieldNote && field != FieldPrePost {
		return c, Entry{}, &MissingFieldError{Field: string(field)}
	}

	var err error
	switch field {
	case FieldDate:
		r.Date, err = ParseDate(value)
	case FieldStart:
		r.Start, err = ParseTimeOfDay(value)
	case FieldEnd:
		r.End, err = ParseTimeOfDay(value)
	case FieldDuration:
		var hours float64
		if hours, err = parseDurationHours(value); err == nil {
			r.End, err = EndAfter(r.Start, hours)
		}
	case FieldPrePost:
		r.PrePost, err = parsePrePost(value, r.Kind)
	case FieldKind:
		r.Kind, err = ParseKind(value)
	case FieldNote:
		r.Note = value
	default:
		err = fmt.Errorf("%w: field %q", ErrInvalidValue, field)
	}
	if err != nil {
		return c, Entry{}, err
	}

	r, err = normalize(r)
	if err != nil {
		return c, Entry{}, err
	}
	if existing, overlap, found := CheckOverlap(c.entries, r.Date, r.Start, r.End, id); found {
		return c, Entry{}, &OverlapError{Existing: existing, Overlap: overlap}
	}

	entry := Entry{ID: id, Record: r}
	if r.Date != before.Date || r.Start != before.Start {
		entry.ID = c.Remove(id).newID(r)
	}
	next := c.Entries()
	next[i] = entry
	return Collection{entries: next}, entry, nil
}

// Remove drops the entry with the given ID. Unknown IDs leave the collection
// unchanged.
func (c Collection) Remove(id string) Collection {
	i := c.index(id)
	if i < 0 {
		return c
	}
	next := make([]Entry, 0, len(c.entries)-1)
	next = append(next, c.entries[:i]...)
	next = append(next, c.entries[i+1:]...)
	return Collection{entries: next}
}

// newID derives the ID from the record's date and start, which are unique
// among non-overlapping entries, so IDs survive a save and reload. A stored
// ID from another scheme could still collide; that case gets a random ID.
func (c Collection) newID(r Record) string {
	id := uuid.NewSHA1(entryNamespace, []byte(r.Date.String()+"T"+FormatTimeOfDay(r.Start))).String()
	if c.index(id) >= 0 {
		return uuid.NewString()
	}
	return id
}

func (c Collection) index(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// normalize enforces the record invariants: a positive same-day interval and
// a non-negative pre/post that is zero for kinds it does not apply to.
func normalize(r Record) (Record, error) {
	if r.Start < 0 || r.End >= MinutesPerDay {
		return r, fmt.Errorf("%w: %s-%s is outside a single day", ErrInvalidTimeRange, r.Start, r.End)
	}
	if _, err := DurationHours(r.Start, r.End); err != nil {
		return r, err
	}
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return r, err
	}
	if r.PrePost < 0 {
		return r, fmt.Errorf("%w: pre/post %.2f is negative", ErrInvalidValue, r.PrePost)
	}
	if !r.Kind.AllowsPrePost() {
		r.PrePost = 0
	}
	return r, nil
}

func parseDurationHours(value string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidValue, value)
	}
	return hours, nil
}
