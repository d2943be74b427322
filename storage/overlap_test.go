package storage

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverlapsHalfOpen(t *testing.T) {
	require.True(t, Overlaps(9*60, 10*60, 8*60, 10*60))
	require.True(t, Overlaps(8*60, 12*60, 9*60, 10*60))
	require.False(t, Overlaps(8*60, 10*60, 10*60, 11*60), "touching at the end is not a conflict")
	require.False(t, Overlaps(10*60, 11*60, 8*60, 10*60), "touching at the start is not a conflict")
}

func TestOverlapsRandomizedAgainstMinuteScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		s1 := TimeOfDay(rng.Intn(100))
		e1 := s1 + 1 + TimeOfDay(rng.Intn(30))
		s2 := TimeOfDay(rng.Intn(100))
		e2 := s2 + 1 + TimeOfDay(rng.Intn(30))
		if rng.Intn(4) == 0 {
			s2 = e1 // exercise exact touching
			e2 = s2 + 1 + TimeOfDay(rng.Intn(30))
		}

		shared := false
		for m := s1; m < e1; m++ {
			if m >= s2 && m < e2 {
				shared = true
				break
			}
		}
		require.Equal(t, shared, Overlaps(s1, e1, s2, e2), "[%d,%d) vs [%d,%d)", s1, e1, s2, e2)
		require.Equal(t, Overlaps(s1, e1, s2, e2), Overlaps(s2, e2, s1, e1))
	}
}

func TestCheckOverlap(t *testing.T) {
	day := Date{Year: 2024, Month: time.January, Day: 1}
	first := Entry{ID: "a", Record: Record{Date: day, Start: 9 * 60, End: 10 * 60, Kind: KindFlight, Note: "Morning work"}}
	otherDay := Entry{ID: "b", Record: Record{Date: day.AddDays(1), Start: 9 * 60, End: 10 * 60, Kind: KindFlight}}
	entries := []Entry{first, otherDay}

	existing, overlap, found := CheckOverlap(entries, day, 9*60+30, 9*60+45, "")
	require.True(t, found)
	require.Equal(t, first.Note, existing.Note)
	require.Equal(t, 15*time.Minute, overlap)

	_, _, found = CheckOverlap(entries, day, 9*60+30, 9*60+45, "a")
	require.False(t, found, "the skipped entry must not conflict with itself")

	_, _, found = CheckOverlap(entries, day.AddDays(2), 9*60, 10*60, "")
	require.False(t, found)
}
