package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCollection(t *testing.T) Collection {
	t.Helper()
	c := NewCollection()
	var err error
	for _, cand := range []Candidate{
		{Date: "2024-03-06", Start: "07:00", Duration: "1.5", Kind: "Flight", PrePost: "0.5", Note: "steep turns"},
		{Date: "2024-03-07", Start: "09:00", Duration: "1", Kind: "Ground"},
		{Date: "2024-03-07", Start: "13:15", Duration: "2.25", Kind: "Other Sched. Act.", Note: "standup"},
	} {
		c, _, err = c.Add(cand)
		require.NoError(t, err)
	}
	return c
}

func requireSameEntries(t *testing.T, want, got Collection) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for _, e := range want.Entries() {
		loaded, ok := got.Get(e.ID)
		require.True(t, ok, "entry %s missing after reload", e.ID)
		require.Equal(t, e.Record, loaded.Record)
	}
}

func TestCSVStoreRoundTrip(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "activities.csv"))
	c := sampleCollection(t)

	require.NoError(t, store.Save(c))
	loaded, err := store.Load()
	require.NoError(t, err)
	requireSameEntries(t, c, loaded)

	content, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Equal(t, "2024-03-07,13:15,15:30,2.25,0,Other Sched. Act.,standup", lines[1], "rows are written newest first")
}

func TestCSVStoreSkipsConflictingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.csv")
	content := "Date,Start,End,Duration,Pre/Post,Activity,Note\n" +
		"2024-03-07,08:00,10:00,2,0,Flight,\n" +
		"2024-03-07,09:00,11:00,2,0,Flight,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := NewCSVStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "db", "safehours.db"))
	require.NoError(t, err)
	defer store.Close()

	empty, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())

	c := sampleCollection(t)
	require.NoError(t, store.Save(c))

	loaded, err := store.Load()
	require.NoError(t, err)
	requireSameEntries(t, c, loaded)

	// Saving a smaller collection replaces the previous contents.
	first := c.Entries()[0]
	require.NoError(t, store.Save(c.Remove(first.ID)))
	loaded, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	_, ok := loaded.Get(first.ID)
	require.False(t, ok)
}

func TestSQLiteStoreKeepsStoredIDs(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "safehours.db"))
	require.NoError(t, err)
	defer store.Close()

	r := Record{Date: Date{Year: 2024, Month: 3, Day: 7}, Start: 8 * 60, End: 9 * 60, Kind: KindGround}
	c, entry, err := NewCollection().InsertWithID("legacy-id", r)
	require.NoError(t, err)
	require.Equal(t, "legacy-id", entry.ID)
	require.NoError(t, store.Save(c))

	loaded, err := store.Load()
	require.NoError(t, err)
	got, ok := loaded.Get("legacy-id")
	require.True(t, ok, "rows come back under the stored ID")
	require.Equal(t, r, got.Record)
}

func TestInsertWithIDReplacesTakenID(t *testing.T) {
	r := Record{Date: Date{Year: 2024, Month: 3, Day: 7}, Start: 8 * 60, End: 9 * 60, Kind: KindGround}
	c, first, err := NewCollection().InsertWithID("dup", r)
	require.NoError(t, err)

	r.Start, r.End = 10*60, 11*60
	_, second, err := c.InsertWithID("dup", r)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.NotEmpty(t, second.ID)
}
