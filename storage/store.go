package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Store loads and saves a whole collection. Callers own when to load and
// save; nothing in the collection or compliance code calls a Store.
type Store interface {
	Load() (Collection, error)
	Save(Collection) error
}

// CSVStore keeps the collection in a single file using the row format.
type CSVStore struct {
	Path string
}

// NewCSVStore returns a CSVStore at path, or at DefaultDataPath when path is
// empty.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultDataPath()
	}
	return &CSVStore{Path: path}
}

// Load reads the file and rebuilds the collection. Rows that conflict with
// an earlier row are skipped and logged.
func (s *CSVStore) Load() (Collection, error) {
	records, err := ReadRecords(s.Path)
	if err != nil {
		return Collection{}, err
	}
	c, rejected := FromRecords(records)
	logRejected(s.Path, rejected)
	return c, nil
}

// Save rewrites the file with every entry in display order.
func (s *CSVStore) Save(c Collection) error {
	records := make([]Record, 0, c.Len())
	for _, e := range c.Sorted() {
		records = append(records, e.Record)
	}
	if err := WriteRecords(records, s.Path); err != nil {
		return fmt.Errorf("failed to save activities: %w", err)
	}
	return nil
}

func logRejected(source string, rejected []error) {
	for _, err := range rejected {
		logrus.WithFields(logrus.Fields{
			"source": source,
			"reason": err.Error(),
		}).Warn("skipping invalid activity")
	}
}
