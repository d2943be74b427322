// Package cli implements the safehours command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"safehours/config"
	"safehours/storage"
)

var errNoData = errors.New("no data available")

// app carries what every command needs once flags and config are merged.
type app struct {
	dataPath string
	backend  string
	verbose  bool

	cfg *config.Config
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "safehours",
		Short: "Flight instructor duty log and rest-rule checker",
		Long: `safehours records flight, simulator, ground and other scheduled activities
and checks them against the instructor duty limits: flight hours and contact
hours per day, duty period, rest before duty, consecutive days, and contact
hours over the last seven days.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "Data file (overrides config and SAFEHOURS_PATH)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend: csv or sqlite")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAddCommand(a),
		newEditCommand(a),
		newRemoveCommand(a),
		newListCommand(a),
		newReportCommand(a),
		newTotalsCommand(a),
		newWeekCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newTimelineCommand(a),
		newTUICommand(a),
		newConfigCommand(a),
	)
	return root
}

// RunCLI executes args against a fresh command tree, writing to out.
func RunCLI(args []string, out io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	return root.Execute()
}

// Execute runs the command line for the process.
func Execute(version string) error {
	root := NewRootCommand()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.backend != "" {
		cfg.Backend = strings.ToLower(a.backend)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.dataPath != "" {
		cfg.DataPath = a.dataPath
	}
	a.cfg = cfg

	logrus.SetOutput(cmd.ErrOrStderr())
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	logrus.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"path":    cfg.ResolvedDataPath(),
	}).Debug("using data store")
	return nil
}

// openStore returns the configured store and a function releasing it.
func (a *app) openStore() (storage.Store, func(), error) {
	path := a.cfg.ResolvedDataPath()
	switch a.cfg.Backend {
	case config.BackendSQLite:
		s, err := storage.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close database")
			}
		}, nil
	default:
		return storage.NewCSVStore(path), func() {}, nil
	}
}

// load opens the store and reads the collection.
func (a *app) load() (storage.Collection, storage.Store, func(), error) {
	store, release, err := a.openStore()
	if err != nil {
		return storage.Collection{}, nil, nil, err
	}
	c, err := store.Load()
	if err != nil {
		release()
		return storage.Collection{}, nil, nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return c, store, release, nil
}

// update loads the collection, applies change, and saves the result.
func (a *app) update(change func(storage.Collection) (storage.Collection, error)) (storage.Collection, error) {
	c, store, release, err := a.load()
	if err != nil {
		return storage.Collection{}, err
	}
	defer release()

	next, err := change(c)
	if err != nil {
		return storage.Collection{}, err
	}
	if err := store.Save(next); err != nil {
		return storage.Collection{}, err
	}
	return next, nil
}

// ShortID is the prefix of an entry ID shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID finds the single entry whose ID starts with prefix.
func resolveID(c storage.Collection, prefix string) (storage.Entry, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return storage.Entry{}, &storage.MissingFieldError{Field: "id"}
	}

	var matches []storage.Entry
	for _, e := range c.Entries() {
		if e.ID == prefix {
			return e, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return storage.Entry{}, fmt.Errorf("%w: %s", storage.ErrEntryNotFound, prefix)
	case 1:
		return matches[0], nil
	}
	return storage.Entry{}, fmt.Errorf("id prefix %q matches %d entries", prefix, len(matches))
}

// dateOrToday parses value, defaulting to today's local date.
func dateOrToday(value string) (storage.Date, error) {
	if value == "" {
		return storage.Today(), nil
	}
	return storage.ParseDate(value)
}

func describe(e storage.Entry) string {
	line := fmt.Sprintf("%s  %s %s-%s  %-17s %s",
		ShortID(e.ID),
		e.Date,
		e.Start,
		e.End,
		e.Kind,
		storage.FormatHours(e.DurationHours()),
	)
	if e.PrePost > 0 {
		line += fmt.Sprintf(" +%s pre/post", storage.FormatHours(e.PrePost))
	}
	if e.Note != "" {
		line += "  " + e.Note
	}
	return line
}
