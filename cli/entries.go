package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"safehours/compliance"
	"safehours/storage"
)

func newAddCommand(a *app) *cobra.Command {
	var cand storage.Candidate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log an activity",
		Long: `Log an activity. The end time is derived from --start and --duration.
Pre/post hours only count for Flight and SIM/ATD.`,
		Example: `  safehours add --date 2024-03-07 --start 08:00 --duration 2 --kind flight --prepost 0.5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cand.Date == "" {
				cand.Date = storage.Today().String()
			}

			var added storage.Entry
			c, err := a.update(func(c storage.Collection) (storage.Collection, error) {
				next, entry, err := c.Add(cand)
				added = entry
				return next, err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s\n", describe(added))
			printAlerts(out, compliance.BuildReport(c.Records(), added.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&cand.Date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&cand.Start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&cand.Duration, "duration", "", "Duration in hours, e.g. 1.5")
	cmd.Flags().StringVar(&cand.Kind, "kind", "", "Flight, SIM/ATD, Ground or Other")
	cmd.Flags().StringVar(&cand.PrePost, "prepost", "", "Pre/post briefing hours (Flight and SIM/ATD)")
	cmd.Flags().StringVar(&cand.Note, "note", "", "Free-text note")
	return cmd
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID FIELD VALUE",
		Short: "Change one field of an activity",
		Long: `Change one field of an activity. FIELD is one of date, start, end,
duration, prepost, kind or note. ID may be any unique prefix.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := storage.ParseField(args[1])
			if err != nil {
				return err
			}

			var edited storage.Entry
			c, err := a.update(func(c storage.Collection) (storage.Collection, error) {
				entry, err := resolveID(c, args[0])
				if err != nil {
					return c, err
				}
				next, entry, err := c.Edit(entry.ID, field, args[2])
				edited = entry
				return next, err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated %s\n", describe(edited))
			printAlerts(out, compliance.BuildReport(c.Records(), edited.Date))
			return nil
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed storage.Entry
			_, err := a.update(func(c storage.Collection) (storage.Collection, error) {
				entry, err := resolveID(c, args[0])
				if err != nil {
					return c, err
				}
				removed = entry
				return c.Remove(entry.ID), nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", describe(removed))
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			entries := c.Sorted()
			if date != "" {
				d, err := storage.ParseDate(date)
				if err != nil {
					return err
				}
				entries = c.OnDate(d)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No activities.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, describe(e))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only list this date (YYYY-MM-DD)")
	return cmd
}

// printAlerts writes each metric above the normal tier with its rule text.
func printAlerts(out io.Writer, report compliance.Report) {
	for _, a := range report.Assessments {
		if a.Tier == compliance.TierNormal {
			continue
		}
		fmt.Fprintf(out, "%s: %s is %s\n  %s\n",
			tierLabel(a.Tier), a.Metric, formatValue(a), a.Citation)
	}
}

func tierLabel(t compliance.Tier) string {
	switch t {
	case compliance.TierViolation:
		return "VIOLATION"
	case compliance.TierCaution:
		return "CAUTION"
	}
	return "ok"
}

func formatValue(a compliance.Assessment) string {
	if a.Metric == compliance.MetricConsecutiveDays {
		return fmt.Sprintf("%d days", int(a.Value))
	}
	return storage.FormatHours(a.Value)
}
