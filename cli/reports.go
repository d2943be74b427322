package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"safehours/compliance"
	"safehours/storage"
	"safehours/tui"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		date      string
		citations bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Check a day against the duty limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			report := compliance.BuildReport(c.Records(), d)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Report %s\n", d)
			for _, as := range report.Assessments {
				fmt.Fprintf(out, "- %-18s %-10s %s\n", as.Metric.String()+":", formatValue(as), tierLabel(as.Tier))
				if citations || as.Tier != compliance.TierNormal {
					fmt.Fprintf(out, "    %s\n", as.Citation)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&citations, "citations", false, "Show the rule text for every metric")
	return cmd
}

func newTotalsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Total logged hours per activity kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			totals := compliance.ActivityTotals(c.Records())
			if len(totals) == 0 {
				fmt.Fprintln(out, "No activities.")
				return nil
			}

			var total float64
			for _, kind := range storage.Kinds() {
				hours, ok := totals[kind]
				if !ok {
					continue
				}
				total += hours
				fmt.Fprintf(out, "- %s: %s\n", kind, storage.FormatHours(hours))
			}
			fmt.Fprintf(out, "Total: %s\n", storage.FormatHours(total))
			return nil
		},
	}
}

func newWeekCommand(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Flight and contact hours for the seven days ending on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			series := compliance.WeeklyTimeSeries(c.Records(), d)
			if len(series) == 0 {
				fmt.Fprintln(out, "No activities in the last seven days.")
				return nil
			}
			fmt.Fprintf(out, "%-10s  %8s  %8s\n", "Date", "Flight", "Contact")
			for _, p := range series {
				fmt.Fprintf(out, "%-10s  %8s  %8s\n", p.Date, storage.FormatHours(p.FlightHours), storage.FormatHours(p.ContactHours))
			}
			fmt.Fprintf(out, "Rolling 7 days: %s\n", storage.FormatHours(compliance.RollingWeekHours(c.Records(), d)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Last day of the week (YYYY-MM-DD, default today)")
	return cmd
}

func newTimelineCommand(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show a 24-hour timeline of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			return tui.ShowTimeline(c.Records(), d)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to show (YYYY-MM-DD, default today)")
	return cmd
}

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := a.openStore()
			if err != nil {
				return err
			}
			defer release()
			return tui.LaunchTUI(store)
		},
	}
}
