package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"safehours/storage"
)

func newExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all activities to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return &storage.MissingFieldError{Field: "out"}
			}
			c, _, release, err := a.load()
			if err != nil {
				return err
			}
			defer release()

			if c.Len() == 0 {
				return errNoData
			}
			if err := storage.NewCSVStore(out).Save(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d activities to %s\n", c.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination CSV file")
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace all activities with the rows of a CSV file",
		Long: `Replace all activities with the rows of a CSV file. Rows that are
malformed or overlap an earlier row are skipped and logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return &storage.MissingFieldError{Field: "in"}
			}
			imported, err := storage.NewCSVStore(in).Load()
			if err != nil {
				return err
			}
			if imported.Len() == 0 {
				return fmt.Errorf("%w in %s", errNoData, in)
			}

			if _, err := a.update(func(storage.Collection) (storage.Collection, error) {
				return imported, nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d activities from %s\n", imported.Len(), in)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Source CSV file")
	return cmd
}
