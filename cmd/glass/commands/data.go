package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import and inspect user data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write every user dataset to a single JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := absPath(args[0])
			if err != nil {
				return err
			}
			if !c.app.Export(p) {
				return failed("data export")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported user data to %s\n", p)
			return nil
		},
	})

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Load user datasets from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := absPath(args[0])
			if err != nil {
				return err
			}
			merge, _ := cmd.Flags().GetBool("merge")
			if !c.app.Import(p, merge) {
				return failed("data import")
			}
			return nil
		},
	}
	imp.Flags().BoolP("merge", "m", false, "Merge with the current data instead of replacing it")
	cmd.AddCommand(imp)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the dataset files and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := plainTable("DATASET", "BYTES", "CHECKSUM", "FILE")
			for _, st := range c.app.Stats() {
				size, sum := "-", "-"
				if st.Exists {
					size = strconv.FormatInt(st.SizeBytes, 10)
					sum = st.Checksum
				}
				t.Row(string(st.Name), size, sum, st.File)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	})

	return cmd
}
