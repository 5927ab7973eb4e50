package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/glass/internal/core/domain"
)

// visitOps binds the operations of a timestamped path dataset.
type visitOps struct {
	noun  string
	list  func(limit int) domain.History
	add   func(p string) bool
	clear func() bool
}

func (c *CLI) newHistoryCmd() *cobra.Command {
	return newVisitCmd("history", "Manage the navigation history", visitOps{
		noun:  "history entry",
		list:  func(limit int) domain.History { return c.app.History(limit) },
		add:   func(p string) bool { return c.app.AddHistory(p) },
		clear: func() bool { return c.app.ClearHistory() },
	})
}

func (c *CLI) newRecentCmd() *cobra.Command {
	return newVisitCmd("recent", "Manage recently opened files", visitOps{
		noun:  "recent file",
		list:  func(limit int) domain.History { return c.app.RecentFiles(limit) },
		add:   func(p string) bool { return c.app.AddRecentFile(p) },
		clear: func() bool { return c.app.ClearRecentFiles() },
	})
}

func newVisitCmd(use, short string, ops visitOps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			for _, e := range ops.list(limit) {
				when := "-"
				if !e.Timestamp.IsZero() {
					when = e.Timestamp.Local().Format(time.DateTime)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", when, e.Path)
			}
			return nil
		},
	}
	list.Flags().IntP("limit", "n", 0, "Show only the newest N entries")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "add <path>",
		Short: "Record a " + ops.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := absPath(args[0])
			if err != nil {
				return err
			}
			if !ops.add(p) {
				return failed(use + " add")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every " + ops.noun,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !ops.clear() {
				return failed(use + " clear")
			}
			return nil
		},
	})

	return cmd
}
