package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/glass/internal/core/domain"
)

func (c *CLI) newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a directory with folder sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := absPath(dir)
			if err != nil {
				return err
			}
			sortBy, _ := cmd.Flags().GetString("sort")
			wait, _ := cmd.Flags().GetBool("wait")

			rows, err := c.app.List(dir, nil)
			if err != nil && rows == nil {
				return err
			}
			if wait {
				c.app.WaitForSizes()
				if rows, err = c.app.List(dir, nil); err != nil && rows == nil {
					return err
				}
			}
			c.app.SortRows(rows, domain.ParseSortKey(sortBy))

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rowTable(rows))
			return err
		},
	}
	cmd.Flags().StringP("sort", "s", string(domain.SortByName), "Sort by name or size")
	cmd.Flags().BoolP("wait", "w", false, "Wait for pending folder sizes before printing")
	return cmd
}

func rowTable(rows []domain.Row) string {
	t := plainTable("SIZE", "NAME").
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Align(lipgloss.Right).PaddingRight(1)
			}
			return lipgloss.NewStyle()
		})
	for _, row := range rows {
		name := row.Name
		if row.IsDir {
			name += "/"
		}
		t.Row(row.Size.Text, name)
	}
	return t.String()
}

func (c *CLI) newSizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size <path>...",
		Short: "Compute folder sizes, using the cache when it is valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exact, _ := cmd.Flags().GetBool("exact")

			var errs error
			for _, arg := range args {
				path, err := absPath(arg)
				if err != nil {
					errs = errors.Join(errs, err)
					continue
				}
				size, err := c.app.MeasureSize(cmd.Context(), path)
				if err != nil {
					errs = errors.Join(errs, err)
					if size == 0 {
						continue
					}
				}
				text := domain.DisplaySize(size)
				if exact {
					text = domain.ExactSize(size)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", text, path)
			}
			return errs
		},
	}
	cmd.Flags().BoolP("exact", "e", false, "Print the exact byte count")
	return cmd
}

func (c *CLI) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse folders interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.app.Browse(cmd.Context(), dir)
		},
	}
}

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the folder size cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, path := c.app.CacheStats()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d folders cached in %s\n", n, path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached folder size",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !c.app.ClearCache() {
				return failed("cache clear")
			}
			return nil
		},
	})
	return cmd
}
