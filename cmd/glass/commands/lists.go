package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// pathListOps binds the operations of one path list dataset.
type pathListOps struct {
	noun     string
	list     func() []string
	add      func(p string) bool
	remove   func(p string) bool
	contains func(p string) bool
	clear    func() bool
}

func (c *CLI) newFavCmd() *cobra.Command {
	return newPathListCmd("fav", "Manage favorite folders", pathListOps{
		noun:     "favorite",
		list:     func() []string { return c.app.Favorites() },
		add:      func(p string) bool { return c.app.AddFavorite(p) },
		remove:   func(p string) bool { return c.app.RemoveFavorite(p) },
		contains: func(p string) bool { return c.app.IsFavorite(p) },
		clear:    func() bool { return c.app.ClearFavorites() },
	})
}

func (c *CLI) newStartupCmd() *cobra.Command {
	return newPathListCmd("startup", "Manage items opened on launch", pathListOps{
		noun:     "startup item",
		list:     func() []string { return c.app.StartupItems() },
		add:      func(p string) bool { return c.app.AddStartupItem(p) },
		remove:   func(p string) bool { return c.app.RemoveStartupItem(p) },
		contains: func(p string) bool { return slices.Contains(c.app.StartupItems(), p) },
		clear:    func() bool { return c.app.ClearStartupItems() },
	})
}

func newPathListCmd(use, short string, ops pathListOps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every " + ops.noun,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range ops.list() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <path>",
		Short: "Add a " + ops.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := absPath(args[0])
			if err != nil {
				return err
			}
			if ops.contains(p) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is already a %s\n", p, ops.noun)
				return nil
			}
			if !ops.add(p) {
				return failed(use + " add")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <path>",
		Aliases: []string{"remove"},
		Short:   "Remove a " + ops.noun,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := absPath(args[0])
			if err != nil {
				return err
			}
			if !ops.contains(p) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is not a %s\n", p, ops.noun)
				return nil
			}
			if !ops.remove(p) {
				return failed(use + " rm")
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
