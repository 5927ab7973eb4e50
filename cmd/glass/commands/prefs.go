package commands

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/glass/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newBookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage named bookmarks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarks by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := c.app.Bookmarks()
			t := plainTable("NAME", "PATH")
			for _, name := range slices.Sorted(maps.Keys(b)) {
				t.Row(name, b[name])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <path>",
		Short: "Bookmark a path under a name, replacing any previous target",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := absPath(args[1])
			if err != nil {
				return err
			}
			if !c.app.AddBookmark(args[0], p) {
				return failed("bookmark add")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := c.app.Bookmarks()[args[0]]; !ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no bookmark named %q\n", args[0])
				return nil
			}
			if !c.app.RemoveBookmark(args[0]) {
				return failed("bookmark rm")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every bookmark",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !c.app.ClearBookmarks() {
				return failed("bookmark clear")
			}
			return nil
		},
	})

	return cmd
}

func (c *CLI) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change user settings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := c.app.Settings()
			if all, _ := cmd.Flags().GetBool("all"); all {
				s = c.app.EffectiveSettings()
			}
			t := plainTable("KEY", "VALUE")
			for _, key := range slices.Sorted(maps.Keys(s)) {
				t.Row(key, settingText(s[key]))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
	list.Flags().BoolP("all", "a", false, "Include defaults for settings that are not stored")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting, falling back to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := c.app.Setting(args[0], domain.DefaultSettings()[args[0]])
			if v == nil {
				return zerr.With(zerr.Wrap(domain.ErrSettingNotSet, args[0]), "key", args[0])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), settingText(v))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting; values that parse as JSON keep their type",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if !c.app.SetSetting(args[0], parseSettingValue(args[1])) {
				return failed("settings set")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every stored setting",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if !c.app.ClearSettings() {
				return failed("settings clear")
			}
			return nil
		},
	})

	return cmd
}

// parseSettingValue reads raw as JSON and falls back to the literal string.
func parseSettingValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func settingText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func plainTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderHeader(false).
		Headers(headers...)
}
