// Package commands implements the CLI commands for glass.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/glass/internal/build"
	"go.trai.ch/glass/internal/core/domain"
)

// CLI represents the command line interface for glass.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Sizes is the folder size side of the application.
type Sizes interface {
	List(dir string, onDone func(path string)) ([]domain.Row, error)
	SortRows(rows []domain.Row, by domain.SortKey)
	WaitForSizes()
	MeasureSize(ctx context.Context, path string) (int64, error)
	Browse(ctx context.Context, dir string) error
	CacheStats() (int, string)
	ClearCache() bool
}

// PathLists covers the datasets that hold plain path lists.
type PathLists interface {
	Favorites() []string
	AddFavorite(p string) bool
	RemoveFavorite(p string) bool
	IsFavorite(p string) bool
	ClearFavorites() bool

	StartupItems() []string
	AddStartupItem(p string) bool
	RemoveStartupItem(p string) bool
	ClearStartupItems() bool
}

// Visits covers history and recent files.
type Visits interface {
	History(limit int) domain.History
	AddHistory(p string) bool
	ClearHistory() bool

	RecentFiles(limit int) domain.History
	AddRecentFile(p string) bool
	ClearRecentFiles() bool
}

// Preferences covers bookmarks and settings.
type Preferences interface {
	Bookmarks() map[string]string
	AddBookmark(name, p string) bool
	RemoveBookmark(name string) bool
	ClearBookmarks() bool

	Settings() domain.Settings
	EffectiveSettings() domain.Settings
	Setting(key string, def any) any
	SetSetting(key string, v any) bool
	ClearSettings() bool
}

// Transfer covers export, import and dataset statistics.
type Transfer interface {
	Export(path string) bool
	Import(path string, merge bool) bool
	Stats() []domain.DatasetStat
}

// Application represents the application logic interface.
type Application interface {
	Sizes
	PathLists
	Visits
	Preferences
	Transfer
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "glass",
		Short:         "A file browser core with a persistent folder size cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newLsCmd())
	rootCmd.AddCommand(c.newSizeCmd())
	rootCmd.AddCommand(c.newBrowseCmd())
	rootCmd.AddCommand(c.newFavCmd())
	rootCmd.AddCommand(c.newStartupCmd())
	rootCmd.AddCommand(c.newBookmarkCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newRecentCmd())
	rootCmd.AddCommand(c.newSettingsCmd())
	rootCmd.AddCommand(c.newDataCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
