package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/bitacora/internal/api"
	"github.com/Tiliavir/bitacora/internal/config"
	"github.com/Tiliavir/bitacora/internal/credentials"
	"github.com/Tiliavir/bitacora/internal/errors"
	"github.com/Tiliavir/bitacora/internal/logger"
	"github.com/Tiliavir/bitacora/internal/logstate"
	"github.com/Tiliavir/bitacora/internal/prefs"
	"github.com/Tiliavir/bitacora/internal/timecalc"
	"github.com/Tiliavir/bitacora/internal/toast"
)

var (
	flagDebug  bool
	flagAPIURL string
)

var rootCmd = &cobra.Command{
	Use:   "bitacora",
	Short: "bitacora – keep your daily_tasks work log from the terminal",
	Long: `bitacora lists, creates, edits and deletes the entries of your weekly
work log on a daily_tasks server. Settings live in ~/.bitacora/.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
}

// Execute is the entry point called from main.
func Execute() {
	errors.Fatal(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Override the daily_tasks server URL")

	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// initLogging starts the rotating log before any command runs.
func initLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir := cfg.Log.Dir
	if dir == "" {
		base, err := config.BaseDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(base, "logs")
	}
	return logger.Init(logger.Config{Debug: flagDebug || cfg.Log.Debug, Dir: dir})
}

// app is the per-invocation wiring of the week view.
type app struct {
	cfg     config.Config
	prefs   *prefs.Store
	actions *logstate.Actions
}

// newApp loads config, preferences and credentials and builds the store.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}

	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}
	p, err := prefs.Open(prefs.FilePath(base))
	if err != nil {
		return nil, err
	}

	weekStart, err := timecalc.ParseWeekStart(cfg.Week.Start)
	if err != nil {
		return nil, err
	}

	tok, err := credentials.GetToken()
	if err != nil {
		return nil, err
	}
	client := api.NewClient(ctx, cfg.API.BaseURL, api.StaticToken(tok), cfg.API.Timeout())

	store := logstate.NewStore(logstate.NewReducer(p))
	actions := logstate.NewActions(store, client, toast.NewTerminal(os.Stderr), logstate.Options{
		WeekStart:  weekStart,
		DateFormat: cfg.API.DateFormat,
	})

	logger.Debug("app ready", "base_url", cfg.API.BaseURL, "week_start", weekStart)
	return &app{cfg: cfg, prefs: p, actions: actions}, nil
}
