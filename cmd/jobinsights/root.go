package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobinsights/internal/config"
	"github.com/amishk599/jobinsights/internal/model"
	"github.com/amishk599/jobinsights/internal/notifier"
)

var (
	cfgPath  string
	envPath  string
	debugLog bool
)

var rootCmd = &cobra.Command{
	Use:   "jobinsights",
	Short: "Job market insights from live listings",
	Long: "jobinsights searches job listings, extracts the skills they ask for, " +
		"and writes CSV, chart and PDF reports of the market.",
	// A bare `jobinsights` behaves like `jobinsights run`.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBINSIGHTS_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "dotenv file with RAPIDAPI_KEY and RAPIDAPI_HOST")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	addSearchFlags(rootCmd)
}

// loadConfig loads the dotenv file, then resolves the config path and parses it.
// Priority: explicit path arg > JOBINSIGHTS_CONFIG env var > "./config.yaml".
// Only the default path may be missing; built-in defaults are used then.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, err
	}
	if path != "" {
		return config.Load(path)
	}
	if env := os.Getenv("JOBINSIGHTS_CONFIG"); env != "" {
		return config.Load(env)
	}
	return config.LoadOrDefault("config.yaml")
}

func setupLogger(dbg bool) *slog.Logger {
	w, level := logTarget(dbg, false)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setupRunLogger is setupLogger for the run command. Interactive runs keep
// stdout for the form and spinner: logs go to stderr and only warnings show
// unless --debug is set.
func setupRunLogger(dbg, interactive bool) *slog.Logger {
	w, level := logTarget(dbg, interactive)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func logTarget(dbg, interactive bool) (io.Writer, slog.Level) {
	switch {
	case dbg && interactive:
		return os.Stderr, slog.LevelDebug
	case dbg:
		return os.Stdout, slog.LevelDebug
	case interactive:
		return os.Stderr, slog.LevelWarn
	default:
		return os.Stdout, slog.LevelInfo
	}
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}
