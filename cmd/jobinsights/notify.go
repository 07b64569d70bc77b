package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobinsights/internal/notifier"
)

var notifyWebhook string

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run summary notification commands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a sample run summary",
	Long: "Sends a sample run summary through the configured notifier. " +
		"--webhook switches to Slack with the given URL for this call only.",
	RunE: runNotifyTest,
}

func init() {
	notifyTestCmd.Flags().StringVar(&notifyWebhook, "webhook", "", "Slack incoming webhook URL to test")
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debugLog)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if notifyWebhook != "" {
		cfg.Notification.Type = "slack"
		cfg.Notification.WebhookURL = notifyWebhook
	}
	if cfg.Notification.Type == "slack" && cfg.Notification.WebhookURL == "" {
		logger.Error("slack notifier has no webhook_url")
		os.Exit(1)
	}

	n := setupNotifier(cfg, &http.Client{Timeout: cfg.API.Timeout}, logger)
	if err := notifier.SendTestMessage(n); err != nil {
		logger.Error("test notification failed", "type", cfg.Notification.Type, "error", err)
		os.Exit(1)
	}
	logger.Info("test summary sent", "type", cfg.Notification.Type)
	return nil
}
