package notifier

import (
	"log/slog"

	"github.com/amishk599/jobinsights/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes run summaries to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each summary via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the summary as one structured message. It never fails.
func (n *LogNotifier) Notify(s model.Summary) error {
	n.logger.Info("run summary",
		"run_id", s.RunID,
		"query", s.Query,
		"location", s.Location,
		"records", s.Records,
		"top_skills", s.TopSkills,
		"top_locations", s.TopLocations,
		"top_companies", s.TopCompanies,
		"artifacts", s.Artifacts,
	)
	return nil
}
