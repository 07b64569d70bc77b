package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobinsights/internal/adapter"
	"github.com/amishk599/jobinsights/internal/config"
	"github.com/amishk599/jobinsights/internal/filter"
	"github.com/amishk599/jobinsights/internal/model"
	"github.com/amishk599/jobinsights/internal/normalize"
	"github.com/amishk599/jobinsights/internal/pipeline"
	"github.com/amishk599/jobinsights/internal/prompt"
	"github.com/amishk599/jobinsights/internal/ratelimit"
	"github.com/amishk599/jobinsights/internal/report"
	"github.com/amishk599/jobinsights/internal/skills"
	"github.com/amishk599/jobinsights/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch listings and write the market report",
	Long: "Fetches the configured number of result pages, deduplicates and filters " +
		"the listings, ranks skills, locations and companies, and writes the report artifacts.",
	RunE: runRun,
}

type searchOptions struct {
	query          string
	location       string
	pages          int
	employmentType string
	locationType   string
	interactive    bool
}

var searchFlags searchOptions

func init() {
	addSearchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&searchFlags.query, "query", "q", "", "job title to search for")
	f.StringVarP(&searchFlags.location, "location", "l", "", "location to search in")
	f.IntVarP(&searchFlags.pages, "pages", "p", 0, "number of result pages to fetch")
	f.StringVar(&searchFlags.employmentType, "employment-type", "", "keep only this employment type (e.g. Full-time)")
	f.StringVar(&searchFlags.locationType, "location-type", "", "keep only this location type (e.g. Remote)")
	f.BoolVarP(&searchFlags.interactive, "interactive", "i", false, "ask for search parameters in a form")
}

// applySearchFlags overrides cfg with the flags the user actually set.
func applySearchFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("query") {
		cfg.Search.Query = searchFlags.query
	}
	if f.Changed("location") {
		cfg.Search.Location = searchFlags.location
	}
	if f.Changed("pages") {
		cfg.Search.Pages = searchFlags.pages
	}
	if f.Changed("employment-type") {
		cfg.Filters.EmploymentType = searchFlags.employmentType
	}
	if f.Changed("location-type") {
		cfg.Filters.LocationType = searchFlags.locationType
	}
}

func applySearchInput(cfg *config.Config, in prompt.SearchInput) {
	cfg.Search.Query = in.Query
	cfg.Search.Location = in.Location
	cfg.Search.Pages = in.Pages
	cfg.Filters.EmploymentType = in.EmploymentType
	cfg.Filters.LocationType = in.LocationType
}

func newLexicon(cfg config.SkillsConfig) (*skills.Lexicon, error) {
	return skills.New(cfg.Keywords, skills.MatchMode(cfg.Match))
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupRunLogger(debugLog, searchFlags.interactive)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applySearchFlags(cmd, cfg)

	if searchFlags.interactive {
		in, ok, err := prompt.RunSearchForm(prompt.SearchInput{
			Query:          cfg.Search.Query,
			Location:       cfg.Search.Location,
			Pages:          cfg.Search.Pages,
			EmploymentType: cfg.Filters.EmploymentType,
			LocationType:   cfg.Filters.LocationType,
		})
		if err != nil {
			logger.Error("search form failed", "error", err)
			os.Exit(1)
		}
		if !ok {
			logger.Info("search cancelled")
			return nil
		}
		applySearchInput(cfg, in)
	}

	if err := config.Validate(cfg); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	logger.Info("config loaded",
		"query", cfg.Search.Query,
		"location", cfg.Search.Location,
		"pages", cfg.Search.Pages,
		"employment_type", cfg.Filters.EmploymentType,
		"location_type", cfg.Filters.LocationType,
		"skill_match", cfg.Skills.Match,
	)

	lexicon, err := newLexicon(cfg.Skills)
	if err != nil {
		logger.Error("invalid skills config", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	fetcher := adapter.NewPager(
		adapter.NewRapidAPIAdapter(adapter.Config{
			Host:    cfg.API.Host,
			APIKey:  cfg.API.Key,
			BaseURL: cfg.API.BaseURL,
		}, httpClient),
		ratelimit.NewPageDelay(cfg.RateLimit.MinDelay, cfg.RateLimit.MaxDelay),
		logger,
	)
	p := pipeline.New(
		fetcher,
		normalize.New(lexicon),
		filter.NewFieldFilter(cfg.Filters.EmploymentType, cfg.Filters.LocationType),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params := model.SearchParams{Query: cfg.Search.Query, Location: cfg.Search.Location}
	run := func(ctx context.Context) (*pipeline.Outcome, error) {
		return p.Run(ctx, params, cfg.Search.Pages)
	}
	var outcome *pipeline.Outcome
	if searchFlags.interactive {
		label := fmt.Sprintf("Fetching %d page(s) of %q listings", cfg.Search.Pages, cfg.Search.Query)
		outcome, err = prompt.RunLoader(ctx, label, run)
	} else {
		outcome, err = run(ctx)
	}
	if errors.Is(err, model.ErrNoData) {
		logger.Info("no jobs found", "reason", err)
		return nil
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	artifacts, err := writeArtifacts(ctx, cfg, outcome, runID, now, logger)
	if err != nil {
		logger.Error("writing report failed", "error", err, "written", artifacts)
		os.Exit(1)
	}

	n := setupNotifier(cfg, httpClient, logger)
	if err := n.Notify(outcome.Summary(runID, artifacts, now)); err != nil {
		logger.Warn("notification failed", "error", err)
	}

	if searchFlags.interactive {
		fmt.Println(prompt.RenderSummary(outcome, artifacts))
	}
	logger.Info("run complete", "records", len(outcome.Records), "artifacts", len(artifacts))
	return nil
}

// writeArtifacts writes the report files and, when configured, the SQLite export.
func writeArtifacts(
	ctx context.Context,
	cfg *config.Config,
	o *pipeline.Outcome,
	runID string,
	now time.Time,
	logger *slog.Logger,
) ([]string, error) {
	out := cfg.Output
	assembler := report.NewAssembler(report.Paths{
		CSV:   out.ArtifactPath(out.CSV),
		Chart: out.ArtifactPath(out.Chart),
		PDF:   out.ArtifactPath(out.PDF),
	}, logger)

	artifacts, err := assembler.Assemble(o.Records, o.Result, report.Meta{
		RunID:          runID,
		Query:          o.Params.Query,
		Location:       o.Params.Location,
		EmploymentType: cfg.Filters.EmploymentType,
		LocationType:   cfg.Filters.LocationType,
		GeneratedAt:    now,
	})
	if err != nil {
		return artifacts, err
	}

	if out.SQLite != "" {
		path := out.ArtifactPath(out.SQLite)
		if err := store.ExportSQLite(ctx, path, o.Records, o.Result); err != nil {
			return artifacts, fmt.Errorf("sqlite export: %w", err)
		}
		logger.Info("report artifact written", "kind", "sqlite", "path", path)
		artifacts = append(artifacts, path)
	}
	return artifacts, nil
}
