package main

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"repoaudit/internal/calibration"
	"repoaudit/internal/config"
	"repoaudit/internal/errors"
	"repoaudit/internal/facts"
	"repoaudit/internal/logging"
	"repoaudit/internal/report"
	"repoaudit/internal/storage"
)

var (
	analyzeFactsPath  string
	analyzeRepo       string
	analyzeFormat     string
	analyzeSave       bool
	analyzeCalibrated bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a repository snapshot and build the full audit report",
	Long: `Run the full scoring pipeline over an extracted facts snapshot.

The report contains the repo health and tech debt scorecards, the product
level and complexity classifications, both cost estimates, and the
generated remediation backlog.

Examples:
  repoaudit analyze --facts facts.json
  repoaudit analyze --facts facts.json --repo billing-service --save
  repoaudit analyze --facts facts.json --calibrated --format human`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFactsPath, "facts", "", "Path to the extracted facts JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeRepo, "repo", "", "Repository name to record in the report")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Archive the report in the local store")
	analyzeCmd.Flags().BoolVar(&analyzeCalibrated, "calibrated", false, "Apply the calibration adjustment for the complexity tier")
	_ = analyzeCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := newLogger(analyzeFormat)

	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "configuration rejected", err)
	}

	f, err := loadFacts(analyzeFactsPath)
	if err != nil {
		return err
	}

	opts := report.Options{Repo: analyzeRepo}

	// Calibration and archival both need the store; open it lazily so a
	// plain analyze works without any local state.
	var db *storage.DB
	if analyzeCalibrated || analyzeSave {
		db, err = openStore(logger)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	if analyzeCalibrated {
		svc, err := calibration.NewService(db, cfg.Calibration, logger)
		if err != nil {
			return errors.New(errors.StoreUnavailable, "failed to load calibration samples", err)
		}
		probe := report.Build(f, cfg, report.Options{Repo: analyzeRepo})
		adj := svc.AdjustmentFor(probe.Complexity.String())
		opts.CalibrationAdjustment = adj.Multiplier
		logger.Debug("Applying calibration adjustment", map[string]interface{}{
			"complexity": adj.Complexity,
			"multiplier": adj.Multiplier,
			"samples":    adj.Samples,
		})
	}

	r := report.Build(f, cfg, opts)

	if analyzeSave {
		reportJSON, err := r.ToJSON()
		if err != nil {
			return err
		}
		err = db.SaveReport(storage.ReportRecord{
			AnalysisID: r.AnalysisID,
			Repo:       r.Repo,
			AnalyzedAt: r.AnalyzedAt,
			ReportJSON: reportJSON,
		})
		if err != nil {
			return errors.New(errors.StoreUnavailable, "failed to archive report", err)
		}
	}

	output, err := FormatResponse(r, OutputFormat(analyzeFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)

	logger.Debug("Analysis completed", map[string]interface{}{
		"analysisId": r.AnalysisID,
		"tasks":      r.Summary.TaskCount,
		"duration":   time.Since(start).Milliseconds(),
	})
	return nil
}

// loadFacts wraps facts.Load with the stable CLI error codes.
func loadFacts(path string) (*facts.Facts, error) {
	f, err := facts.Load(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.FactsMissing, "facts file not found: "+path, err)
		}
		return nil, errors.New(errors.FactsInvalid, "facts file rejected", err)
	}
	return f, nil
}

// openStore opens the local state store in the working directory.
func openStore(logger *logging.Logger) (*storage.DB, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(cwd, logger)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to open local store", err)
	}
	return db, nil
}
