package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/calibration"
	"repoaudit/internal/classify"
	"repoaudit/internal/config"
	"repoaudit/internal/errors"
	"repoaudit/internal/estimate"
	"repoaudit/internal/report"
)

var (
	estimateFactsPath  string
	estimateFormat     string
	estimateCalibrated bool
)

// estimatesResponse is the wire shape of the estimate command: both cost
// models plus the complexity tier they were derived for.
type estimatesResponse struct {
	Complexity classify.Complexity         `json:"complexity"`
	Forward    estimate.ForwardEstimate    `json:"forward_estimate"`
	Historical estimate.HistoricalEstimate `json:"historical_estimate"`
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute forward and historical cost estimates",
	Long: `Compute both cost estimates for a repository snapshot: the forward
(COCOMO-style) estimate of rebuilding the system from scratch, and the
historical estimate of what was already invested based on git activity.

Examples:
  repoaudit estimate --facts facts.json
  repoaudit estimate --facts facts.json --calibrated --format human`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateFactsPath, "facts", "", "Path to the extracted facts JSON file (required)")
	estimateCmd.Flags().StringVar(&estimateFormat, "format", "json", "Output format (json, human)")
	estimateCmd.Flags().BoolVar(&estimateCalibrated, "calibrated", false, "Apply the calibration adjustment for the complexity tier")
	_ = estimateCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	logger := newLogger(estimateFormat)

	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "configuration rejected", err)
	}

	f, err := loadFacts(estimateFactsPath)
	if err != nil {
		return err
	}

	opts := report.Options{}
	if estimateCalibrated {
		db, err := openStore(logger)
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := calibration.NewService(db, cfg.Calibration, logger)
		if err != nil {
			return errors.New(errors.StoreUnavailable, "failed to load calibration samples", err)
		}
		probe := report.Build(f, cfg, report.Options{})
		opts.CalibrationAdjustment = svc.AdjustmentFor(probe.Complexity.String()).Multiplier
	}

	r := report.Build(f, cfg, opts)
	resp := &estimatesResponse{
		Complexity: r.Complexity,
		Forward:    r.Forward,
		Historical: r.Historical,
	}

	output, err := FormatResponse(resp, OutputFormat(estimateFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
