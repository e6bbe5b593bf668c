package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/calibration"
	"repoaudit/internal/config"
	"repoaudit/internal/errors"
	"repoaudit/internal/logging"
)

var (
	calibrateAnalysisID string
	calibrateComplexity string
	calibratePredicted  float64
	calibrateActual     float64
	calibrateFile       string
	calibrateFormat     string
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Manage the estimate calibration feedback loop",
	Long: `Record observed project outcomes and inspect the adjustment multipliers
derived from them. Once a complexity tier has enough samples, analyze and
estimate apply its adjustment when run with --calibrated.`,
}

var calibrateRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one observed outcome against a prior estimate",
	Long: `Record what a project actually took against what the forward estimator
predicted for it.

Example:
  repoaudit calibrate record --complexity medium --predicted-hours 420 --actual-hours 510`,
	RunE: runCalibrateRecord,
}

var calibrateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current adjustment multiplier per complexity tier",
	RunE:  runCalibrateShow,
}

var calibrateImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import observed outcomes from a TOML actuals file",
	RunE:  runCalibrateImport,
}

func init() {
	calibrateRecordCmd.Flags().StringVar(&calibrateAnalysisID, "analysis-id", "", "Analysis ID the outcome belongs to")
	calibrateRecordCmd.Flags().StringVar(&calibrateComplexity, "complexity", "", "Complexity tier: small, medium, large, or xlarge (required)")
	calibrateRecordCmd.Flags().Float64Var(&calibratePredicted, "predicted-hours", 0, "Predicted typical hours (required)")
	calibrateRecordCmd.Flags().Float64Var(&calibrateActual, "actual-hours", 0, "Observed actual hours (required)")
	_ = calibrateRecordCmd.MarkFlagRequired("complexity")
	_ = calibrateRecordCmd.MarkFlagRequired("predicted-hours")
	_ = calibrateRecordCmd.MarkFlagRequired("actual-hours")

	calibrateShowCmd.Flags().StringVar(&calibrateFormat, "format", "json", "Output format (json, human)")

	calibrateImportCmd.Flags().StringVar(&calibrateFile, "file", "", "Path to the TOML actuals file (required)")
	_ = calibrateImportCmd.MarkFlagRequired("file")

	calibrateCmd.AddCommand(calibrateRecordCmd)
	calibrateCmd.AddCommand(calibrateShowCmd)
	calibrateCmd.AddCommand(calibrateImportCmd)
	rootCmd.AddCommand(calibrateCmd)
}

func newCalibrationService(logger *logging.Logger) (*calibration.Service, func(), error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, errors.New(errors.ConfigInvalid, "configuration rejected", err)
	}
	db, err := openStore(logger)
	if err != nil {
		return nil, nil, err
	}
	svc, err := calibration.NewService(db, cfg.Calibration, logger)
	if err != nil {
		db.Close()
		return nil, nil, errors.New(errors.StoreUnavailable, "failed to load calibration samples", err)
	}
	return svc, func() { db.Close() }, nil
}

func runCalibrateRecord(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	if calibrateActual <= 0 {
		return errors.New(errors.ConfigInvalid, "actual-hours must be positive", nil)
	}

	svc, closeStore, err := newCalibrationService(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	err = svc.Record(calibration.Sample{
		AnalysisID:     calibrateAnalysisID,
		Complexity:     calibrateComplexity,
		PredictedHours: calibratePredicted,
		ActualHours:    calibrateActual,
	})
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to record calibration sample", err)
	}

	adj := svc.AdjustmentFor(calibrateComplexity)
	fmt.Printf("Recorded. %s tier now has %d sample(s), multiplier x%.2f\n",
		adj.Complexity, adj.Samples, adj.Multiplier)
	return nil
}

func runCalibrateShow(cmd *cobra.Command, args []string) error {
	logger := newLogger(calibrateFormat)

	svc, closeStore, err := newCalibrationService(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	output, err := FormatResponse(svc.Adjustments(), OutputFormat(calibrateFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func runCalibrateImport(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	svc, closeStore, err := newCalibrationService(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	recorded, err := svc.ImportActuals(calibrateFile)
	if err != nil {
		return errors.New(errors.ConfigInvalid,
			fmt.Sprintf("import stopped after %d sample(s)", recorded), err)
	}

	fmt.Printf("Imported %d calibration sample(s) from %s\n", recorded, calibrateFile)
	return nil
}
