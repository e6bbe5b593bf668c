package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/config"
	"repoaudit/internal/errors"
	"repoaudit/internal/export"
	"repoaudit/internal/report"
)

var (
	exportFactsPath string
	exportRepo      string
	exportOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Analyze a snapshot and archive the result as a shareable bundle",
	Long: `Run the full analysis and write the report together with the facts
snapshot it was derived from into a single zstd-compressed tar. The bundle
makes the analysis reproducible later.

Examples:
  repoaudit export --facts facts.json
  repoaudit export --facts facts.json --repo billing-service --output audit.tar.zst`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFactsPath, "facts", "", "Path to the extracted facts JSON file (required)")
	exportCmd.Flags().StringVar(&exportRepo, "repo", "", "Repository name to record in the report")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Bundle path (default: <repo>-<timestamp>.repoaudit.tar.zst)")
	_ = exportCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "configuration rejected", err)
	}

	f, err := loadFacts(exportFactsPath)
	if err != nil {
		return err
	}

	r := report.Build(f, cfg, report.Options{Repo: exportRepo})

	path := exportOutput
	if path == "" {
		path = export.DefaultBundleName(r)
	}
	if err := export.Bundle(r, f, path); err != nil {
		return errors.New(errors.InternalError, "failed to write bundle", err)
	}

	fmt.Printf("Wrote %s (analysis %s, %d tasks)\n", path, r.AnalysisID, r.Summary.TaskCount)
	return nil
}
