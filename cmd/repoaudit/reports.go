package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/errors"
)

var (
	reportsRepo   string
	reportsLimit  int
	reportsShowID string
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse analyses archived with analyze --save",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived analyses, newest first",
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one archived report by analysis ID",
	RunE:  runReportsShow,
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsRepo, "repo", "", "Only list analyses for this repository")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 20, "Maximum number of analyses to list")

	reportsShowCmd.Flags().StringVar(&reportsShowID, "id", "", "Analysis ID (required)")
	_ = reportsShowCmd.MarkFlagRequired("id")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	db, err := openStore(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListReports(reportsRepo, reportsLimit)
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to list reports", err)
	}

	if len(list) == 0 {
		fmt.Println("No archived analyses. Run analyze --save first.")
		return nil
	}
	for _, rec := range list {
		repo := rec.Repo
		if repo == "" {
			repo = "(unnamed)"
		}
		fmt.Printf("%s  %s  %s\n", rec.AnalyzedAt.Format("2006-01-02 15:04"), rec.AnalysisID, repo)
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	logger := newLogger("human")

	db, err := openStore(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, found, err := db.GetReport(reportsShowID)
	if err != nil {
		return errors.New(errors.StoreUnavailable, "failed to load report", err)
	}
	if !found {
		return errors.New(errors.InternalError, "no archived analysis with ID "+reportsShowID, nil)
	}

	fmt.Println(rec.ReportJSON)
	return nil
}
