package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/config"
	"repoaudit/internal/errors"
	"repoaudit/internal/report"
)

var (
	tasksFactsPath string
	tasksFormat    string
	tasksPriority  string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Generate the remediation backlog for a repository snapshot",
	Long: `Generate the prioritized remediation backlog without the full report
wrapper. Useful for feeding tasks straight into an issue tracker.

Examples:
  repoaudit tasks --facts facts.json
  repoaudit tasks --facts facts.json --priority P1 --format human`,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&tasksFactsPath, "facts", "", "Path to the extracted facts JSON file (required)")
	tasksCmd.Flags().StringVar(&tasksFormat, "format", "json", "Output format (json, human)")
	tasksCmd.Flags().StringVar(&tasksPriority, "priority", "", "Only show tasks with this priority (P1, P2, P3)")
	_ = tasksCmd.MarkFlagRequired("facts")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "configuration rejected", err)
	}

	f, err := loadFacts(tasksFactsPath)
	if err != nil {
		return err
	}

	r := report.Build(f, cfg, report.Options{})

	backlog := r.Tasks
	if tasksPriority != "" {
		filtered := backlog[:0:0]
		for _, t := range backlog {
			if string(t.Priority) == tasksPriority {
				filtered = append(filtered, t)
			}
		}
		backlog = filtered
	}

	output, err := FormatResponse(backlog, OutputFormat(tasksFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
