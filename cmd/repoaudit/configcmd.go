package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoaudit/internal/config"
	"repoaudit/internal/errors"
)

var configInitPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the repoaudit configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with the default rates and hours",
	Long: `Write a commented starting-point config file with every default value
spelled out. Refuses to overwrite an existing file.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", config.DefaultFileName,
		"Where to write the config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(configInitPath); err != nil {
		return errors.New(errors.ConfigInvalid, "failed to write config file", err)
	}
	fmt.Printf("Wrote %s\n", configInitPath)
	return nil
}
