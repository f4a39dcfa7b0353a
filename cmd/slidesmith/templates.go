package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith/internal/adapters/secondary/templates"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available deck templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	provider := templates.NewProvider(nil)
	if path, _ := cmd.Flags().GetString("templates"); path != "" {
		if err := provider.LoadOverrides(path); err != nil {
			return err
		}
	}

	for _, info := range provider.List() {
		kind := "community"
		if info.BuiltIn {
			kind = "built-in"
		}
		fmt.Printf("%-20s %-10s %s\n", info.Name, kind, info.DisplayName)
	}

	return nil
}
