package main

import (
	"fmt"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert legacy frontmatter templates",
		Long:  `Convert legacy frontmatter-markdown templates in the corpus to the structured YAML shape.`,
		RunE:  runMigrate,
	}

	cmd.Flags().Bool("remove", false, "Delete the original .md files after conversion")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	remove, _ := cmd.Flags().GetBool("remove")

	result := internal.MigrateFrontmatter(cfg.CorpusDir, remove)

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d templates\n", result.Converted)
	for _, skipped := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", skipped.Path, skipped.Err)
	}
	return nil
}
