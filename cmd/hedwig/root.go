package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hedwig",
		Short:         "Outreach email drafting with template retrieval",
		Long:          `Hedwig drafts outreach emails by combining conversation context with reference templates retrieved by semantic similarity.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	rootCmd.AddCommand(
		NewLoadCmd(),
		NewQueryCmd(),
		NewStatsCmd(),
		NewDraftCmd(),
		NewChatCmd(),
		NewWatchCmd(),
		NewMigrateCmd(),
		NewProviderCmd(),
		NewProfileCmd(),
	)

	return rootCmd
}
