package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long:  `Show aggregate statistics over the loaded template corpus.`,
		RunE:  runStats,
	}
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	retriever := newRetriever(cfg)
	retriever.LoadCorpus(cmd.Context())
	stats := retriever.Statistics()

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Templates: %d\n", stats.TotalTemplates)
	fmt.Fprintf(cmd.OutOrStdout(), "Average word count: %.1f\n", stats.AverageWordCount)
	printCounts(cmd, "Use cases", stats.UseCases)
	printCounts(cmd, "Tones", stats.Tones)
	printCounts(cmd, "Industries", stats.Industries)
	return nil
}

func printCounts(cmd *cobra.Command, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", label)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", k, counts[k])
	}
}
