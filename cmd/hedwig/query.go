package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Search templates by similarity",
		Long:  `Search the template corpus for the templates most similar to the given text.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().IntP("top-k", "k", 0, "Maximum results (0 uses the configured default)")
	cmd.Flags().Float64P("min-similarity", "m", -1, "Minimum similarity score (negative uses the configured default)")
	cmd.Flags().StringArrayP("filter", "f", nil, "Metadata filter as key=value (repeatable)")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	minSim, _ := cmd.Flags().GetFloat64("min-similarity")
	rawFilters, _ := cmd.Flags().GetStringArray("filter")
	asJSON, _ := cmd.Flags().GetBool("json")

	opts := queryOptions(cfg)
	if topK > 0 {
		opts.TopK = topK
	}
	if minSim >= 0 {
		opts.MinSimilarity = minSim
	}
	opts.Filters, err = parseFilters(rawFilters)
	if err != nil {
		return err
	}

	retriever := newRetriever(cfg)
	results := retriever.Query(cmd.Context(), args[0], opts)

	if asJSON {
		return outputResultsJSON(cmd, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching templates.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%.4f  %s  (%s)\n", r.Score, r.Record.ID, r.Record.UseCase)
	}
	return nil
}

func parseFilters(raw []string) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	filters := make(map[string]any, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func outputResultsJSON(cmd *cobra.Command, results []internal.QueryResult) error {
	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"id":       r.Record.ID,
			"score":    r.Score,
			"use_case": r.Record.UseCase,
			"subject":  r.Record.Subject,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
