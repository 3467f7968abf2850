package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the template corpus",
		Long:  `Load the template corpus and report how many templates were accepted.`,
		RunE:  runLoad,
	}
	return cmd
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	retriever := newRetriever(cfg)
	result := retriever.LoadCorpus(cmd.Context())

	if asJSON {
		out := map[string]any{
			"accepted": result.Accepted,
			"skipped":  len(result.Skipped),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d templates from %s\n", result.Accepted, cfg.CorpusDir)
	for _, skipped := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", skipped.Path, skipped.Err)
	}
	return nil
}
