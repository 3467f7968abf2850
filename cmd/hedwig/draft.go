package main

import (
	"fmt"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <request>",
		Short: "Draft an outreach email",
		Long:  `Draft an outreach email from a one-line request, using the most similar templates as references.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDraft,
	}

	cmd.Flags().Bool("dry-run", false, "Print the assembled prompt instead of calling the provider")
	cmd.Flags().String("tone", "", "Override the configured tone")
	return cmd
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	tone, _ := cmd.Flags().GetString("tone")
	if tone == "" {
		tone = cfg.Tone
	}

	profile, err := internal.LoadProfile(internal.ProfilePath())
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	retriever := newRetriever(cfg)
	builder := internal.NewPromptBuilder(profile, tone)

	if dryRun {
		svc := internal.NewDraftService(retriever, nil, builder, queryOptions(cfg))
		conv := svc.NewConversation()
		fmt.Fprintln(cmd.OutOrStdout(), svc.BuildPrompt(cmd.Context(), conv, args[0]))
		return nil
	}

	provider, err := newProvider(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	svc := internal.NewDraftService(retriever, provider, builder, queryOptions(cfg))
	conv := svc.NewConversation()

	draft, err := svc.Draft(cmd.Context(), conv, args[0])
	if err != nil {
		return fmt.Errorf("draft: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), draft)
	return nil
}
