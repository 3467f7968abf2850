package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Draft emails interactively",
		Long: `Start an interactive drafting session. Each message refines the current
draft; /reset starts a fresh conversation and /quit exits.`,
		RunE: runChat,
	}

	cmd.Flags().Bool("review", false, "Critique each draft before showing it")
	cmd.Flags().Bool("diff", false, "Show a diff against the previous draft after each revision")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	review, _ := cmd.Flags().GetBool("review")
	showDiff, _ := cmd.Flags().GetBool("diff")

	profile, err := internal.LoadProfile(internal.ProfilePath())
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	provider, err := newProvider(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	retriever := newRetriever(cfg)
	builder := internal.NewPromptBuilder(profile, cfg.Tone)
	svc := internal.NewDraftService(retriever, provider, builder, queryOptions(cfg))
	reviewer := internal.NewReviewService(provider)
	conv := svc.NewConversation()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "What email would you like to write? (/reset to start over, /quit to exit)")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case line == "/reset":
			conv.Reset()
			fmt.Fprintln(out, "Conversation reset.")
			continue
		}

		previous := ""
		if msg := conv.History.LatestDraft(); msg != nil {
			previous = msg.Content
		}

		draft, err := svc.Draft(cmd.Context(), conv, line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "draft error: %v\n", err)
			continue
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, draft)
		fmt.Fprintln(out)

		if showDiff && previous != "" {
			fmt.Fprintln(out, "--- changes ---")
			fmt.Fprintln(out, internal.DiffDrafts(previous, draft))
		}

		if review {
			result, err := reviewer.Review(cmd.Context(), draft)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "review error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Critique: %s\n", result.Critique)
			for _, item := range result.ActionableFeedback {
				fmt.Fprintf(out, "  - %s\n", item.Text)
			}
		}
	}
}
