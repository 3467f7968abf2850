package main

import (
	"encoding/json"
	"fmt"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the sender profile",
		Long:  `Show or update the sender profile used when drafting emails.`,
	}

	cmd.AddCommand(
		newProfileShowCmd(),
		newProfileSetCmd(),
	)

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the sender profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := internal.LoadProfile(internal.ProfilePath())
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}

			if profile.Name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile set.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", profile.Name)
			if profile.Title != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Title: %s\n", profile.Title)
			}
			if profile.Company != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Company: %s\n", profile.Company)
			}
			return nil
		},
	}
}

func newProfileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the sender profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := internal.ProfilePath()
			profile, err := internal.LoadProfile(path)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}

			if cmd.Flags().Changed("name") {
				profile.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("title") {
				profile.Title, _ = cmd.Flags().GetString("title")
			}
			if cmd.Flags().Changed("company") {
				profile.Company, _ = cmd.Flags().GetString("company")
			}

			if err := internal.SaveProfile(path, profile); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			return nil
		},
	}

	cmd.Flags().String("name", "", "Sender name")
	cmd.Flags().String("title", "", "Sender title")
	cmd.Flags().String("company", "", "Sender company")
	return cmd
}
