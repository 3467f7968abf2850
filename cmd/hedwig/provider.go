package main

import (
	"fmt"
	"sort"

	"github.com/4thel00z/hedwig/internal"
	"github.com/spf13/cobra"
)

func NewProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage LLM providers",
		Long:  `List, add, remove, and test LLM providers.`,
	}

	cmd.AddCommand(
		newProviderListCmd(),
		newProviderAddCmd(),
		newProviderRemoveCmd(),
		newProviderDefaultCmd(),
		newProviderTestCmd(),
	)

	return cmd
}

func newProviderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if len(cfg.Providers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers configured.")
				return nil
			}

			names := make([]string, 0, len(cfg.Providers))
			for name := range cfg.Providers {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				if name == cfg.DefaultProvider {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newProviderAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			apiKey, _ := cmd.Flags().GetString("api-key")
			baseURL, _ := cmd.Flags().GetString("base-url")
			model, _ := cmd.Flags().GetString("model")

			if cfg.Providers == nil {
				cfg.Providers = make(map[string]internal.ProviderConfig)
			}
			cfg.Providers[name] = internal.ProviderConfig{
				APIKey:  apiKey,
				BaseURL: baseURL,
				Model:   model,
			}
			if cfg.DefaultProvider == "" {
				cfg.DefaultProvider = name
			}

			if err := internal.SaveConfig(path, cfg); err != nil {
				return fmt.Errorf("add provider: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added provider %s\n", name)
			return nil
		},
	}

	cmd.Flags().String("api-key", "", "API key")
	cmd.Flags().String("base-url", "", "Base URL")
	cmd.Flags().String("model", "", "Model name")
	return cmd
}

func newProviderRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if _, ok := cfg.Providers[args[0]]; !ok {
				return fmt.Errorf("unknown provider: %s", args[0])
			}
			delete(cfg.Providers, args[0])
			if cfg.DefaultProvider == args[0] {
				cfg.DefaultProvider = ""
			}

			if err := internal.SaveConfig(path, cfg); err != nil {
				return fmt.Errorf("remove provider: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed provider %s\n", args[0])
			return nil
		},
	}
}

func newProviderDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Set default provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if _, ok := cfg.Providers[args[0]]; !ok {
				return fmt.Errorf("unknown provider: %s", args[0])
			}
			cfg.DefaultProvider = args[0]

			if err := internal.SaveConfig(path, cfg); err != nil {
				return fmt.Errorf("set default: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Default provider set to %s\n", args[0])
			return nil
		},
	}
}

func newProviderTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Test provider connectivity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			pc, ok := cfg.Providers[args[0]]
			if !ok {
				return fmt.Errorf("unknown provider: %s", args[0])
			}

			provider, err := internal.NewFantasyProvider(cmd.Context(), args[0], pc)
			if err != nil {
				return fmt.Errorf("test provider: %w", err)
			}

			if _, err := provider.Complete(cmd.Context(), "Reply with the single word: ok"); err != nil {
				return fmt.Errorf("test provider: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Provider %s is working\n", args[0])
			return nil
		},
	}
}
