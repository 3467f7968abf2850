package main

import (
	"context"
	"fmt"
	"os"

	"github.com/4thel00z/hedwig/internal"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	rootCmd := NewRootCmd(version)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves and reads the config for a command invocation.
func loadConfig(cmd *cobra.Command) (*internal.Config, string, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path := internal.FindConfigPath(explicit)
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

// newRetriever builds the retriever configured by cfg, choosing the
// embedding backend from cfg.Embeddings.
func newRetriever(cfg *internal.Config) *internal.Retriever {
	if cfg.Embeddings.Backend == "openai" {
		provider := cfg.Providers["openai"]
		embedder := internal.NewOpenAIEmbedder(provider.APIKey, cfg.Embeddings.Model, cfg.Retrieval.Dimension)
		return internal.NewRetrieverWithEncoder(cfg.CorpusDir,
			internal.NewPretrainedEncoder(embedder), cfg.Retrieval)
	}
	return internal.NewRetriever(cfg.CorpusDir, cfg.Retrieval)
}

// newProvider builds the configured default LLM provider.
func newProvider(ctx context.Context, cfg *internal.Config) (internal.Provider, error) {
	name := cfg.DefaultProvider
	if name == "" {
		return nil, fmt.Errorf("no default provider configured")
	}
	providerCfg, ok := cfg.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not found", name)
	}
	return internal.NewFantasyProvider(ctx, name, providerCfg)
}

func queryOptions(cfg *internal.Config) internal.QueryOptions {
	return internal.QueryOptions{
		TopK:          cfg.Retrieval.TopK,
		MinSimilarity: cfg.Retrieval.MinSimilarity,
	}
}
