package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFilename  = "hedwig.yaml"
	ProfileFilename = "profile.yaml"
	configDirName   = ".hedwig"
)

// RetrievalConfig holds the embedding index and search knobs.
type RetrievalConfig struct {
	Dimension     int     `yaml:"dimension"`
	MaxFeatures   int     `yaml:"max_features"`
	MaxTemplates  int     `yaml:"max_templates"`
	TopK          int     `yaml:"top_k"`
	MinSimilarity float64 `yaml:"min_similarity"`
}

// EmbeddingsConfig selects the embedding backend: "tfidf" (default,
// corpus-fitted) or "openai" (pretrained, remote).
type EmbeddingsConfig struct {
	Backend string `yaml:"backend"`
	Model   string `yaml:"model,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model"`
}

type Config struct {
	CorpusDir       string                    `yaml:"corpus_dir"`
	Tone            string                    `yaml:"tone"`
	Retrieval       RetrievalConfig           `yaml:"retrieval"`
	Embeddings      EmbeddingsConfig          `yaml:"embeddings"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		CorpusDir: "scrolls",
		Tone:      "professional",
		Retrieval: RetrievalConfig{
			Dimension:     128,
			MaxFeatures:   2000,
			MaxTemplates:  1000,
			TopK:          3,
			MinSimilarity: 0.3,
		},
		Embeddings: EmbeddingsConfig{Backend: "tfidf"},
		Providers:  make(map[string]ProviderConfig),
	}
}

// FindConfigPath returns the config file to use: an explicit path when
// given, otherwise ./hedwig.yaml when present, otherwise the one under
// the user config directory.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFilename); err == nil {
		return ConfigFilename
	}
	return filepath.Join(configDir(), ConfigFilename)
}

// ProfilePath is where the user profile lives, next to the config.
func ProfilePath() string {
	return filepath.Join(configDir(), ProfileFilename)
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// LoadConfig reads the config at path, falling back to defaults when
// the file does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
