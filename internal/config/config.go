package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Embedder  LLMConfig       `yaml:"embedder"`
	Assistant AssistantConfig `yaml:"assistant"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	UploadDir    string `yaml:"upload_dir"`
	StoreFile    string `yaml:"store_file"`
	CatalogFile  string `yaml:"catalog_file"` // empty disables the chunk catalog
	CatalogDebug bool   `yaml:"catalog_debug"`
}

type PipelineConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	// ChunkOverlap is advisory: the paragraph packing strategy produces
	// disjoint chunks and does not apply it. See internal/chunker.
	ChunkOverlap int `yaml:"chunk_overlap"`
	MinChunkLen  int `yaml:"min_chunk_len"`
	// LineMargin is the number of lines stripped from the top and bottom of
	// each page as a header/footer heuristic.
	LineMargin int `yaml:"line_margin"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "ollama"
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type AssistantConfig struct {
	APIKey        string        `yaml:"api_key"`
	AssistantID   string        `yaml:"assistant_id"`
	RetrievalTool string        `yaml:"retrieval_tool"`
	DefaultK      int           `yaml:"default_k"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	PollTimeout   time.Duration `yaml:"poll_timeout"`
}

// UnmarshalYAML parses the poll durations from "1s"-style strings, which the
// yaml decoder does not do for time.Duration on its own.
func (a *AssistantConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		APIKey        string `yaml:"api_key"`
		AssistantID   string `yaml:"assistant_id"`
		RetrievalTool string `yaml:"retrieval_tool"`
		DefaultK      int    `yaml:"default_k"`
		PollInterval  string `yaml:"poll_interval"`
		PollTimeout   string `yaml:"poll_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	a.APIKey = raw.APIKey
	a.AssistantID = raw.AssistantID
	a.RetrievalTool = raw.RetrievalTool
	a.DefaultK = raw.DefaultK
	if raw.PollInterval != "" {
		d, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval: %w", err)
		}
		a.PollInterval = d
	}
	if raw.PollTimeout != "" {
		d, err := time.ParseDuration(raw.PollTimeout)
		if err != nil {
			return fmt.Errorf("invalid poll_timeout: %w", err)
		}
		a.PollTimeout = d
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5500"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./data/uploads"
	}
	if cfg.Storage.StoreFile == "" {
		cfg.Storage.StoreFile = "./data/embeddings.json"
	}
	if cfg.Pipeline.ChunkSize == 0 {
		cfg.Pipeline.ChunkSize = 500
	}
	if cfg.Pipeline.ChunkOverlap == 0 {
		cfg.Pipeline.ChunkOverlap = 100
	}
	if cfg.Pipeline.MinChunkLen == 0 {
		cfg.Pipeline.MinChunkLen = 50
	}
	if cfg.Pipeline.LineMargin == 0 {
		cfg.Pipeline.LineMargin = 2
	}
	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = "ollama"
	}
	if cfg.Embedder.Key == "" {
		cfg.Embedder.Key = os.Getenv("OPENROUTER_KEY")
	}
	if cfg.Assistant.APIKey == "" {
		cfg.Assistant.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Assistant.RetrievalTool == "" {
		cfg.Assistant.RetrievalTool = "find_similar_documents"
	}
	if cfg.Assistant.DefaultK == 0 {
		cfg.Assistant.DefaultK = 5
	}
	if cfg.Assistant.PollInterval == 0 {
		cfg.Assistant.PollInterval = time.Second
	}
	if cfg.Assistant.PollTimeout == 0 {
		cfg.Assistant.PollTimeout = 2 * time.Minute
	}
}
