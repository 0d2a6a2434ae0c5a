package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, loaded from a yaml file.
type Config struct {
	// Storage selects the chunk index backend: "chromem" (embedded,
	// default) or "postgres".
	Storage string `yaml:"storage"`

	VectorDB  VectorDBConfig `yaml:"vector_db"`
	Database  DatabaseConfig `yaml:"database"`
	EmbedLLM  LLMConfig      `yaml:"embed_llm"`
	AnswerLLM LLMConfig      `yaml:"answer_llm"`
	RAG       RAGConfig      `yaml:"rag"`
}

// LLMConfig describes one model endpoint (embedding or answer generation).
type LLMConfig struct {
	Provider string `yaml:"provider"` // "ollama" or "openai"
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type VectorDBConfig struct {
	Path          string `yaml:"path"`
	Collection    string `yaml:"collection"`
	InMemory      bool   `yaml:"in_memory"`
	EncryptionKey string `yaml:"encryption_key"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type RAGConfig struct {
	// TopK raw hits fetched from the vector store per query.
	TopK int `yaml:"top_k"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = "chromem"
	}
	if c.VectorDB.Path == "" {
		c.VectorDB.Path = "./chromemdb"
	}
	if c.VectorDB.Collection == "" {
		c.VectorDB.Collection = "documents"
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = 25
	}
}
