// Package config loads the daemon's file configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr              string `json:"addr" yaml:"addr" toml:"addr"`
	SeqLen            int    `json:"seq_len" yaml:"seq_len" toml:"seq_len"`
	PadTokenID        int    `json:"pad_token_id" yaml:"pad_token_id" toml:"pad_token_id"`
	QueueCapacity     int    `json:"queue_capacity" yaml:"queue_capacity" toml:"queue_capacity"`
	PollIntervalMS    int    `json:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms"`
	RequestTimeoutS   int    `json:"request_timeout_s" yaml:"request_timeout_s" toml:"request_timeout_s"`
	MaxGenTokens      int    `json:"max_gen_tokens" yaml:"max_gen_tokens" toml:"max_gen_tokens"`
	MaxBodyBytes      int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	TokenizerEncoding string `json:"tokenizer_encoding" yaml:"tokenizer_encoding" toml:"tokenizer_encoding"`
	ModelPath         string `json:"model_path" yaml:"model_path" toml:"model_path"`
	Threads           int    `json:"threads" yaml:"threads" toml:"threads"`
	CORSOrigins       string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	LogLevel          string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
