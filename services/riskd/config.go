package riskd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime settings for the risk daemon.
type Config struct {
	ListenAddress   string      `yaml:"listen"`
	Mode            string      `yaml:"mode"`
	RiskParamsPath  string      `yaml:"risk_params"`
	RateLimitPerMin int         `yaml:"rate_limit_per_min"`
	AllowedOrigins  []string    `yaml:"allowed_origins"`
	Chain           ChainConfig `yaml:"chain"`
}

// ChainConfig points the onchain vault source at the deployed contracts.
type ChainConfig struct {
	RPCURL       string   `yaml:"rpc_url"`
	VaultManager string   `yaml:"vault_manager"`
	Oracle       string   `yaml:"oracle"`
	Owners       []string `yaml:"owners"`
}

const (
	// ModeMock serves the seeded in-memory vault set.
	ModeMock = "mock"
	// ModeOnchain reads vault state from the contracts over JSON-RPC.
	ModeOnchain = "onchain"
)

// LoadConfig reads the YAML configuration from disk and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ListenAddress:   ":8650",
		Mode:            ModeMock,
		RateLimitPerMin: 120,
	}
	if path == "" {
		return cfg, fmt.Errorf("config path required")
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	if cfg == nil {
		return
	}
	cfg.ListenAddress = strings.TrimSpace(cfg.ListenAddress)
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8650"
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode == "" {
		cfg.Mode = ModeMock
	}
	cfg.RiskParamsPath = strings.TrimSpace(cfg.RiskParamsPath)
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 120
	}
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins
	cfg.Chain.normalize()
}

func (cfg *Config) validate() error {
	if cfg == nil {
		return fmt.Errorf("configuration is missing")
	}
	switch cfg.Mode {
	case ModeMock:
	case ModeOnchain:
		if err := cfg.Chain.validate(); err != nil {
			return fmt.Errorf("chain: %w", err)
		}
	default:
		return fmt.Errorf("mode must be %q or %q", ModeMock, ModeOnchain)
	}
	return nil
}

func (cfg *ChainConfig) normalize() {
	if cfg == nil {
		return
	}
	cfg.RPCURL = strings.TrimSpace(cfg.RPCURL)
	cfg.VaultManager = strings.TrimSpace(cfg.VaultManager)
	cfg.Oracle = strings.TrimSpace(cfg.Oracle)
	owners := make([]string, 0, len(cfg.Owners))
	for _, owner := range cfg.Owners {
		if trimmed := strings.TrimSpace(owner); trimmed != "" {
			owners = append(owners, trimmed)
		}
	}
	cfg.Owners = owners
}

func (cfg ChainConfig) validate() error {
	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if cfg.VaultManager == "" {
		return fmt.Errorf("vault_manager address is required")
	}
	if cfg.Oracle == "" {
		return fmt.Errorf("oracle address is required")
	}
	if len(cfg.Owners) == 0 {
		return fmt.Errorf("at least one owner address is required")
	}
	return nil
}
