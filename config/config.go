package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

const (
	// DefaultFileName is the config file created in the user's home directory
	DefaultFileName = ".cellar-transfer-config.json"

	DefaultDestinationURL = "https://intercellar.io"
	DefaultCollectionURL  = "https://opensea.io/collection/winebottleclub"
)

// ProviderEntry is a saved wallet provider endpoint
type ProviderEntry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Config represents the persisted application configuration
type Config struct {
	Providers []ProviderEntry `json:"providers,omitempty"`
	Logger    bool            `json:"logger"`
}

// ActiveProvider returns the URL of the active saved provider, if any
func (c Config) ActiveProvider() string {
	for _, p := range c.Providers {
		if p.Active {
			return p.URL
		}
	}
	return ""
}

// Env holds the values read from the process environment
type Env struct {
	ContractAddress  string        `envconfig:"WINE_BOTTLE_NFT_ADDRESS"`
	AlchemyAPIKey    string        `envconfig:"ALCHEMY_API_KEY"`
	AlchemyNetwork   string        `envconfig:"ALCHEMY_NETWORK" default:"eth-mainnet"`
	IndexerURL       string        `envconfig:"INDEXER_URL"`
	ProviderURL      string        `envconfig:"WALLET_PROVIDER_URL"`
	CacheTTL         time.Duration `envconfig:"TOKEN_CACHE_TTL" default:"1m"`
	StrictChecksum   bool          `envconfig:"STRICT_CHECKSUM" default:"false"`
	RedeemedTokenIDs []string      `envconfig:"REDEEMED_TOKEN_IDS"`
	DestinationURL   string        `envconfig:"DESTINATION_URL" default:"https://intercellar.io"`
	CollectionURL    string        `envconfig:"COLLECTION_URL" default:"https://opensea.io/collection/winebottleclub"`
}

// Settings is the merged view of file, environment and flags.
// Flags win over the environment, which wins over the file.
type Settings struct {
	ConfigPath       string
	ProviderURL      string
	Providers        []ProviderEntry
	ContractAddress  common.Address
	AlchemyAPIKey    string
	AlchemyNetwork   string
	IndexerURL       string
	CacheTTL         time.Duration
	StrictChecksum   bool
	RedeemedTokenIDs []string
	DestinationURL   string
	CollectionURL    string
	Logger           bool
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadEnv reads the environment into an Env
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return Env{}, fmt.Errorf("failed to process env: %w", err)
	}
	return e, nil
}

// DefaultPath returns the config file location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, DefaultFileName)
}

// Parse builds Settings from command line arguments, the environment and the config file
func Parse(args []string) (Settings, error) {
	fs := pflag.NewFlagSet("cellar-transfer", pflag.ContinueOnError)
	configPath := fs.String("config", DefaultPath(), "path to the JSON config file")
	provider := fs.String("provider", "", "wallet provider JSON-RPC endpoint (ws://, http:// or IPC path)")
	contract := fs.String("contract", "", "NFT collection contract address")
	logger := fs.Bool("log", false, "show the debug log panel")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	env, err := LoadEnv()
	if err != nil {
		return Settings{}, err
	}

	return Merge(Load(*configPath), env, Flags{
		ConfigPath:  *configPath,
		ProviderURL: *provider,
		Contract:    *contract,
		Logger:      *logger,
		LoggerSet:   fs.Changed("log"),
	})
}

// Flags carries the values taken from the command line
type Flags struct {
	ConfigPath  string
	ProviderURL string
	Contract    string
	Logger      bool
	LoggerSet   bool
}

// Merge applies precedence rules and validates the result
func Merge(file Config, env Env, flags Flags) (Settings, error) {
	s := Settings{
		ConfigPath:       flags.ConfigPath,
		ProviderURL:      firstNonEmpty(flags.ProviderURL, env.ProviderURL, file.ActiveProvider()),
		Providers:        file.Providers,
		AlchemyAPIKey:    strings.TrimSpace(env.AlchemyAPIKey),
		AlchemyNetwork:   env.AlchemyNetwork,
		IndexerURL:       strings.TrimRight(strings.TrimSpace(env.IndexerURL), "/"),
		CacheTTL:         env.CacheTTL,
		StrictChecksum:   env.StrictChecksum,
		RedeemedTokenIDs: env.RedeemedTokenIDs,
		DestinationURL:   firstNonEmpty(env.DestinationURL, DefaultDestinationURL),
		CollectionURL:    firstNonEmpty(env.CollectionURL, DefaultCollectionURL),
		Logger:           file.Logger,
	}
	if flags.LoggerSet {
		s.Logger = flags.Logger
	}
	if s.AlchemyNetwork == "" {
		s.AlchemyNetwork = "eth-mainnet"
	}

	contract := firstNonEmpty(flags.Contract, env.ContractAddress)
	if contract == "" {
		return Settings{}, fmt.Errorf("contract address is not set (WINE_BOTTLE_NFT_ADDRESS or --contract)")
	}
	if !common.IsHexAddress(contract) {
		return Settings{}, fmt.Errorf("invalid contract address %q", contract)
	}
	s.ContractAddress = common.HexToAddress(contract)

	if s.IndexerURL == "" && s.AlchemyAPIKey == "" {
		return Settings{}, fmt.Errorf("ALCHEMY_API_KEY is required unless INDEXER_URL is set")
	}

	return s, nil
}

// Persisted returns the subset of Settings written back to the config file
func (s Settings) Persisted() Config {
	return Config{Providers: s.Providers, Logger: s.Logger}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Activate marks entry idx as the only active provider
func Activate(entries []ProviderEntry, idx int) []ProviderEntry {
	out := make([]ProviderEntry, len(entries))
	for i, e := range entries {
		e.Active = i == idx
		out[i] = e
	}
	return out
}

// Remove drops entry idx; out of range indexes leave the list unchanged
func Remove(entries []ProviderEntry, idx int) []ProviderEntry {
	if idx < 0 || idx >= len(entries) {
		return entries
	}
	out := make([]ProviderEntry, 0, len(entries)-1)
	out = append(out, entries[:idx]...)
	return append(out, entries[idx+1:]...)
}

// ValidateProviderURL accepts websocket and http endpoints or an IPC socket path
func ValidateProviderURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("URL cannot be empty")
	}
	if strings.HasSuffix(s, ".ipc") && !strings.Contains(s, "://") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}
