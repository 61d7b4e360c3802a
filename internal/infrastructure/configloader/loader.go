package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"hub_balance/internal/domain/entity"
	networkdefinition "hub_balance/internal/infrastructure/network/definition"
)

// EnvConfigPath overrides DefaultPath.
const (
	EnvConfigPath = "CONFIG_PATH"
	DefaultPath   = "config/config.yml"
)

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port                  string `yaml:"port"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	ReadTimeoutSeconds    int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds   int    `yaml:"writeTimeoutSeconds"`
	Swagger               bool   `yaml:"swagger"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string            `yaml:"level"`   // e.g., "debug", "info", "warn", "error"
	Loggers     map[string]string `yaml:"loggers"` // logger name -> level
	Development bool              `yaml:"development"`
}

// RpcClientConfig holds configuration for the gateway clients.
type RpcClientConfig struct {
	DialTimeoutSeconds int `yaml:"dialTimeoutSeconds"`
	CallTimeoutSeconds int `yaml:"callTimeoutSeconds"`
	RateLimit          int `yaml:"rateLimit"` // requests per second per chain
	BurstLimit         int `yaml:"burstLimit"`
	MaxKeysPerCall     int `yaml:"maxKeysPerCall"`
	MaxConcurrentDials int `yaml:"maxConcurrentDials"`
}

// NetworkConfig selects the relay network and, optionally, a subset of its chains.
type NetworkConfig struct {
	Relay  string   `yaml:"relay"`
	Chains []string `yaml:"chains"`
}

// AccountsConfig holds configuration for the account store.
type AccountsConfig struct {
	TTLMinutes     int    `yaml:"ttlMinutes"`
	CleanupMinutes int    `yaml:"cleanupMinutes"`
	WalletFile     string `yaml:"walletFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig        `yaml:"server"`
	Logging      LoggingConfig       `yaml:"logging"`
	RpcClient    RpcClientConfig     `yaml:"rpcClient"`
	Network      NetworkConfig       `yaml:"network"`
	Endpoints    map[string][]string `yaml:"endpoints"`
	CustomChains []entity.ChainInfo  `yaml:"customChains"`
	Accounts     AccountsConfig      `yaml:"accounts"`
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML configuration file from the given path, applies defaults and validates it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Invalid configuration in %s: %v", path, err)
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		c.Server.RequestTimeoutSeconds = 30
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = 60
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.RpcClient.DialTimeoutSeconds <= 0 {
		c.RpcClient.DialTimeoutSeconds = 10
	}
	if c.RpcClient.CallTimeoutSeconds <= 0 {
		c.RpcClient.CallTimeoutSeconds = 15
	}
	if c.RpcClient.RateLimit <= 0 {
		c.RpcClient.RateLimit = 20
		logrus.Infof("rpcClient.rateLimit not set, defaulting to %d req/s", c.RpcClient.RateLimit)
	}
	if c.RpcClient.BurstLimit <= 0 {
		c.RpcClient.BurstLimit = 5
	}
	if c.RpcClient.MaxKeysPerCall <= 0 {
		c.RpcClient.MaxKeysPerCall = 256
	}
	if c.RpcClient.MaxConcurrentDials <= 0 {
		c.RpcClient.MaxConcurrentDials = 4
	}

	if c.Network.Relay == "" {
		c.Network.Relay = networkdefinition.NetworkPolkadot
		logrus.Infof("network.relay not set, defaulting to %s", c.Network.Relay)
	}
	c.Network.Relay = strings.ToLower(c.Network.Relay)

	if c.Accounts.TTLMinutes <= 0 {
		c.Accounts.TTLMinutes = 60
	}
	if c.Accounts.CleanupMinutes <= 0 {
		c.Accounts.CleanupMinutes = 10
	}
}

// Validate checks that the relay is known and every selected chain has an endpoint.
func (c *Config) Validate() error {
	if !networkdefinition.IsKnownNetwork(c.Network.Relay) {
		return fmt.Errorf("unknown relay network %q", c.Network.Relay)
	}

	known := networkdefinition.KnownChains(c.Network.Relay)
	selected := make([]entity.ChainID, 0, len(known))
	if len(c.Network.Chains) == 0 {
		for _, def := range known {
			selected = append(selected, def.ID)
		}
	} else {
		inNetwork := make(map[entity.ChainID]struct{}, len(known))
		for _, def := range known {
			inNetwork[def.ID] = struct{}{}
		}
		for _, id := range c.Network.Chains {
			cid := entity.ChainID(strings.ToLower(strings.TrimSpace(id)))
			if _, ok := inNetwork[cid]; !ok {
				return fmt.Errorf("chain %q is not part of network %s", id, c.Network.Relay)
			}
			selected = append(selected, cid)
		}
	}

	var missing []string
	for _, id := range selected {
		if len(c.Endpoints[string(id)]) == 0 {
			missing = append(missing, string(id))
		}
	}
	for _, custom := range c.CustomChains {
		if custom.ID == "" {
			return fmt.Errorf("custom chain %q has no id", custom.Name)
		}
		if len(custom.Endpoints) == 0 && len(c.Endpoints[string(custom.ID)]) == 0 {
			missing = append(missing, string(custom.ID))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no endpoints configured for chains: %s", strings.Join(missing, ", "))
	}

	if c.Accounts.WalletFile != "" {
		if _, err := os.Stat(c.Accounts.WalletFile); err != nil {
			logrus.Warnf("accounts.walletFile %s is not readable: %v", c.Accounts.WalletFile, err)
		}
	}
	return nil
}

// Selection is the chain selection for the definitions provider.
func (c *Config) Selection() networkdefinition.Selection {
	return networkdefinition.Selection{
		Network:   c.Network.Relay,
		Chains:    c.Network.Chains,
		Endpoints: c.Endpoints,
		Custom:    c.CustomChains,
	}
}

func (c RpcClientConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSeconds) * time.Second
}

func (c RpcClientConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c AccountsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (c AccountsConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupMinutes) * time.Minute
}
