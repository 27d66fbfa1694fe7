// Package config loads shufa's layered TOML configuration.
//
// Precedence (lowest to highest): defaults, /etc/shufa/config.toml,
// ~/.shufa/config.toml, the nearest shufa.toml walking up from the working
// directory, then SHUFA_* environment variables.
package config

// Config represents the shufa configuration
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset" toml:"dataset" yaml:"dataset" json:"dataset"`
	Log     LogConfig     `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Gateway GatewayConfig `mapstructure:"gateway" toml:"gateway" yaml:"gateway" json:"gateway"`
	REPL    REPLConfig    `mapstructure:"repl" toml:"repl" yaml:"repl" json:"repl"`
}

// DatasetConfig selects the knowledge base
type DatasetConfig struct {
	// .toml/.yaml dataset file; empty = built-in dataset
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// LogConfig configures structured logging
type LogConfig struct {
	// JSON lines on stderr instead of console output
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
}

// Gateway providers
const (
	ProviderPassthrough = "passthrough"
	ProviderChat        = "chat"
)

// GatewayConfig configures the free-text rewriter
type GatewayConfig struct {
	// passthrough | chat
	Provider          string `mapstructure:"provider" toml:"provider" yaml:"provider" json:"provider"`
	BaseURL           string `mapstructure:"base_url" toml:"base_url" yaml:"base_url" json:"base_url"`
	Model             string `mapstructure:"model" toml:"model" yaml:"model" json:"model"`
	APIKey            string `mapstructure:"api_key" toml:"api_key" yaml:"api_key" json:"api_key"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" toml:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	// local model servers on loopback/LAN
	AllowPrivateIP    bool   `mapstructure:"allow_private_ip" toml:"allow_private_ip" yaml:"allow_private_ip" json:"allow_private_ip"`
}

// REPLConfig configures the interactive loop
type REPLConfig struct {
	Prompt    string   `mapstructure:"prompt" toml:"prompt" yaml:"prompt" json:"prompt"`
	ExitWords []string `mapstructure:"exit_words" toml:"exit_words" yaml:"exit_words" json:"exit_words"`
}

// Directory and file names
const (
	ProjectConfigName = "shufa.toml"
	UserConfigDir     = ".shufa"
	SystemConfigPath  = "/etc/shufa/config.toml"
	EnvPrefix         = "SHUFA"
)

// Redacted returns a copy safe to print: the API key is masked
func (c Config) Redacted() Config {
	if c.Gateway.APIKey != "" {
		c.Gateway.APIKey = "********"
	}
	return c
}
