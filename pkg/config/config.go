package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/utils"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel             string `mapstructure:"log_level" yaml:"log_level,omitempty"`
	LogFile              string `mapstructure:"log_file" yaml:"log_file,omitempty"`
	LogfireEnabled       bool   `mapstructure:"logfire_enabled" yaml:"logfire_enabled,omitempty"`
	LogfireToken         string `mapstructure:"logfire_token" yaml:"logfire_token,omitempty"`
	ServiceDiscoveryMode string `mapstructure:"service_discovery_mode" yaml:"service_discovery_mode,omitempty"`
	Profile              string `mapstructure:"profile" yaml:"profile,omitempty"`
	CatalogPath          string `mapstructure:"catalog_path" yaml:"catalog_path,omitempty"`
	OutputPath           string `mapstructure:"output_path" yaml:"output_path,omitempty"`
	ServeAddr            string `mapstructure:"serve_addr" yaml:"serve_addr,omitempty"`
}

// Discovery modes.
const (
	DiscoveryLocal         = "local"
	DiscoveryDockerCompose = "docker_compose"
)

var (
	LogLevels      = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
	DiscoveryModes = []string{DiscoveryLocal, DiscoveryDockerCompose}

	// Keys lists every setting in display order.
	Keys = []string{
		"log_level", "log_file", "logfire_enabled", "logfire_token",
		"service_discovery_mode", "profile", "catalog_path", "output_path",
		"serve_addr",
	}

	defaults = map[string]any{
		"log_level":              "INFO",
		"log_file":               "",
		"logfire_enabled":        false,
		"logfire_token":          "",
		"service_discovery_mode": DiscoveryLocal,
		"profile":                score.ProfileWeighted,
		"catalog_path":           "",
		"output_path":            "workflow_analysis.json",
		"serve_addr":             "127.0.0.1:8484",
	}
)

// ValidationError describes one rejected setting.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: invalid value %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Validate normalizes the log level and discovery mode and checks every enumerated setting.
// All violations are returned together.
func (c *Config) Validate() error {
	var errs []error

	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, &ValidationError{Field: "log_level", Value: c.LogLevel, Allowed: LogLevels})
	}
	c.ServiceDiscoveryMode = strings.ToLower(strings.TrimSpace(c.ServiceDiscoveryMode))
	if !slices.Contains(DiscoveryModes, c.ServiceDiscoveryMode) {
		errs = append(errs, &ValidationError{Field: "service_discovery_mode", Value: c.ServiceDiscoveryMode, Allowed: DiscoveryModes})
	}
	if !slices.Contains(score.Profiles, c.Profile) {
		errs = append(errs, &ValidationError{Field: "profile", Value: c.Profile, Allowed: score.Profiles})
	}
	if c.LogfireEnabled && c.LogfireToken == "" {
		errs = append(errs, &ValidationError{Field: "logfire_token", Reason: "required when logfire_enabled is true"})
	}
	if c.OutputPath == "" {
		errs = append(errs, &ValidationError{Field: "output_path", Reason: "must not be empty"})
	}
	if c.ServeAddr == "" {
		errs = append(errs, &ValidationError{Field: "serve_addr", Reason: "must not be empty"})
	}
	return errors.Join(errs...)
}

var (
	configFile = ".wfx-config.yaml"
	v          *viper.Viper
)

func init() {
	v = newViper()
}

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigFile(configFile)

	for k, d := range defaults {
		nv.SetDefault(k, d)
	}

	// Environment variables
	nv.SetEnvPrefix("WFX")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	return nv
}

func Path() string {
	return configFile
}

// Load reads the config file if present, overlays WFX_* environment
// variables and validates the result.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	if utils.FileExists(configFile) {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func Get(key string) (string, error) {
	if _, ok := defaults[key]; !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return v.GetString(key), nil
}

// Set validates and persists a single setting. The whole resulting config
// must be valid, so one bad value can be repaired by setting it.
func Set(key, value string) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	switch key {
	case "log_level":
		cfg.LogLevel = value
	case "log_file":
		cfg.LogFile = value
	case "logfire_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Allowed: []string{"true", "false"}}
		}
		cfg.LogfireEnabled = b
	case "logfire_token":
		cfg.LogfireToken = value
	case "service_discovery_mode":
		cfg.ServiceDiscoveryMode = value
	case "profile":
		cfg.Profile = value
	case "catalog_path":
		cfg.CatalogPath = value
	case "output_path":
		cfg.OutputPath = value
	case "serve_addr":
		cfg.ServeAddr = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	switch key {
	case "log_level":
		value = cfg.LogLevel
	case "service_discovery_mode":
		value = cfg.ServiceDiscoveryMode
	}
	v.Set(key, value) // keep viper in sync
	return writeConfig(cfg)
}

func writeConfig(cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if dir := filepath.Dir(configFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(configFile, buf.Bytes(), 0o644)
}

func All() (map[string]string, error) {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k] = v.GetString(k)
	}
	return out, nil
}

// ResetForTest resets viper for testing (only use in tests)
func ResetForTest(testPath string) {
	configFile = filepath.Join(testPath, ".wfx-config.yaml")
	v = newViper()
}
