// Config loading for the verby CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/verby/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeySyncStrategy   = "sync_strategy"
	cfgKeyMismatchPolicy = "mismatch_policy"
	cfgKeyMinFormLength  = "min_form_length"
	cfgKeySeed           = "seed"
)

const configHeader = "# verby configuration\n# data_dir is optional; --data-dir and VERBY_DATA_DIR override the default.\n\n"

// settings is the content of config.yaml.
type settings struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"data_dir,omitempty"`
	SyncStrategy   string `yaml:"sync_strategy"`
	MismatchPolicy string `yaml:"mismatch_policy"`
	MinFormLength  int    `yaml:"min_form_length"`
	Seed           bool   `yaml:"seed"`
}

func defaultSettings() settings {
	return settings{
		Backend:        types.BackendSQLite,
		SyncStrategy:   types.SyncImmediate,
		MismatchPolicy: types.MismatchHold,
		MinFormLength:  types.DefaultMinFormLength,
		Seed:           true,
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	d := defaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, d.Backend)
	v.SetDefault(cfgKeySyncStrategy, d.SyncStrategy)
	v.SetDefault(cfgKeyMismatchPolicy, d.MismatchPolicy)
	v.SetDefault(cfgKeyMinFormLength, d.MinFormLength)
	v.SetDefault(cfgKeySeed, d.Seed)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes config.yaml with default values if the
// file does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	d := defaultSettings()
	data, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// readSettings extracts and validates the settings held by v.
func readSettings(v *viper.Viper) (settings, error) {
	s := settings{
		Backend:        v.GetString(cfgKeyBackend),
		DataDir:        v.GetString(cfgKeyDataDir),
		SyncStrategy:   v.GetString(cfgKeySyncStrategy),
		MismatchPolicy: v.GetString(cfgKeyMismatchPolicy),
		MinFormLength:  v.GetInt(cfgKeyMinFormLength),
		Seed:           v.GetBool(cfgKeySeed),
	}
	cfg := types.Config{Backend: s.Backend, SyncStrategy: s.SyncStrategy}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	if err := types.ValidateMismatchPolicy(s.MismatchPolicy); err != nil {
		return settings{}, err
	}
	return s, nil
}
