package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fixturectl/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/fixturectl"
	projectConfigDir = ".fixturectl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the fixturectl configuration by layering default, user, and project settings,
// then validates the result.
func LoadConfig() (FixturectlConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = overlayFile(config, userConfigPath); err != nil {
		return FixturectlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = overlayFile(config, projectConfigPath); err != nil {
		return FixturectlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	if err := config.Validate(); err != nil {
		return FixturectlConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadConfigFromPath loads a single configuration file over the defaults, skipping the user and
// project layers. The file must exist.
func LoadConfigFromPath(path string) (FixturectlConfig, error) {
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return FixturectlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	config := mergeConfigs(GetDefaultConfig(), overlay)
	if err := config.Validate(); err != nil {
		return FixturectlConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return config, nil
}

// overlayFile merges the file at path over base. A missing file leaves base unchanged.
func overlayFile(base FixturectlConfig, path string) (FixturectlConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a FixturectlConfig from a YAML file.
func loadConfigFromFile(filePath string) (FixturectlConfig, error) {
	var config FixturectlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return FixturectlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return FixturectlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in overlay leave base
// untouched; the fixture filter is replaced as a whole.
func mergeConfigs(base, overlay FixturectlConfig) FixturectlConfig {
	merged := base

	if overlay.Run.Order != "" {
		merged.Run.Order = overlay.Run.Order
	}
	if overlay.Run.HookTimeout != 0 {
		merged.Run.HookTimeout = overlay.Run.HookTimeout
	}
	if len(overlay.Run.Fixtures) > 0 {
		merged.Run.Fixtures = append([]string(nil), overlay.Run.Fixtures...)
	}

	if overlay.Report.Path != "" {
		merged.Report.Path = overlay.Report.Path
	}
	if overlay.Report.Format != "" {
		merged.Report.Format = overlay.Report.Format
	}

	if overlay.Navigator.DetailLevel != nil {
		level := *overlay.Navigator.DetailLevel
		merged.Navigator.DetailLevel = &level
	}

	if overlay.Stress.Seed != 0 {
		merged.Stress.Seed = overlay.Stress.Seed
	}
	if overlay.Stress.MaxDelay != 0 {
		merged.Stress.MaxDelay = overlay.Stress.MaxDelay
	}
	if overlay.Stress.Workers != 0 {
		merged.Stress.Workers = overlay.Stress.Workers
	}
	if overlay.Stress.Iterations != 0 {
		merged.Stress.Iterations = overlay.Stress.Iterations
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
