// Package config loads application configuration and exclusion pattern files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gusface/kodipack/internal/scrub"
	"github.com/gusface/kodipack/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults for build and preview runs.
type ApplicationConfiguration struct {
	Build BuildConfiguration `mapstructure:"build"`
	Paths PathConfiguration  `mapstructure:"paths"`
	Scrub ScrubConfiguration `mapstructure:"scrub"`
}

// BuildConfiguration defines archive naming and destination defaults.
type BuildConfiguration struct {
	Source         string `mapstructure:"source"`
	OutputDir      string `mapstructure:"output_dir"`
	Name           string `mapstructure:"name"`
	Version        string `mapstructure:"version"`
	Creator        string `mapstructure:"creator"`
	Description    string `mapstructure:"description"`
	SkipLargerThan *int64 `mapstructure:"skip_larger_than"`
	Format         string `mapstructure:"format"`
}

// PathConfiguration configures inclusion and exclusion rules for traversal.
type PathConfiguration struct {
	Allow           []string `mapstructure:"allow"`
	Exclude         []string `mapstructure:"exclude"`
	CaseInsensitive *bool    `mapstructure:"case_insensitive"`
}

// ScrubConfiguration controls sensitive-data scrubbing for public builds.
type ScrubConfiguration struct {
	Enabled *bool          `mapstructure:"enabled"`
	Profile *scrub.Profile `mapstructure:"profile"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, "config.yaml")
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Paths.Exclude = utils.DeduplicatePatterns(merged.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Build = result.Build.merge(override.Build)
	result.Paths = result.Paths.merge(override.Paths)
	result.Scrub = result.Scrub.merge(override.Scrub)
	return result
}

func (config BuildConfiguration) merge(override BuildConfiguration) BuildConfiguration {
	result := config
	if override.Source != "" {
		result.Source = override.Source
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Creator != "" {
		result.Creator = override.Creator
	}
	if override.Description != "" {
		result.Description = override.Description
	}
	if override.SkipLargerThan != nil {
		result.SkipLargerThan = cloneInt64(override.SkipLargerThan)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Allow) > 0 {
		result.Allow = append([]string{}, utils.DeduplicatePatterns(override.Allow)...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.CaseInsensitive != nil {
		result.CaseInsensitive = cloneBool(override.CaseInsensitive)
	}
	return result
}

func (config ScrubConfiguration) merge(override ScrubConfiguration) ScrubConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Profile != nil {
		clonedProfile := *override.Profile
		result.Profile = &clonedProfile
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
