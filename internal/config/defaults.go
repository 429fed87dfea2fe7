package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// DefaultBuildName is the base name of produced archives.
	DefaultBuildName = "GusFace_Build"
	// DefaultBuildVersion labels builds without an explicit version.
	DefaultBuildVersion = "v1.0"
	// DefaultSizeCeilingBytes skips files larger than 95 MiB, keeping archives
	// below common hosting limits. Zero disables the ceiling.
	DefaultSizeCeilingBytes = int64(95 * 1024 * 1024)
	// DefaultOutputDirectoryName receives public build archives.
	DefaultOutputDirectoryName = "builds"
	// PersonalOutputDirectoryName receives personal builds under the user's documents.
	PersonalOutputDirectoryName = "Private_Kodi_Builds"
)

// DefaultAllowlist names the top-level Kodi subtrees a build may contain.
var DefaultAllowlist = []string{"userdata", "addons"}

// DefaultExclusionPatterns drop caches, logs, and machine-specific data that
// never belong in a distributable build.
var DefaultExclusionPatterns = []string{
	"addons/packages/*",
	"userdata/Thumbnails/*",
	"userdata/Database/Textures13.db",
	"temp/*",
	"cache/*",
	"logs/*",
	"*.log",
	"*.cache",
	"kodi.old.log",
}

// DefaultKodiPath returns the platform-conventional Kodi data directory.
func DefaultKodiPath() string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Kodi")
		}
	case "darwin":
		if homeDirectory, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDirectory, "Library", "Application Support", "Kodi")
		}
	}
	if homeDirectory, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDirectory, ".kodi")
	}
	return ".kodi"
}

// DefaultPersonalOutputDirectory returns the private destination for personal builds.
func DefaultPersonalOutputDirectory() string {
	if homeDirectory, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDirectory, "Documents", PersonalOutputDirectoryName)
	}
	return PersonalOutputDirectoryName
}

// DefaultCaseInsensitive follows the case convention of the host filesystem.
func DefaultCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
