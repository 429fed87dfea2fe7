// Package manifest describes the metadata record embedded in every build archive.
package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/gusface/kodipack/internal/utils"
)

// FileName is the top-level archive entry holding the build metadata.
const FileName = "build_info.yaml"

// DefaultCreator identifies builds produced by this tool when no creator is configured.
const DefaultCreator = "GUS Face Repository"

// ErrEmptyBuildName reports a build record without a usable name.
var ErrEmptyBuildName = errors.New("build name must not be empty")

// Build is the metadata record written into the archive as key-value text.
type Build struct {
	Name        string    `yaml:"name"`
	Version     string    `yaml:"version"`
	Creator     string    `yaml:"creator,omitempty"`
	Description string    `yaml:"description,omitempty"`
	Created     time.Time `yaml:"created"`
}

// Validate checks the fields that feed the archive filename. Versions that
// opt into the "v" prefix must parse as semantic versions; bare versions such
// as "1.0" are accepted as-is for compatibility with existing builds.
func (build Build) Validate() error {
	if strings.TrimSpace(build.Name) == "" {
		return ErrEmptyBuildName
	}
	if strings.HasPrefix(build.Version, "v") && !semver.IsValid(build.Version) {
		return fmt.Errorf("build version %q is not a valid semantic version", build.Version)
	}
	return nil
}

// Render returns the YAML form of the record for the archive entry.
func (build Build) Render() ([]byte, error) {
	return yaml.Marshal(build)
}

// ArchiveFileName derives the timestamped archive filename for the build,
// for example "GusFace_Build_v1.0_20240101_120000.zip".
func (build Build) ArchiveFileName() string {
	stamp := utils.FormatArchiveStamp(build.Created)
	baseName := sanitizeNameComponent(build.Name)
	if build.Version == "" {
		return fmt.Sprintf("%s_%s.zip", baseName, stamp)
	}
	return fmt.Sprintf("%s_%s_%s.zip", baseName, sanitizeNameComponent(build.Version), stamp)
}

// sanitizeNameComponent keeps archive filenames portable across filesystems.
func sanitizeNameComponent(value string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return replacer.Replace(strings.TrimSpace(value))
}
