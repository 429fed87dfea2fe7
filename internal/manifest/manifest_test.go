package manifest_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gusface/kodipack/internal/manifest"
	"github.com/gusface/kodipack/internal/utils"
)

// TestBuildValidate verifies name and version validation.
func TestBuildValidate(testingHandle *testing.T) {
	testCases := []struct {
		name        string
		build       manifest.Build
		expectError bool
	}{
		{name: "complete record", build: manifest.Build{Name: "GusFace_Build", Version: "v1.2.3"}, expectError: false},
		{name: "bare version accepted", build: manifest.Build{Name: "GusFace_Build", Version: "1.0"}, expectError: false},
		{name: "short prefixed version", build: manifest.Build{Name: "GusFace_Build", Version: "v1.0"}, expectError: false},
		{name: "invalid prefixed version", build: manifest.Build{Name: "GusFace_Build", Version: "vFinal"}, expectError: true},
		{name: "empty name", build: manifest.Build{Name: "   ", Version: "v1.0"}, expectError: true},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			validateError := testCase.build.Validate()
			if testCase.expectError && validateError == nil {
				subtestHandle.Fatalf("expected validation error")
			}
			if !testCase.expectError && validateError != nil {
				subtestHandle.Fatalf("unexpected validation error: %v", validateError)
			}
		})
	}
}

// TestBuildValidateEmptyNameSentinel verifies the sentinel error is wired.
func TestBuildValidateEmptyNameSentinel(testingHandle *testing.T) {
	validateError := manifest.Build{Version: "v1.0"}.Validate()
	if !errors.Is(validateError, manifest.ErrEmptyBuildName) {
		testingHandle.Fatalf("expected ErrEmptyBuildName, got %v", validateError)
	}
}

// TestArchiveFileName verifies the timestamped filename derivation.
func TestArchiveFileName(testingHandle *testing.T) {
	created := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	stamp := utils.FormatArchiveStamp(created)
	testCases := []struct {
		name     string
		build    manifest.Build
		expected string
	}{
		{
			name:     "name version and stamp",
			build:    manifest.Build{Name: "GusFace_Build", Version: "v1.0", Created: created},
			expected: "GusFace_Build_v1.0_" + stamp + ".zip",
		},
		{
			name:     "missing version omits segment",
			build:    manifest.Build{Name: "GusFace_Build", Created: created},
			expected: "GusFace_Build_" + stamp + ".zip",
		},
		{
			name:     "spaces and separators sanitized",
			build:    manifest.Build{Name: " Family Room ", Version: "v1.0/beta", Created: created},
			expected: "Family_Room_v1.0-beta_" + stamp + ".zip",
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			if actual := testCase.build.ArchiveFileName(); actual != testCase.expected {
				subtestHandle.Fatalf("ArchiveFileName() = %q, expected %q", actual, testCase.expected)
			}
		})
	}
}

// TestBuildRender verifies the YAML metadata rendering.
func TestBuildRender(testingHandle *testing.T) {
	build := manifest.Build{
		Name:        "GusFace_Build",
		Version:     "v1.0",
		Creator:     manifest.DefaultCreator,
		Description: "Custom Kodi build with curated addons and theme",
		Created:     time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	rendered, renderError := build.Render()
	if renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	renderedText := string(rendered)
	for _, expectedFragment := range []string{"name: GusFace_Build", "version: v1.0", "creator: GUS Face Repository", "description: Custom Kodi build with curated addons and theme", "created:"} {
		if !strings.Contains(renderedText, expectedFragment) {
			testingHandle.Fatalf("rendered metadata missing %q:\n%s", expectedFragment, renderedText)
		}
	}
}

// TestBuildRenderOmitsEmptyOptionalFields verifies optional fields stay out of
// the metadata when unset.
func TestBuildRenderOmitsEmptyOptionalFields(testingHandle *testing.T) {
	rendered, renderError := manifest.Build{Name: "Minimal", Version: "v1.0"}.Render()
	if renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	renderedText := string(rendered)
	if strings.Contains(renderedText, "creator:") || strings.Contains(renderedText, "description:") {
		testingHandle.Fatalf("optional fields rendered when empty:\n%s", renderedText)
	}
}
