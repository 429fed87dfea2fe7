package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"github.com/gusface/kodipack/internal/archive"
	"github.com/gusface/kodipack/internal/config"
	"github.com/gusface/kodipack/internal/manifest"
	"github.com/gusface/kodipack/internal/match"
	"github.com/gusface/kodipack/internal/output"
	"github.com/gusface/kodipack/internal/scan"
	"github.com/gusface/kodipack/internal/scrub"
	"github.com/gusface/kodipack/internal/types"
	"github.com/gusface/kodipack/internal/utils"
)

// runSettings is the fully resolved configuration of one build or preview run,
// combining flags, configuration files, and built-in defaults.
type runSettings struct {
	sourcePath        string
	outputDirectory   string
	buildName         string
	buildVersion      string
	buildDescription  string
	buildCreator      string
	sizeCeiling       int64
	allowlist         []string
	exclusionPatterns []string
	caseInsensitive   bool
	personalBuild     bool
	scrubEnabled      bool
	scrubProfile      scrub.Profile
	configuration     config.ApplicationConfiguration
}

// resolveRunSettings merges command flags with the discovered configuration
// files and the built-in defaults. Flags win over configuration, configuration
// wins over defaults.
func resolveRunSettings(configFilePath string, options *selectionOptions, skipLargeFlagChanged bool) (runSettings, error) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: configFilePath})
	if configurationError != nil {
		return runSettings{}, configurationError
	}

	settings := runSettings{
		personalBuild: options.personalBuild,
		configuration: applicationConfiguration,
	}

	settings.sourcePath = options.sourcePath
	if settings.sourcePath == "" {
		settings.sourcePath = applicationConfiguration.Build.Source
	}
	if settings.sourcePath == "" {
		settings.sourcePath = config.DefaultKodiPath()
	}

	settings.sizeCeiling = config.DefaultSizeCeilingBytes
	if applicationConfiguration.Build.SkipLargerThan != nil {
		settings.sizeCeiling = *applicationConfiguration.Build.SkipLargerThan
	}
	if skipLargeFlagChanged {
		settings.sizeCeiling = options.skipLargerThan
	}

	settings.allowlist = applicationConfiguration.Paths.Allow
	if len(settings.allowlist) == 0 {
		settings.allowlist = config.DefaultAllowlist
	}

	settings.caseInsensitive = config.DefaultCaseInsensitive()
	if applicationConfiguration.Paths.CaseInsensitive != nil {
		settings.caseInsensitive = *applicationConfiguration.Paths.CaseInsensitive
	}

	basePatterns := applicationConfiguration.Paths.Exclude
	if len(basePatterns) == 0 {
		basePatterns = config.DefaultExclusionPatterns
	}
	combinedPatterns, combineError := config.CombineExclusionPatterns(basePatterns, options.exclusionFilePath, options.exclusionPatterns)
	if combineError != nil {
		return runSettings{}, combineError
	}

	settings.scrubEnabled = !options.personalBuild
	if applicationConfiguration.Scrub.Enabled != nil && !*applicationConfiguration.Scrub.Enabled {
		settings.scrubEnabled = false
	}
	settings.scrubProfile = scrub.DefaultProfile()
	if applicationConfiguration.Scrub.Profile != nil {
		settings.scrubProfile = *applicationConfiguration.Scrub.Profile
	}
	if settings.scrubEnabled {
		combinedPatterns = utils.DeduplicatePatterns(append(combinedPatterns, settings.scrubProfile.ExtraExclusions...))
	}
	settings.exclusionPatterns = combinedPatterns

	return settings, nil
}

// runSelection executes the selection the settings describe.
func runSelection(settings runSettings) (types.SelectionReport, error) {
	exclusionMatcher, matcherError := match.NewMatcher(settings.exclusionPatterns, match.Options{CaseInsensitive: settings.caseInsensitive})
	if matcherError != nil {
		return types.SelectionReport{}, matcherError
	}
	return scan.SelectDirectory(settings.sourcePath, scan.Options{
		Allowlist:   settings.allowlist,
		Exclusions:  exclusionMatcher,
		SizeCeiling: settings.sizeCeiling,
	})
}

// runPreview performs the selection and presents it without writing an archive.
func runPreview(settings runSettings, format string, copyToClipboard bool) error {
	selectionReport, selectionError := runSelection(settings)
	if selectionError != nil {
		return selectionError
	}

	if format == types.FormatJSON {
		renderedReport, renderError := output.RenderSelectionJSON(selectionReport)
		if renderError != nil {
			return renderError
		}
		fmt.Println(renderedReport)
	} else {
		fmt.Print(output.RenderSelectionRaw(selectionReport, true))
	}

	if copyToClipboard {
		if clipboardError := clipboard.WriteAll(output.IncludedPathList(selectionReport)); clipboardError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, clipboardError)
		}
	}
	return nil
}

// runBuild performs the selection and writes the build archive.
func runBuild(settings runSettings, format string) error {
	selectionReport, selectionError := runSelection(settings)
	if selectionError != nil {
		return selectionError
	}

	build, buildError := resolveBuildMetadata(settings)
	if buildError != nil {
		return buildError
	}

	outputDirectory := settings.outputDirectory
	if outputDirectory == "" {
		outputDirectory = settings.configuration.Build.OutputDir
	}
	if outputDirectory == "" {
		if settings.personalBuild {
			outputDirectory = config.DefaultPersonalOutputDirectory()
		} else {
			outputDirectory = config.DefaultOutputDirectoryName
		}
	}
	destinationPath := filepath.Join(outputDirectory, build.ArchiveFileName())

	archiveOptions := archive.Options{DestinationPath: destinationPath, Build: build}
	if settings.scrubEnabled {
		scrubber, scrubberError := scrub.NewScrubber(settings.scrubProfile, match.Options{CaseInsensitive: settings.caseInsensitive})
		if scrubberError != nil {
			return scrubberError
		}
		archiveOptions.Transform = scrubber.Transform
	}

	buildReport, writeError := archive.Write(selectionReport.Included, archiveOptions)
	if writeError != nil {
		return writeError
	}

	if format == types.FormatJSON {
		renderedReport, renderError := output.RenderBuildJSON(selectionReport, buildReport)
		if renderError != nil {
			return renderError
		}
		fmt.Println(renderedReport)
	} else {
		fmt.Print(output.RenderBuildRaw(selectionReport, buildReport))
	}
	return nil
}

// resolveBuildMetadata assembles and validates the archive metadata record.
func resolveBuildMetadata(settings runSettings) (manifest.Build, error) {
	buildName := settings.buildName
	if buildName == "" {
		buildName = settings.configuration.Build.Name
	}
	if buildName == "" {
		buildName = config.DefaultBuildName
	}
	if settings.personalBuild {
		buildName += personalNameSuffix
	} else {
		buildName += publicNameSuffix
	}

	buildVersion := settings.buildVersion
	if buildVersion == "" {
		buildVersion = settings.configuration.Build.Version
	}
	if buildVersion == "" {
		buildVersion = config.DefaultBuildVersion
	}

	buildCreator := settings.buildCreator
	if buildCreator == "" {
		buildCreator = settings.configuration.Build.Creator
	}
	if buildCreator == "" {
		buildCreator = manifest.DefaultCreator
	}

	buildDescription := settings.buildDescription
	if buildDescription == "" {
		buildDescription = settings.configuration.Build.Description
	}
	if buildDescription == "" {
		buildDescription = defaultBuildDescription
	}

	build := manifest.Build{
		Name:        buildName,
		Version:     buildVersion,
		Creator:     buildCreator,
		Description: buildDescription,
		Created:     time.Now(),
	}
	if validationError := build.Validate(); validationError != nil {
		return manifest.Build{}, validationError
	}
	return build, nil
}
