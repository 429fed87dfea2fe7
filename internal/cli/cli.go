// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gusface/kodipack/internal/config"
	"github.com/gusface/kodipack/internal/repo"
	"github.com/gusface/kodipack/internal/types"
	"github.com/gusface/kodipack/internal/utils"
)

const (
	configFlagName         = "config"
	kodiFlagName           = "kodi"
	outFlagName            = "out"
	nameFlagName           = "name"
	buildVersionFlagName   = "build-version"
	descriptionFlagName    = "description"
	creatorFlagName        = "creator"
	personalFlagName       = "personal"
	dryRunFlagName         = "dry-run"
	skipLargeFlagName      = "skip-large"
	exclusionFlagName      = "exclude"
	exclusionFlagShorthand = "e"
	excludeFromFlagName    = "exclude-from"
	formatFlagName         = "format"
	copyFlagName           = "copy"
	versionFlagName        = "version"
	versionTemplate        = "kodipack version: %s\n"

	rootUse              = "kodipack"
	rootShortDescription = "kodipack command line interface"
	rootLongDescription  = `kodipack packages a Kodi configuration directory into a distributable build archive.
It selects files from the userdata and addons subtrees, drops caches, logs, and oversized
files, optionally scrubs personal data for public distribution, and writes a single ZIP.
Use preview to inspect the selection without writing anything, and repo init to scaffold
a private repository for personal builds.`

	buildUse              = types.CommandBuild
	previewUse            = types.CommandPreview
	repoUse               = types.CommandRepo
	repoInitUse           = "init [path]"
	buildAlias            = "b"
	previewAlias          = "p"
	buildShortDescription = "create a build archive (" + buildAlias + ")"
	// buildLongDescription provides detailed help for the build command.
	buildLongDescription = `Select files from the Kodi directory and write them into a timestamped ZIP archive.
Public builds (the default) scrub commonly named credentials and drop personal subtrees;
use --personal to keep everything intact and write to the private output directory.`
	// buildUsageExample demonstrates build command usage.
	buildUsageExample = `  # Create a scrubbed public build from the default Kodi directory
  kodipack build

  # Create a personal build from an explicit Kodi folder, keeping credentials
  kodipack build --personal --kodi "C:/Users/Mark/AppData/Roaming/Kodi"

  # Exclude an extra subtree and disable the size ceiling
  kodipack build -e "userdata/playlists/*" --skip-large 0`

	previewShortDescription = "list the files a build would include (" + previewAlias + ")"
	// previewLongDescription provides detailed help for the preview command.
	previewLongDescription = `Run the identical selection a build would run and print the result without
writing an archive. Use --copy to place the included path list on the clipboard.`
	// previewUsageExample demonstrates preview command usage.
	previewUsageExample = `  # Show what a public build would contain
  kodipack preview

  # JSON report of a personal build selection
  kodipack preview --personal --format json`

	repoShortDescription     = "manage the private build repository"
	repoInitShortDescription = "scaffold a private git repository for personal builds"

	versionFlagDescription      = "display application version"
	configFlagDescription       = "configuration file path"
	kodiFlagDescription         = "path to the Kodi data directory"
	outFlagDescription          = "output directory for the build archive"
	nameFlagDescription         = "base name for the build archive"
	buildVersionFlagDescription = "build version recorded in the archive metadata"
	descriptionFlagDescription  = "free-text description recorded in the archive metadata"
	creatorFlagDescription      = "creator recorded in the archive metadata"
	personalFlagDescription     = "keep personal data intact and use the private output directory"
	dryRunFlagDescription       = "list the files that would be included without creating an archive"
	skipLargeFlagDescription    = "skip files larger than this many bytes (0 disables)"
	exclusionFlagDescription    = "exclude path pattern"
	excludeFromFlagDescription  = "file with additional exclusion patterns, one per line"
	formatFlagDescription       = "output format"
	copyFlagDescription         = "copy the included path list to the clipboard"

	publicNameSuffix   = "_Public"
	personalNameSuffix = "_Personal"

	defaultBuildDescription     = "Custom Kodi build with curated addons and theme"
	defaultPrivateRepoDirectory = "gusface-private"

	invalidFormatMessage        = "Invalid format value '%s'"
	warningClipboardFormat      = "Warning: failed to copy paths to clipboard: %v\n"
	warningRepoFormat           = "Warning: %s\n"
	repoReadyFormat             = "Private repository ready at %s\n"
	repoNoGitNotice             = "Repository scaffolded without an initial git commit."
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the kodipack application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createBuildCommand(&configFilePath),
		createPreviewCommand(&configFilePath),
		createRepoCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// selectionOptions stores configuration for selection-related flags.
type selectionOptions struct {
	sourcePath        string
	exclusionPatterns []string
	exclusionFilePath string
	skipLargerThan    int64
	personalBuild     bool
	outputFormat      string
}

// addSelectionFlags registers selection-related flags on the command.
func addSelectionFlags(command *cobra.Command, options *selectionOptions) {
	command.Flags().StringVar(&options.sourcePath, kodiFlagName, "", kodiFlagDescription)
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	command.Flags().StringVar(&options.exclusionFilePath, excludeFromFlagName, "", excludeFromFlagDescription)
	command.Flags().Int64Var(&options.skipLargerThan, skipLargeFlagName, config.DefaultSizeCeilingBytes, skipLargeFlagDescription)
	command.Flags().BoolVar(&options.personalBuild, personalFlagName, false, personalFlagDescription)
	command.Flags().StringVar(&options.outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
}

// createBuildCommand returns the build subcommand.
func createBuildCommand(configFilePath *string) *cobra.Command {
	var selectionConfiguration selectionOptions
	var outputDirectory string
	var buildName string
	var buildVersion string
	var buildDescription string
	var buildCreator string
	var dryRun bool

	buildCommand := &cobra.Command{
		Use:     buildUse,
		Aliases: []string{buildAlias},
		Short:   buildShortDescription,
		Long:    buildLongDescription,
		Example: buildUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			outputFormatLower := strings.ToLower(selectionConfiguration.outputFormat)
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}
			settings, settingsError := resolveRunSettings(*configFilePath, &selectionConfiguration, command.Flags().Changed(skipLargeFlagName))
			if settingsError != nil {
				return settingsError
			}
			settings.outputDirectory = outputDirectory
			settings.buildName = buildName
			settings.buildVersion = buildVersion
			settings.buildDescription = buildDescription
			settings.buildCreator = buildCreator
			if dryRun {
				return runPreview(settings, outputFormatLower, false)
			}
			return runBuild(settings, outputFormatLower)
		},
	}

	addSelectionFlags(buildCommand, &selectionConfiguration)
	buildCommand.Flags().StringVar(&outputDirectory, outFlagName, "", outFlagDescription)
	buildCommand.Flags().StringVar(&buildName, nameFlagName, "", nameFlagDescription)
	buildCommand.Flags().StringVar(&buildVersion, buildVersionFlagName, "", buildVersionFlagDescription)
	buildCommand.Flags().StringVar(&buildDescription, descriptionFlagName, "", descriptionFlagDescription)
	buildCommand.Flags().StringVar(&buildCreator, creatorFlagName, "", creatorFlagDescription)
	buildCommand.Flags().BoolVar(&dryRun, dryRunFlagName, false, dryRunFlagDescription)
	return buildCommand
}

// createPreviewCommand returns the preview subcommand.
func createPreviewCommand(configFilePath *string) *cobra.Command {
	var selectionConfiguration selectionOptions
	var copyToClipboard bool

	previewCommand := &cobra.Command{
		Use:     previewUse,
		Aliases: []string{previewAlias},
		Short:   previewShortDescription,
		Long:    previewLongDescription,
		Example: previewUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			outputFormatLower := strings.ToLower(selectionConfiguration.outputFormat)
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}
			settings, settingsError := resolveRunSettings(*configFilePath, &selectionConfiguration, command.Flags().Changed(skipLargeFlagName))
			if settingsError != nil {
				return settingsError
			}
			return runPreview(settings, outputFormatLower, copyToClipboard)
		},
	}

	addSelectionFlags(previewCommand, &selectionConfiguration)
	previewCommand.Flags().BoolVar(&copyToClipboard, copyFlagName, false, copyFlagDescription)
	return previewCommand
}

// createRepoCommand returns the repo subcommand group.
func createRepoCommand() *cobra.Command {
	repoCommand := &cobra.Command{
		Use:   repoUse,
		Short: repoShortDescription,
	}

	repoInitCommand := &cobra.Command{
		Use:   repoInitUse,
		Short: repoInitShortDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			targetPath := defaultPrivateRepoPath()
			if len(arguments) == 1 {
				targetPath = arguments[0]
			}
			result, bootstrapError := repo.Bootstrap(targetPath)
			if bootstrapError != nil {
				return bootstrapError
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(os.Stderr, warningRepoFormat, warning)
			}
			fmt.Printf(repoReadyFormat, result.Path)
			if !result.GitInitialized {
				fmt.Println(repoNoGitNotice)
			}
			return nil
		},
	}

	repoCommand.AddCommand(repoInitCommand)
	return repoCommand
}

// defaultPrivateRepoPath places the private repository under the user's documents.
func defaultPrivateRepoPath() string {
	if homeDirectory, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDirectory, "Documents", defaultPrivateRepoDirectory)
	}
	return defaultPrivateRepoDirectory
}
