// Package repo bootstraps a private git repository for personal builds.
package repo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// BuildsDirectoryName holds full personal builds with credentials intact.
	BuildsDirectoryName = "personal_builds"
	// WizardDirectoryName holds wizard configurations with personal data.
	WizardDirectoryName = "personal_wizard"
	// ConfigsDirectoryName holds addon settings and sources.
	ConfigsDirectoryName = "secure_configs"

	readmeFileName    = "README.md"
	gitignoreFileName = ".gitignore"

	initialCommitMessage = "Initial commit - private build repository setup"

	// errorCreateDirectoryFormat is used when a scaffold directory cannot be created.
	errorCreateDirectoryFormat = "creating %s: %w"
	// errorWriteFileFormat is used when a scaffold file cannot be written.
	errorWriteFileFormat = "writing %s: %w"
)

// readmeContent warns that the repository holds personal data and documents its layout.
const readmeContent = `# Private Kodi Build Repository

**PRIVATE REPOSITORY - Contains Personal Data**

This repository contains:
- Personal Kodi builds with debrid service credentials
- Private wizard configurations
- Personal addon settings and sources

## Security Notes:
- Never make this repository public
- Only clone on trusted devices
- Keep access restricted to your own accounts

## Structure:
` + "```" + `
personal_builds/     - Full personal builds with credentials
personal_wizard/     - Wizard configs with personal data
secure_configs/      - Addon settings and sources
` + "```" + `

Created by kodipack.
`

// gitignoreContent keeps temporary and backup files that may carry sensitive
// data out of version control.
const gitignoreContent = `# Ignore temp files that might contain sensitive data
*.tmp
*.temp
*.log
temp_*/
.DS_Store
Thumbs.db

# Backup files
*.bak
*.backup
`

// Result describes the outcome of a bootstrap run.
type Result struct {
	Path           string
	GitInitialized bool
	Warnings       []string
}

// Bootstrap scaffolds a private build repository at targetPath and initializes
// a git repository with an initial commit when the git binary is available.
// Missing git or failing git commands degrade to scaffolding-only with warnings;
// only filesystem failures are errors.
func Bootstrap(targetPath string) (Result, error) {
	absoluteTargetPath, absolutePathError := filepath.Abs(targetPath)
	if absolutePathError != nil {
		return Result{}, fmt.Errorf(errorCreateDirectoryFormat, targetPath, absolutePathError)
	}
	result := Result{Path: absoluteTargetPath}

	for _, directoryName := range []string{BuildsDirectoryName, WizardDirectoryName, ConfigsDirectoryName} {
		directoryPath := filepath.Join(absoluteTargetPath, directoryName)
		if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
			return Result{}, fmt.Errorf(errorCreateDirectoryFormat, directoryPath, makeDirError)
		}
	}

	readmePath := filepath.Join(absoluteTargetPath, readmeFileName)
	if writeError := os.WriteFile(readmePath, []byte(readmeContent), 0o644); writeError != nil {
		return Result{}, fmt.Errorf(errorWriteFileFormat, readmePath, writeError)
	}
	gitignorePath := filepath.Join(absoluteTargetPath, gitignoreFileName)
	if writeError := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644); writeError != nil {
		return Result{}, fmt.Errorf(errorWriteFileFormat, gitignorePath, writeError)
	}

	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		result.Warnings = append(result.Warnings, "git not found; repository scaffolded without version control")
		return result, nil
	}

	gitSteps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", initialCommitMessage},
	}
	for _, arguments := range gitSteps {
		if commandError := runGit(absoluteTargetPath, arguments); commandError != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("git %s failed: %v", strings.Join(arguments, " "), commandError))
			return result, nil
		}
	}
	result.GitInitialized = true
	return result, nil
}

// runGit executes one git command inside the repository directory.
func runGit(repositoryPath string, arguments []string) error {
	// #nosec G204
	gitCommand := exec.Command("git", arguments...)
	gitCommand.Dir = repositoryPath
	outputData, commandError := gitCommand.CombinedOutput()
	if commandError != nil {
		trimmedOutput := strings.TrimSpace(string(outputData))
		if trimmedOutput != "" {
			return fmt.Errorf("%w: %s", commandError, trimmedOutput)
		}
		return commandError
	}
	return nil
}
