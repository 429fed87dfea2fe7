package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gusface/kodipack/internal/utils"
)

// LoadExclusionFilePatterns reads a plain-text pattern file, one exclusion
// pattern per line. Blank lines and lines starting with "#" are skipped.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadExclusionFilePatterns(patternFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(patternFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", patternFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return utils.DeduplicatePatterns(patterns), nil
}

// CombineExclusionPatterns merges base patterns with a pattern file and ad-hoc
// additions, preserving order and dropping duplicates and blank entries.
func CombineExclusionPatterns(basePatterns []string, patternFilePath string, additionalPatterns []string) ([]string, error) {
	combinedPatterns := append([]string{}, basePatterns...)

	if patternFilePath != "" {
		filePatterns, loadError := LoadExclusionFilePatterns(patternFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading exclusion patterns from %s: %w", patternFilePath, loadError)
		}
		combinedPatterns = append(combinedPatterns, filePatterns...)
	}

	for _, pattern := range additionalPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}

	return utils.DeduplicatePatterns(combinedPatterns), nil
}
