// Package output renders selection and build reports for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gusface/kodipack/internal/types"
	"github.com/gusface/kodipack/internal/utils"
)

const (
	listIndent          = "  "
	oversizedHeading    = "Skipped oversized:"
	includedLineFormat  = "Files included: %d (%s)"
	unreadableFormat    = "Unreadable skipped: %d"
	archiveLineFormat   = "Archive: %s (%s)"
	createdLineFormat   = "Created: %s"
	writtenLineFormat   = "Files written: %d"
	scrubbedLineFormat  = "Files scrubbed: %d"
	skippedWriteFormat  = "Skipped at write: %s"
	oversizedItemFormat = "%s%s (%s)"
)

// RenderSelectionRaw renders a human-readable selection report. When
// listIncluded is set, every included relative path is listed, which is the
// preview surface shown before committing to an archive.
func RenderSelectionRaw(report types.SelectionReport, listIncluded bool) string {
	var builder strings.Builder
	builder.WriteString(report.Root)
	builder.WriteString("\n")
	if listIncluded {
		for _, record := range report.Included {
			builder.WriteString(listIndent)
			builder.WriteString(record.RelativePath)
			builder.WriteString("\n")
		}
	}
	if len(report.Oversized) > 0 {
		builder.WriteString(oversizedHeading)
		builder.WriteString("\n")
		for _, oversizedFile := range report.Oversized {
			builder.WriteString(fmt.Sprintf(oversizedItemFormat, listIndent, oversizedFile.RelativePath, utils.FormatFileSize(oversizedFile.SizeBytes)))
			builder.WriteString("\n")
		}
	}
	builder.WriteString(fmt.Sprintf(includedLineFormat, len(report.Included), utils.FormatFileSize(report.IncludedBytes())))
	builder.WriteString("\n")
	if report.Unreadable > 0 {
		builder.WriteString(fmt.Sprintf(unreadableFormat, report.Unreadable))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderSelectionJSON renders the selection report as one JSON document.
func RenderSelectionJSON(report types.SelectionReport) (string, error) {
	encoded, encodeError := json.MarshalIndent(report, "", "  ")
	if encodeError != nil {
		return "", encodeError
	}
	return string(encoded), nil
}

// buildDocument pairs the selection with the archive outcome for JSON output.
type buildDocument struct {
	Selection types.SelectionReport `json:"selection"`
	Build     types.BuildReport     `json:"build"`
}

// RenderBuildRaw renders the post-archive summary.
func RenderBuildRaw(selection types.SelectionReport, build types.BuildReport) string {
	var builder strings.Builder
	builder.WriteString(RenderSelectionRaw(selection, false))
	builder.WriteString(fmt.Sprintf(archiveLineFormat, build.ArchivePath, utils.FormatFileSize(build.ArchiveBytes)))
	builder.WriteString("\n")
	if createdStamp := utils.FormatTimestamp(build.Created); createdStamp != "" {
		builder.WriteString(fmt.Sprintf(createdLineFormat, createdStamp))
		builder.WriteString("\n")
	}
	builder.WriteString(fmt.Sprintf(writtenLineFormat, build.WrittenFiles))
	builder.WriteString("\n")
	if len(build.ScrubbedFiles) > 0 {
		builder.WriteString(fmt.Sprintf(scrubbedLineFormat, len(build.ScrubbedFiles)))
		builder.WriteString("\n")
	}
	if len(build.SkippedFiles) > 0 {
		builder.WriteString(fmt.Sprintf(skippedWriteFormat, strings.Join(build.SkippedFiles, ", ")))
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderBuildJSON renders the selection and archive outcome as one JSON document.
func RenderBuildJSON(selection types.SelectionReport, build types.BuildReport) (string, error) {
	encoded, encodeError := json.MarshalIndent(buildDocument{Selection: selection, Build: build}, "", "  ")
	if encodeError != nil {
		return "", encodeError
	}
	return string(encoded), nil
}

// IncludedPathList returns the newline-separated included paths, the form
// placed on the clipboard by preview.
func IncludedPathList(report types.SelectionReport) string {
	paths := make([]string, 0, len(report.Included))
	for _, record := range report.Included {
		paths = append(paths, record.RelativePath)
	}
	return strings.Join(paths, "\n")
}
