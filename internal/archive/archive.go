// Package archive writes accepted file records into a ZIP build archive.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gusface/kodipack/internal/manifest"
	"github.com/gusface/kodipack/internal/types"
)

const (
	// errorCreateArchiveFormat is used when the archive file cannot be created.
	errorCreateArchiveFormat = "creating archive %s: %w"
	// errorWriteArchiveFormat is used when writing the archive fails partway.
	errorWriteArchiveFormat = "writing archive %s: %w"
	// errorRenderManifestFormat is used when the build metadata cannot be rendered.
	errorRenderManifestFormat = "rendering build metadata: %w"
	// errorEmptyEntryPathMessage reports a record without a usable archive path.
	errorEmptyEntryPathMessage = "archive entry with empty relative path"
	// warningRemovePartialFormat is used when a partial archive cannot be deleted.
	warningRemovePartialFormat = "Warning: failed to remove partial archive %s: %v\n"
)

// Transform rewrites file content before it is stored, returning the bytes to
// store and whether anything changed. Used for sensitive-data scrubbing.
type Transform func(relativePath string, content []byte) ([]byte, bool)

// Options configures one archive write.
type Options struct {
	// DestinationPath is the archive file to create. Parent directories are
	// created as needed.
	DestinationPath string
	// Build is rendered as YAML and stored as the archive's top-level
	// metadata entry.
	Build manifest.Build
	// Transform, when non-nil, is applied to every file's content.
	Transform Transform
}

// Write stores every record at its relative path inside a ZIP archive.
// Source files that became unreadable since selection are per-file skips
// collected in the report. Any other failure deletes the partially written
// archive before returning, so a corrupt artifact never survives a failed run.
func Write(records []types.FileRecord, options Options) (types.BuildReport, error) {
	report := types.BuildReport{ArchivePath: options.DestinationPath, Created: options.Build.Created}

	if makeDirError := os.MkdirAll(filepath.Dir(options.DestinationPath), 0o755); makeDirError != nil {
		return types.BuildReport{}, fmt.Errorf(errorCreateArchiveFormat, options.DestinationPath, makeDirError)
	}
	archiveFile, createError := os.Create(options.DestinationPath)
	if createError != nil {
		return types.BuildReport{}, fmt.Errorf(errorCreateArchiveFormat, options.DestinationPath, createError)
	}

	archiveWriter := zip.NewWriter(archiveFile)
	writeError := writeEntries(archiveWriter, records, options, &report)
	if closeError := archiveWriter.Close(); writeError == nil {
		writeError = closeError
	}
	if closeError := archiveFile.Close(); writeError == nil {
		writeError = closeError
	}
	if writeError != nil {
		if removeError := os.Remove(options.DestinationPath); removeError != nil {
			fmt.Fprintf(os.Stderr, warningRemovePartialFormat, options.DestinationPath, removeError)
		}
		return types.BuildReport{}, fmt.Errorf(errorWriteArchiveFormat, options.DestinationPath, writeError)
	}

	if archiveInfo, statError := os.Stat(options.DestinationPath); statError == nil {
		report.ArchiveBytes = archiveInfo.Size()
	}
	return report, nil
}

// writeEntries stores the metadata entry followed by every record.
func writeEntries(archiveWriter *zip.Writer, records []types.FileRecord, options Options, report *types.BuildReport) error {
	if options.Build.Name != "" {
		if manifestError := writeManifestEntry(archiveWriter, options.Build); manifestError != nil {
			return manifestError
		}
	}

	for _, record := range records {
		if record.RelativePath == "" {
			return errors.New(errorEmptyEntryPathMessage)
		}
		content, readError := os.ReadFile(record.AbsolutePath)
		if readError != nil {
			report.SkippedFiles = append(report.SkippedFiles, record.RelativePath)
			continue
		}
		if options.Transform != nil {
			transformed, changed := options.Transform(record.RelativePath, content)
			if changed {
				report.ScrubbedFiles = append(report.ScrubbedFiles, record.RelativePath)
			}
			content = transformed
		}

		entryHeader := &zip.FileHeader{Name: record.RelativePath, Method: zip.Deflate}
		if recordInfo, statError := os.Stat(record.AbsolutePath); statError == nil {
			entryHeader.Modified = recordInfo.ModTime()
			entryHeader.SetMode(recordInfo.Mode())
		}
		entryWriter, entryError := archiveWriter.CreateHeader(entryHeader)
		if entryError != nil {
			return entryError
		}
		if _, contentError := entryWriter.Write(content); contentError != nil {
			return contentError
		}
		report.WrittenFiles++
	}
	return nil
}

// writeManifestEntry renders the build metadata and stores it at the archive top level.
func writeManifestEntry(archiveWriter *zip.Writer, build manifest.Build) error {
	renderedManifest, renderError := build.Render()
	if renderError != nil {
		return fmt.Errorf(errorRenderManifestFormat, renderError)
	}
	entryHeader := &zip.FileHeader{Name: manifest.FileName, Method: zip.Deflate, Modified: build.Created}
	entryWriter, entryError := archiveWriter.CreateHeader(entryHeader)
	if entryError != nil {
		return entryError
	}
	_, contentError := entryWriter.Write(renderedManifest)
	return contentError
}
