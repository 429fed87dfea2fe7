// Package types defines every cross-package data structure used by the kodipack CLI.
package types

import "time"

const (
	CommandBuild   = "build"
	CommandPreview = "preview"
	CommandRepo    = "repo"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// FileRecord is one file accepted for packaging.
type FileRecord struct {
	RelativePath string `json:"relativePath"`
	AbsolutePath string `json:"-"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// OversizedFile is a file skipped solely because it exceeds the size ceiling.
type OversizedFile struct {
	RelativePath string `json:"relativePath"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// SelectionReport is the outcome of one selection run, in walk order.
type SelectionReport struct {
	Root       string          `json:"root"`
	Included   []FileRecord    `json:"included"`
	Oversized  []OversizedFile `json:"oversized,omitempty"`
	Unreadable int             `json:"unreadable,omitempty"`
}

// IncludedBytes returns the total size of the included files.
func (report SelectionReport) IncludedBytes() int64 {
	var totalBytes int64
	for _, record := range report.Included {
		totalBytes += record.SizeBytes
	}
	return totalBytes
}

// BuildReport captures the outcome of writing one build archive.
type BuildReport struct {
	ArchivePath   string    `json:"archivePath"`
	ArchiveBytes  int64     `json:"archiveBytes"`
	Created       time.Time `json:"created,omitzero"`
	WrittenFiles  int       `json:"writtenFiles"`
	ScrubbedFiles []string  `json:"scrubbedFiles,omitempty"`
	SkippedFiles  []string  `json:"skippedFiles,omitempty"`
}
