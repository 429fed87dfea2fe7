// Package scan contains the core selection logic deciding which files from a
// live Kodi directory tree belong in a build archive.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gusface/kodipack/internal/match"
	"github.com/gusface/kodipack/internal/types"
	"github.com/gusface/kodipack/internal/utils"
)

// ErrRootNotFound reports a source root that is missing or not a directory.
// It is the only fatal condition of a selection run.
var ErrRootNotFound = errors.New("source root not found")

const (
	// errorStatRootFormat is used when the source root cannot be inspected.
	errorStatRootFormat = "inspecting source root %s: %w"
	// errorWalkFormat is used when traversal fails below the source root.
	errorWalkFormat = "walking %s: %w"
)

// Options configures one selection run.
type Options struct {
	// Allowlist holds the top-level directory names eligible for traversal.
	// Every other top-level entry is pruned: never descended into, never
	// evaluated against exclusions, never reported.
	Allowlist []string
	// Exclusions drops files whose relative path matches any pattern.
	// A nil matcher excludes nothing.
	Exclusions *match.Matcher
	// SizeCeiling skips files larger than this many bytes and records them as
	// oversized. Zero disables the ceiling.
	SizeCeiling int64
}

// SelectDirectory validates rootPath and runs Select over its file tree.
// A missing or non-directory root fails with ErrRootNotFound before any
// traversal happens; there is no partial result.
func SelectDirectory(rootPath string, options Options) (types.SelectionReport, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return types.SelectionReport{}, fmt.Errorf(errorStatRootFormat, rootPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return types.SelectionReport{}, fmt.Errorf("%w: %s", ErrRootNotFound, absoluteRootPath)
		}
		return types.SelectionReport{}, fmt.Errorf(errorStatRootFormat, absoluteRootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return types.SelectionReport{}, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, absoluteRootPath)
	}

	report, selectError := Select(os.DirFS(absoluteRootPath), options)
	if selectError != nil {
		return types.SelectionReport{}, selectError
	}
	report.Root = absoluteRootPath
	for recordIndex := range report.Included {
		report.Included[recordIndex].AbsolutePath = filepath.Join(absoluteRootPath, filepath.FromSlash(report.Included[recordIndex].RelativePath))
	}
	return report, nil
}

// Select applies the selection algorithm to an abstract file tree. It is a
// pure function of the tree snapshot and the options, which keeps it testable
// against in-memory filesystems. Relative paths in the result use forward
// slashes and are ordered by the walk (lexical per directory for fs.WalkDir).
func Select(fileSystem fs.FS, options Options) (types.SelectionReport, error) {
	var report types.SelectionReport

	walkFunction := func(entryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if entryPath == "." {
				return walkError
			}
			// Unreadable subtrees and entries are per-file skips, never fatal.
			report.Unreadable++
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entryPath == "." {
			return nil
		}

		if isTopLevel(entryPath) {
			if directoryEntry.IsDir() && !utils.ContainsString(options.Allowlist, directoryEntry.Name()) {
				return fs.SkipDir
			}
			if !directoryEntry.IsDir() {
				// Files directly under the root are outside every allowed
				// subtree and are never evaluated.
				return nil
			}
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}

		if options.Exclusions != nil && options.Exclusions.Matches(entryPath) {
			return nil
		}

		// Stat through the filesystem rather than the directory entry: the
		// entry reports a symlink's own size, and a dangling link must be an
		// unreadable skip, not an archive entry.
		entryInfo, infoError := fs.Stat(fileSystem, entryPath)
		if infoError != nil {
			report.Unreadable++
			return nil
		}
		fileSize := entryInfo.Size()
		if options.SizeCeiling > 0 && fileSize > options.SizeCeiling {
			report.Oversized = append(report.Oversized, types.OversizedFile{RelativePath: entryPath, SizeBytes: fileSize})
			return nil
		}

		report.Included = append(report.Included, types.FileRecord{RelativePath: entryPath, SizeBytes: fileSize})
		return nil
	}

	if walkError := fs.WalkDir(fileSystem, ".", walkFunction); walkError != nil {
		return types.SelectionReport{}, fmt.Errorf(errorWalkFormat, ".", walkError)
	}
	return report, nil
}

// isTopLevel reports whether the slash-relative path names a direct child of the root.
func isTopLevel(relativePath string) bool {
	return !strings.Contains(relativePath, "/")
}
