package output_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gusface/kodipack/internal/output"
	"github.com/gusface/kodipack/internal/types"
	"github.com/gusface/kodipack/internal/utils"
)

func sampleSelection() types.SelectionReport {
	return types.SelectionReport{
		Root: "/home/gus/.kodi",
		Included: []types.FileRecord{
			{RelativePath: "userdata/guisettings.xml", AbsolutePath: "/home/gus/.kodi/userdata/guisettings.xml", SizeBytes: 2048},
			{RelativePath: "addons/plugin.video.example/addon.xml", AbsolutePath: "/home/gus/.kodi/addons/plugin.video.example/addon.xml", SizeBytes: 1024},
		},
		Oversized: []types.OversizedFile{
			{RelativePath: "userdata/backup.img", SizeBytes: 200 * 1024 * 1024},
		},
		Unreadable: 1,
	}
}

// TestRenderSelectionRawPreview verifies the preview rendering lists included
// paths, oversized skips, and counters.
func TestRenderSelectionRawPreview(testingHandle *testing.T) {
	rendered := output.RenderSelectionRaw(sampleSelection(), true)
	for _, expectedFragment := range []string{
		"/home/gus/.kodi",
		"  userdata/guisettings.xml",
		"  addons/plugin.video.example/addon.xml",
		"Skipped oversized:",
		"  userdata/backup.img (200mb)",
		"Files included: 2 (3kb)",
		"Unreadable skipped: 1",
	} {
		if !strings.Contains(rendered, expectedFragment) {
			testingHandle.Fatalf("rendered output missing %q:\n%s", expectedFragment, rendered)
		}
	}
}

// TestRenderSelectionRawSummary verifies paths are withheld outside preview.
func TestRenderSelectionRawSummary(testingHandle *testing.T) {
	rendered := output.RenderSelectionRaw(sampleSelection(), false)
	if strings.Contains(rendered, "  userdata/guisettings.xml") {
		testingHandle.Fatalf("summary rendering lists included paths:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Files included: 2 (3kb)") {
		testingHandle.Fatalf("summary rendering missing counters:\n%s", rendered)
	}
}

// TestRenderSelectionJSON verifies the JSON document shape and that absolute
// paths never leak into machine-readable output.
func TestRenderSelectionJSON(testingHandle *testing.T) {
	rendered, renderError := output.RenderSelectionJSON(sampleSelection())
	if renderError != nil {
		testingHandle.Fatalf("RenderSelectionJSON error: %v", renderError)
	}
	var decoded map[string]any
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		testingHandle.Fatalf("invalid JSON output: %v", decodeError)
	}
	if decoded["root"] != "/home/gus/.kodi" {
		testingHandle.Fatalf("unexpected root in JSON: %v", decoded["root"])
	}
	includedEntries, isSlice := decoded["included"].([]any)
	if !isSlice || len(includedEntries) != 2 {
		testingHandle.Fatalf("unexpected included entries: %v", decoded["included"])
	}
	if strings.Contains(rendered, "/home/gus/.kodi/userdata") {
		testingHandle.Fatalf("absolute paths leaked into JSON output:\n%s", rendered)
	}
}

// TestRenderBuildRaw verifies the post-archive summary rendering.
func TestRenderBuildRaw(testingHandle *testing.T) {
	created := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	build := types.BuildReport{
		ArchivePath:   "builds/GusFace_Build_v1.0_20240102_150405.zip",
		ArchiveBytes:  4096,
		Created:       created,
		WrittenFiles:  2,
		ScrubbedFiles: []string{"userdata/sources.xml"},
		SkippedFiles:  []string{"userdata/vanished.xml"},
	}
	rendered := output.RenderBuildRaw(sampleSelection(), build)
	for _, expectedFragment := range []string{
		"Archive: builds/GusFace_Build_v1.0_20240102_150405.zip (4kb)",
		"Created: " + utils.FormatTimestamp(created),
		"Files written: 2",
		"Files scrubbed: 1",
		"Skipped at write: userdata/vanished.xml",
	} {
		if !strings.Contains(rendered, expectedFragment) {
			testingHandle.Fatalf("rendered output missing %q:\n%s", expectedFragment, rendered)
		}
	}
}

// TestRenderBuildRawWithoutCreationTime verifies the creation line is withheld
// when no build metadata was recorded.
func TestRenderBuildRawWithoutCreationTime(testingHandle *testing.T) {
	rendered := output.RenderBuildRaw(sampleSelection(), types.BuildReport{ArchivePath: "builds/test.zip", WrittenFiles: 1})
	if strings.Contains(rendered, "Created:") {
		testingHandle.Fatalf("creation line rendered without metadata:\n%s", rendered)
	}
}

// TestRenderBuildJSON verifies the combined selection and build document.
func TestRenderBuildJSON(testingHandle *testing.T) {
	rendered, renderError := output.RenderBuildJSON(sampleSelection(), types.BuildReport{ArchivePath: "builds/test.zip", WrittenFiles: 2})
	if renderError != nil {
		testingHandle.Fatalf("RenderBuildJSON error: %v", renderError)
	}
	var decoded struct {
		Selection types.SelectionReport `json:"selection"`
		Build     types.BuildReport     `json:"build"`
	}
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		testingHandle.Fatalf("invalid JSON output: %v", decodeError)
	}
	if decoded.Selection.Root != "/home/gus/.kodi" || decoded.Build.ArchivePath != "builds/test.zip" {
		testingHandle.Fatalf("unexpected document content: %+v", decoded)
	}
}

// TestIncludedPathList verifies the clipboard form of the preview.
func TestIncludedPathList(testingHandle *testing.T) {
	pathList := output.IncludedPathList(sampleSelection())
	expected := "userdata/guisettings.xml\naddons/plugin.video.example/addon.xml"
	if pathList != expected {
		testingHandle.Fatalf("IncludedPathList = %q, expected %q", pathList, expected)
	}
	if emptyList := output.IncludedPathList(types.SelectionReport{}); emptyList != "" {
		testingHandle.Fatalf("expected empty list for empty report, got %q", emptyList)
	}
}
