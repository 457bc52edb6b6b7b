package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdejongh/rawpick/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.RunReport {
	result := models.NewCopyResult()
	result.RecordSuccess("/raw/IMG_0001.CR2", "/out/IMG_0001.CR2")
	result.RecordFailure("/raw/IMG_0002.CR2", "permission denied")
	return &models.RunReport{
		OperationID:   "run-1",
		ReferencePath: "/jpeg",
		RootPath:      "/raw",
		OutputPath:    "/out",
		Duration:      1500 * time.Millisecond,
		Summary: models.Summary{
			BaseNamesProcessed: 3,
			RawFilesMatched:    2,
			FilesCopied:        1,
			FilesSkipped:       1,
			Errors:             1,
		},
		Result:    result,
		Unmatched: []string{"IMG_0003"},
		Status:    models.StatusPartial,
	}
}

func TestHumanFormatter(t *testing.T) {
	t.Run("PerFileLinesAndSummary", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewHumanFormatter(false, true)
		require.NoError(t, f.Start(&buf, &models.MatchOperation{}, 2))

		f.Progress(ProgressUpdate{Type: UpdateFileStart, FilePath: "/raw/IMG_0001.CR2"})
		f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "/raw/IMG_0001.CR2", Destination: "/out/IMG_0001.CR2"})
		f.Progress(ProgressUpdate{Type: UpdateFileError, FilePath: "/raw/IMG_0002.CR2", Error: errors.New("permission denied")})
		require.NoError(t, f.Complete(sampleReport()))

		out := buf.String()
		assert.Contains(t, out, "Copying 2 RAW files")
		assert.Contains(t, out, "copied /raw/IMG_0001.CR2 -> /out/IMG_0001.CR2")
		assert.Contains(t, out, "failed /raw/IMG_0002.CR2: permission denied")
		assert.Contains(t, out, "Base names processed: 3")
		assert.Contains(t, out, "RAW files matched:    2")
		assert.Contains(t, out, "Files copied:         1")
		assert.Contains(t, out, "Files skipped:        1")
		assert.Contains(t, out, "Errors:               1")
		assert.Contains(t, out, "IMG_0003")
		assert.Contains(t, out, "status: partial")
		assert.NotContains(t, out, "\x1b[", "buffer output must not be coloured")
	})

	t.Run("QuietSuppressesFileLines", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewHumanFormatter(true, false)
		f.Start(&buf, nil, 1)
		f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "a", Destination: "b"})
		f.Complete(sampleReport())

		out := buf.String()
		assert.NotContains(t, out, "copied a -> b")
		assert.Contains(t, out, "Summary:")
		assert.NotContains(t, out, "No RAW file found for:")
	})

	t.Run("DryRunWording", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewHumanFormatter(false, false)
		f.Start(&buf, &models.MatchOperation{DryRun: true}, 1)
		f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "a", Destination: "b"})

		assert.Contains(t, buf.String(), "would copy a -> b")
	})
}

func TestProgressFormatterWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	f := NewProgressFormatter(false, false)
	require.NoError(t, f.Start(&buf, &models.MatchOperation{}, 1))

	f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "a.cr2", Destination: "/out/a.cr2"})
	require.NoError(t, f.Complete(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "copied a.cr2 -> /out/a.cr2")
	assert.Contains(t, out, "Summary:")
	assert.Equal(t, "progress", f.Name())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	require.NoError(t, f.Start(&buf, &models.MatchOperation{}, 2))
	f.Progress(ProgressUpdate{Type: UpdateFileComplete, FilePath: "/raw/IMG_0001.CR2", Destination: "/out/IMG_0001.CR2", BytesWritten: 10})
	f.Progress(ProgressUpdate{Type: UpdateFileError, FilePath: "/raw/IMG_0002.CR2", Error: errors.New("permission denied")})
	require.NoError(t, f.Complete(sampleReport()))

	var doc JSONReportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "partial", doc.Status)
	assert.Equal(t, 1, doc.ExitCode)
	assert.Equal(t, 3, doc.Summary.BaseNamesProcessed)
	assert.Equal(t, 1, doc.Summary.FilesSkipped)
	require.Len(t, doc.Copied, 1)
	assert.Equal(t, "/out/IMG_0001.CR2", doc.Copied[0].Destination)
	require.Len(t, doc.Failed, 1)
	assert.Equal(t, []string{"IMG_0003"}, doc.Unmatched)
	assert.Len(t, doc.Events, 3)
	assert.Equal(t, int64(1500), doc.DurationMs)
}

func TestJSONFormatterError(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()
	f.Start(&buf, nil, 0)
	require.NoError(t, f.Error(models.NewError(models.KindDirectoryNotFound, "/x", "directory not found", nil)))

	var obj map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	assert.Equal(t, "directory_not_found", obj["kind"])
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()

	t.Run("Human", func(t *testing.T) {
		path := filepath.Join(dir, "report.txt")
		require.NoError(t, WriteReport(sampleReport(), path, "human"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Run ID: run-1")
		assert.Contains(t, string(data), "/raw/IMG_0001.CR2 -> /out/IMG_0001.CR2")
		assert.Contains(t, string(data), "/raw/IMG_0002.CR2: permission denied")
		assert.Contains(t, string(data), "No RAW file (1)")
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		require.NoError(t, WriteReport(sampleReport(), path, "json"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc JSONReportData
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "run-1", doc.OperationID)
		assert.Empty(t, doc.Events)
	})

	t.Run("BadPath", func(t *testing.T) {
		assert.Error(t, WriteReport(sampleReport(), filepath.Join(dir, "missing", "r.txt"), "human"))
	})
}
