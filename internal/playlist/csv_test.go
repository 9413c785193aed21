package playlist

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.csv")
	first, _ := sampleTracks()

	w, err := NewCSVWriter(path, TrackCSVHeader, noopLogger{})
	require.NoError(t, err)
	for _, track := range first {
		require.NoError(t, w.AppendTrack(track))
	}
	require.NoError(t, w.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, len(first)+1)
	assert.Equal(t, TrackCSVHeader, rows[0])
	assert.Equal(t, []string{"1", "Imagine", "John Lennon", "Imagine"}, rows[1])
}

func TestCSVWriterCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")

	w, err := NewCSVWriter(path, []string{"a", "b"}, noopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Append([]string{"1", "2"}))
	require.NoError(t, w.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestCSVWriterTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,content\n"), 0o644))

	w, err := NewCSVWriter(path, TrackCSVHeader, noopLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, TrackCSVHeader, rows[0])
}

func TestCSVWriterQuotesCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.csv")

	w, err := NewCSVWriter(path, TrackCSVHeader, noopLogger{})
	require.NoError(t, err)
	track := Track{ID: "9", Title: "Hello, Goodbye", Artist: "The Beatles", Album: "Magical Mystery Tour"}
	require.NoError(t, w.AppendTrack(track))
	require.NoError(t, w.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Hello, Goodbye", rows[1][1])
}
