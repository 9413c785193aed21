package playlist

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

// TrackCSVHeader is the column order used for track CSV exports.
var TrackCSVHeader = []string{"id", "title", "artist", "album"}

// CSVWriter writes rows to a CSV file that is initialized once with a
// header and then appended to row by row.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	logger ports.Logger
	path   string
}

// NewCSVWriter creates the file at path (truncating any previous content),
// writes the header and returns a writer ready for appends. The parent
// directory is created on demand.
func NewCSVWriter(path string, header []string, logger ports.Logger) (*CSVWriter, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
		logger.Warn("Directory created", "dir", dir)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header to %s: %w", path, err)
	}

	logger.Debug("CSV file initialized", "path", path, "columns", len(header))
	return &CSVWriter{file: f, writer: w, logger: logger, path: path}, nil
}

// Append writes one record and flushes it to disk.
func (w *CSVWriter) Append(record []string) error {
	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("append to %s: %w", w.path, err)
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("append to %s: %w", w.path, err)
	}
	return nil
}

// AppendTrack writes one track using the TrackCSVHeader column order.
func (w *CSVWriter) AppendTrack(t Track) error {
	return w.Append([]string{t.ID, t.Title, t.Artist, t.Album})
}

// Close flushes pending rows and closes the file.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	err := w.writer.Error()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}
	w.logger.Debug("CSV file closed", "path", w.path)
	return nil
}
