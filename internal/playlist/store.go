package playlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_music_similarity/internal/ports"
)

var forbiddenFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters not allowed in filenames (Windows
// rules) with underscores.
func SanitizeFilename(name string) string {
	return forbiddenFilenameRe.ReplaceAllString(name, "_")
}

// Store loads and saves track collections as JSON files.
type Store struct {
	logger ports.Logger
}

// NewStore creates a store that logs through the given logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads a track collection from a JSON file. If the file does not
// exist and createIfMissing is set, an empty file is created first.
func (s *Store) Load(path string, createIfMissing bool) ([]Track, error) {
	dir := filepath.Dir(path)
	if createIfMissing {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create directory %s: %w", dir, err)
			}
			s.logger.Warn("Directory created", "dir", dir)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !createIfMissing {
			s.logger.Warn("File not found", "path", path)
			return nil, nil
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		s.logger.Warn("File not found, created a new empty JSON file", "path", path)
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.logger.Debug("Loaded tracks", "path", path, "count", len(tracks))
	return tracks, nil
}

// Save writes a track collection to filename under outputDir (created on
// demand). With appendExisting set, tracks are appended to whatever the
// file already holds.
func (s *Store) Save(tracks []Track, filename, outputDir string, appendExisting bool) (string, error) {
	path, err := resolvePath(SanitizeFilename(filename), outputDir)
	if err != nil {
		return "", err
	}

	if appendExisting {
		if existing, err := os.ReadFile(path); err == nil {
			var prior []Track
			if err := json.Unmarshal(existing, &prior); err != nil {
				s.logger.Warn("Existing file contains invalid JSON, overwriting", "path", path)
			} else {
				tracks = append(prior, tracks...)
			}
		}
	}

	data, err := json.MarshalIndent(tracks, "", "    ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("Tracks saved", "path", path, "count", len(tracks))
	return path, nil
}

// SaveList writes one "title, artist, album" line per track, mirroring the
// plain-text companion reports.
func (s *Store) SaveList(tracks []Track, filename, outputDir string) (string, error) {
	path, err := resolvePath(SanitizeFilename(filename), outputDir)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, t := range tracks {
		fmt.Fprintf(&sb, "%s, %s, %s\n", t.Title, t.Artist, t.Album)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Info("Track list saved", "path", path, "count", len(tracks))
	return path, nil
}

func resolvePath(filename, outputDir string) (string, error) {
	if outputDir == "" {
		return filename, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, filename), nil
}
