// Command reversejson reverses the track order of a playlist JSON export.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_music_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_music_similarity/internal/playlist"
)

func main() {
	input := flag.String("input", "", "path to the playlist JSON file")
	output := flag.String("output", "", "output path (default: overwrite the input file)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: reversejson -input <file> [-output <file>]")
		os.Exit(2)
	}
	if *output == "" {
		*output = *input
	}

	log, err := logger.NewStdLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	store := playlist.NewStore(log)
	tracks, err := store.Load(*input, false)
	if err != nil {
		log.Error("Load failed", "path", *input, "error", err)
		os.Exit(1)
	}

	reversed := playlist.Reverse(tracks)
	if _, err := store.Save(reversed, filepath.Base(*output), filepath.Dir(*output), false); err != nil {
		log.Error("Save failed", "path", *output, "error", err)
		os.Exit(1)
	}
	log.Info("Playlist reversed", "input", *input, "output", *output, "count", len(reversed))
}
