// Command comparejson compares two playlist JSON exports by exact track
// identifier and writes found / only-in partitions as JSON and text
// reports, plus a batch outcome report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/baditaflorin/go_music_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_music_similarity/internal/batch"
	"github.com/baditaflorin/go_music_similarity/internal/playlist"
	"github.com/baditaflorin/go_music_similarity/internal/ports"
	"github.com/baditaflorin/go_music_similarity/internal/progress"
)

const (
	foundFromFirstFile  = "found_from_first_file.json"
	foundFromSecondFile = "found_from_second_file.json"
	onlyInFirstFile     = "only_in_first_file.json"
	onlyInSecondFile    = "only_in_second_file.json"

	foundFromFirstList  = "found_from_first_file.log"
	foundFromSecondList = "found_from_second_file.log"
	onlyInFirstList     = "only_in_first_file.log"
	onlyInSecondList    = "only_in_second_file.log"

	foundFromFirstCSV  = "found_from_first_file.csv"
	foundFromSecondCSV = "found_from_second_file.csv"
	onlyInFirstCSV     = "only_in_first_file.csv"
	onlyInSecondCSV    = "only_in_second_file.csv"
)

func main() {
	first := flag.String("first", "", "path to the first playlist JSON file")
	second := flag.String("second", "", "path to the second playlist JSON file")
	reportDir := flag.String("report-dir", "compare_report", "directory for report files")
	flag.Parse()

	if *first == "" || *second == "" {
		fmt.Fprintln(os.Stderr, "usage: comparejson -first <file> -second <file> [-report-dir <dir>]")
		os.Exit(2)
	}

	log, err := logger.NewStdLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	start := time.Now()
	log.Info("Comparison started", "first", *first, "second", *second)

	if err := run(log, *first, *second, *reportDir); err != nil {
		log.Error("Comparison failed", "error", err)
		os.Exit(1)
	}

	log.Info("Comparison finished", "duration", progress.FormatDuration(time.Since(start)))
}

func run(log ports.Logger, first, second, reportDir string) error {
	store := playlist.NewStore(log)

	firstTracks, err := store.Load(first, false)
	if err != nil {
		return err
	}
	secondTracks, err := store.Load(second, false)
	if err != nil {
		return err
	}

	recorder := batch.NewRecorder("compare_json", map[string]interface{}{
		"first_file":   first,
		"second_file":  second,
		"first_count":  len(firstTracks),
		"second_count": len(secondTracks),
	})

	bar := progress.NewBar(os.Stderr, len(firstTracks)+len(secondTracks))
	diff := playlist.Compare(firstTracks, secondTracks, bar.Increment)
	bar.Finish()

	partitions := []struct {
		tracks   []playlist.Track
		jsonName string
		listName string
		csvName  string
		appendTo bool
	}{
		{diff.FoundInFirst, foundFromFirstFile, foundFromFirstList, foundFromFirstCSV, true},
		{diff.FoundInSecond, foundFromSecondFile, foundFromSecondList, foundFromSecondCSV, true},
		{diff.OnlyInFirst, onlyInFirstFile, onlyInFirstList, onlyInFirstCSV, false},
		{diff.OnlyInSecond, onlyInSecondFile, onlyInSecondList, onlyInSecondCSV, false},
	}
	for _, p := range partitions {
		if len(p.tracks) == 0 {
			continue
		}
		if _, err := store.Save(p.tracks, p.jsonName, reportDir, p.appendTo); err != nil {
			recorder.AddFailed(batch.Item{"file": p.jsonName}, err.Error())
			continue
		}
		if _, err := store.SaveList(p.tracks, p.listName, reportDir); err != nil {
			recorder.AddPartial(batch.Item{"file": p.listName}, err.Error())
			continue
		}
		if err := saveCSV(p.tracks, filepath.Join(reportDir, p.csvName), log); err != nil {
			recorder.AddPartial(batch.Item{"file": p.csvName}, err.Error())
			continue
		}
		recorder.AddSuccess(batch.Item{"file": p.jsonName, "count": len(p.tracks)})
	}

	log.Info("Partition sizes",
		"found_from_first", len(diff.FoundInFirst),
		"found_from_second", len(diff.FoundInSecond),
		"only_in_first", len(diff.OnlyInFirst),
		"only_in_second", len(diff.OnlyInSecond),
	)

	result := recorder.Finalize()
	writer, err := batch.NewWriter(reportDir, log)
	if err != nil {
		return err
	}
	if _, err := writer.WriteJSON(result); err != nil {
		return err
	}
	if _, err := writer.WriteText(result, true); err != nil {
		return err
	}
	fmt.Print(result.Summary(false))
	return nil
}

func saveCSV(tracks []playlist.Track, path string, log ports.Logger) error {
	w, err := playlist.NewCSVWriter(path, playlist.TrackCSVHeader, log)
	if err != nil {
		return err
	}
	for _, t := range tracks {
		if err := w.AppendTrack(t); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
