// Command similarity compares two free-text metadata strings and prints
// the match decision and score.
//
// Usage:
//
//	similarity [-threshold 0.85] "first string" "second string"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	musicsimilarity "github.com/baditaflorin/go_music_similarity"
)

func main() {
	threshold := flag.Float64("threshold", musicsimilarity.DefaultThreshold, "similarity threshold")
	verbose := flag.Bool("verbose", false, "print canonical forms and per-metric details")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: similarity [-threshold 0.85] [-verbose] <string1> <string2>")
		os.Exit(2)
	}

	engine, err := musicsimilarity.New(
		musicsimilarity.WithThreshold(*threshold),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res := engine.Similar(context.Background(), flag.Arg(0), flag.Arg(1))

	fmt.Printf("similar: %v (score: %.3f, threshold: %.2f)\n", res.IsMatch, res.Score, res.Threshold)
	if *verbose {
		fmt.Printf("canonical A: %q\n", res.CanonicalA)
		fmt.Printf("canonical B: %q\n", res.CanonicalB)
		for k, v := range res.Details {
			fmt.Printf("%s: %v\n", k, v)
		}
	}
}
