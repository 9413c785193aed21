// Package playlist holds the structured track records exchanged with
// external collections and the exact-identifier set comparison used by the
// batch tools. The similarity engine is a natural extension point for the
// partition but is deliberately not part of it.
package playlist

// Track is one structured record from an exported playlist.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// Diff holds the four partitions produced by comparing two collections.
type Diff struct {
	FoundInFirst  []Track
	FoundInSecond []Track
	OnlyInFirst   []Track
	OnlyInSecond  []Track
}

// Compare partitions two collections by exact-identifier equality. The
// optional tick callback is invoked once per processed record, letting
// callers drive a progress display.
func Compare(first, second []Track, tick func()) Diff {
	var d Diff

	index := make(map[string]struct{}, len(second))
	for _, t := range second {
		index[t.ID] = struct{}{}
	}
	for _, t := range first {
		if _, ok := index[t.ID]; ok {
			d.FoundInFirst = append(d.FoundInFirst, t)
		} else {
			d.OnlyInFirst = append(d.OnlyInFirst, t)
		}
		if tick != nil {
			tick()
		}
	}

	index = make(map[string]struct{}, len(first))
	for _, t := range first {
		index[t.ID] = struct{}{}
	}
	for _, t := range second {
		if _, ok := index[t.ID]; ok {
			d.FoundInSecond = append(d.FoundInSecond, t)
		} else {
			d.OnlyInSecond = append(d.OnlyInSecond, t)
		}
		if tick != nil {
			tick()
		}
	}

	return d
}

// Reverse returns the tracks in reverse order without modifying the input.
func Reverse(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[len(tracks)-1-i] = t
	}
	return out
}
