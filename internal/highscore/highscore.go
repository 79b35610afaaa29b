// Package highscore keeps the best results across matches.
package highscore

import (
	"sort"
	"time"
)

// MaxEntries is the length of the high score table.
const MaxEntries = 10

// Entry is one recorded match.
type Entry struct {
	Score        int       `yaml:"score" json:"score" msgpack:"score"`
	Kills        int       `yaml:"kills" json:"kills" msgpack:"kills"`
	TimeSurvived int       `yaml:"time" json:"time" msgpack:"time"` // Seconds
	Date         time.Time `yaml:"date" json:"date" msgpack:"date"`
}

// Store loads and records high scores.
type Store interface {
	// Load returns the table, best first.
	Load() ([]Entry, error)
	// Save records a finished match.
	Save(e Entry) error
}

// Insert returns list with e added, ordered by descending score and cut to
// MaxEntries. Among equal scores earlier entries stay ahead. The input slice
// is not modified.
func Insert(list []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	return normalize(out)
}

// Qualifies reports whether a score would enter the table.
func Qualifies(list []Entry, score int) bool {
	return len(list) < MaxEntries || score > list[len(list)-1].Score
}

func normalize(list []Entry) []Entry {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return list
}
