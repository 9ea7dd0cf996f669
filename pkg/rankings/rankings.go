// Package rankings holds the published model leaderboard.
//
// The figures are curated offline and shipped with the binary; recorded
// votes do not feed back into them.
package rankings

import (
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
)

// Entry is one leaderboard row.
type Entry struct {
	ID                 string  `json:"id" yaml:"id"`
	ModelName          string  `json:"model_name" yaml:"model_name"`
	Parameters         string  `json:"parameters" yaml:"parameters"`
	EloRating          int     `json:"elo_rating" yaml:"elo_rating"`
	TotalVotes         int     `json:"total_votes" yaml:"total_votes"`
	WinRate            float64 `json:"win_rate" yaml:"win_rate"`
	ConfidenceInterval [2]int  `json:"confidence_interval" yaml:"confidence_interval"`
}

func entry(model catalogs.ModelArchitecture, params, id string, elo, votes int, winRate float64, lo, hi int) Entry {
	return Entry{
		ID:                 id,
		ModelName:          catalogs.ModelDisplayName(string(model)),
		Parameters:         params,
		EloRating:          elo,
		TotalVotes:         votes,
		WinRate:            winRate,
		ConfidenceInterval: [2]int{lo, hi},
	}
}

var leaderboard = []Entry{
	entry(catalogs.ModelXinyueNew, "0.5B", "xinyue_new_05b", 1658, 234, 0.67, 1620, 1696),
	entry(catalogs.ModelXinyueNewChord, "0.5B", "xinyue_new_chord_05b", 1624, 189, 0.63, 1580, 1668),
	entry(catalogs.ModelXinyueNew, "0.25B", "xinyue_new_025b", 1545, 312, 0.58, 1510, 1580),
	entry(catalogs.ModelXinyueNewChord, "0.25B", "xinyue_new_chord_025b", 1523, 278, 0.55, 1485, 1561),
	entry(catalogs.ModelXinyueOld, "0.5B", "xinyue_old_05b", 1489, 156, 0.52, 1445, 1533),
	entry(catalogs.ModelXinyueNew, "0.12B", "xinyue_new_012b", 1467, 203, 0.49, 1425, 1509),
	entry(catalogs.ModelXinyueOld, "0.25B", "xinyue_old_025b", 1445, 167, 0.47, 1400, 1490),
	entry(catalogs.ModelXinyueNewChord, "0.12B", "xinyue_new_chord_012b", 1423, 145, 0.45, 1375, 1471),
	entry(catalogs.ModelXinyueOld, "0.12B", "xinyue_old_012b", 1389, 134, 0.42, 1340, 1438),
}

// All returns the leaderboard ordered by rating, highest first. The slice
// is a copy.
func All() []Entry {
	out := make([]Entry, len(leaderboard))
	copy(out, leaderboard)
	return out
}

// TotalVotes sums the vote counts of every entry.
func TotalVotes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.TotalVotes
	}
	return total
}

// Find returns the entry with the given id.
func Find(id string) (Entry, bool) {
	for _, e := range leaderboard {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
