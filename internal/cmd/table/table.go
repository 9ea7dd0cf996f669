// Package table converts catalog data into rows for tabular CLI output.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/midi"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// GroupsToTableData converts card groups to table format. Wide output adds
// the prompt and input axes.
func GroupsToTableData(groups []catalogs.CardGroup, wide bool) Data {
	headers := []string{"Group", "Model", "Params", "Dataset", "Mode", "Temperatures", "Versions"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Prompt", "Input", "Instances")
		align = append(align, AlignLeft, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		m := g.SharedMetadata
		row := []string{
			g.GroupID,
			catalogs.ModelDisplayName(m.ModelArchitecture),
			catalogs.ParametersDisplayName(m.ModelParameters),
			catalogs.DatasetDisplayName(m.TrainingDataset),
			catalogs.ModeDisplayName(m.InferenceMode),
			joinFloats(g.AvailableTemperatures),
			strings.Join(g.AvailableVersions, ", "),
		}
		if wide {
			row = append(row,
				m.PromptFile+" ("+m.PromptLength+")",
				m.InputFile+" ("+m.GenerationLength+")",
				strconv.Itoa(len(g.Instances)),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// TracksToTableData converts decoded tracks to table format.
func TracksToTableData(tracks []midi.Track) Data {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		low, high := "-", "-"
		if len(t.Notes) > 0 {
			info := midi.Summarize([]midi.Track{t})
			low = midi.NoteName(info.PitchRange[0])
			high = midi.NoteName(info.PitchRange[1])
		}
		rows = append(rows, []string{
			t.Name,
			strconv.Itoa(t.Instrument),
			strconv.Itoa(len(t.Notes)),
			low,
			high,
		})
	}

	return Data{
		Headers:         []string{"Track", "Program", "Notes", "Lowest", "Highest"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
}

// RankingsToTableData converts leaderboard entries to table format.
func RankingsToTableData(entries []rankings.Entry) Data {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.ModelName,
			e.Parameters,
			strconv.Itoa(e.EloRating),
			fmt.Sprintf("%d-%d", e.ConfidenceInterval[0], e.ConfidenceInterval[1]),
			strconv.Itoa(e.TotalVotes),
			fmt.Sprintf("%.0f%%", e.WinRate*100),
		})
	}

	return Data{
		Headers:         []string{"Rank", "Model", "Params", "Elo", "95% CI", "Votes", "Win Rate"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
