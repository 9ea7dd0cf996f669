package output

import (
	"io"

	"github.com/StreamMUSE/streammuse/internal/cmd/table"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/midi"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// FormatGroups writes card groups as a table, or as raw groups for
// machine-readable formats.
func FormatGroups(w io.Writer, groups []catalogs.CardGroup, format Format) error {
	var data any = groups
	if format.IsTable() {
		data = table.GroupsToTableData(groups, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatTracks writes decoded tracks as a summary table, or with every
// note for machine-readable formats.
func FormatTracks(w io.Writer, tracks []midi.Track, info midi.Info, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.TracksToTableData(tracks))
	}
	return NewFormatter(format).Format(w, map[string]any{
		"tracks": tracks,
		"info":   info,
	})
}

// FormatRankings writes the leaderboard.
func FormatRankings(w io.Writer, entries []rankings.Entry, format Format) error {
	var data any = entries
	if format.IsTable() {
		data = table.RankingsToTableData(entries)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatAny writes arbitrary data.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
