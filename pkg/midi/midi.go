// Package midi shapes decoded Standard MIDI Files into the track and note
// views the piano-roll visualizer consumes. Decoding itself is done by
// gitlab.com/gomidi/midi/v2.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// Default pitch range reported for a file without notes (C4..C5).
const (
	DefaultLowPitch  = 60
	DefaultHighPitch = 72
)

// Note is a sounding note. Times are in seconds.
type Note struct {
	Pitch    int     `json:"pitch" yaml:"pitch"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Velocity int     `json:"velocity" yaml:"velocity"` // 0-127
	Channel  int     `json:"channel" yaml:"channel"`
}

// End returns the release time of the note.
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Track is one track of a decoded file.
type Track struct {
	Name       string `json:"name" yaml:"name"`
	Notes      []Note `json:"notes" yaml:"notes"`
	Instrument int    `json:"instrument" yaml:"instrument"`
}

// Info summarises a decoded file.
type Info struct {
	Duration   float64 `json:"duration" yaml:"duration"`
	NoteCount  int     `json:"noteCount" yaml:"noteCount"`
	PitchRange [2]int  `json:"pitchRange" yaml:"pitchRange"`
	TrackCount int     `json:"trackCount" yaml:"trackCount"`
}

// Decode reads a Standard MIDI File and returns its tracks.
func Decode(r io.Reader) ([]Track, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.WrapParse("midi", "", err)
	}
	return tracksOf(s), nil
}

// DecodeBytes decodes an in-memory Standard MIDI File.
func DecodeBytes(data []byte) ([]Track, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeFile decodes the Standard MIDI File at path.
func DecodeFile(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("midi file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	tracks, err := Decode(f)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return tracks, nil
}

// noteKey identifies a sounding note awaiting its release.
type noteKey struct {
	channel, key uint8
}

type pending struct {
	tick     int64
	velocity uint8
}

func tracksOf(s *smf.SMF) []Track {
	tracks := make([]Track, 0, len(s.Tracks))

	for i, tr := range s.Tracks {
		track := Track{Notes: []Note{}}
		open := make(map[noteKey][]pending)
		programSet := false

		var abs int64
		for _, ev := range tr {
			abs += int64(ev.Delta)
			msg := ev.Message

			var name string
			if track.Name == "" && msg.GetMetaTrackName(&name) {
				track.Name = name
				continue
			}

			var channel, key, velocity, program uint8
			switch {
			case gomidi.Message(msg).GetNoteStart(&channel, &key, &velocity):
				k := noteKey{channel, key}
				open[k] = append(open[k], pending{tick: abs, velocity: velocity})
			case gomidi.Message(msg).GetNoteEnd(&channel, &key):
				k := noteKey{channel, key}
				stack := open[k]
				if len(stack) == 0 {
					continue
				}
				// First in, first out for repeated keys.
				p := stack[0]
				open[k] = stack[1:]
				track.Notes = append(track.Notes, newNote(s, k, p, abs))
			case !programSet && gomidi.Message(msg).GetProgramChange(&channel, &program):
				track.Instrument = int(program)
				programSet = true
			}
		}

		// Notes still sounding at the end of the track end with it.
		for k, stack := range open {
			for _, p := range stack {
				track.Notes = append(track.Notes, newNote(s, k, p, abs))
			}
		}

		slices.SortStableFunc(track.Notes, func(a, b Note) int {
			if a.Start != b.Start {
				if a.Start < b.Start {
					return -1
				}
				return 1
			}
			return a.Pitch - b.Pitch
		})

		if track.Name == "" {
			track.Name = fmt.Sprintf("Track %d", i+1)
		}
		tracks = append(tracks, track)
	}

	return tracks
}

func newNote(s *smf.SMF, k noteKey, p pending, endTick int64) Note {
	start := seconds(s.TimeAt(p.tick))
	end := seconds(s.TimeAt(endTick))
	return Note{
		Pitch:    int(k.key),
		Start:    start,
		Duration: end - start,
		Velocity: int(p.velocity),
		Channel:  int(k.channel),
	}
}

func seconds(microseconds int64) float64 {
	return float64(microseconds) / 1e6
}

// Summarize computes file-level statistics over tracks.
func Summarize(tracks []Track) Info {
	info := Info{
		PitchRange: [2]int{DefaultLowPitch, DefaultHighPitch},
		TrackCount: len(tracks),
	}

	low, high := math.MaxInt, math.MinInt
	for _, tr := range tracks {
		for _, n := range tr.Notes {
			info.NoteCount++
			info.Duration = max(info.Duration, n.End())
			low = min(low, n.Pitch)
			high = max(high, n.Pitch)
		}
	}
	if info.NoteCount > 0 {
		info.PitchRange = [2]int{low, high}
	}
	return info
}

// NotesInRange returns every note sounding at some point in [start, end),
// in track order.
func NotesInRange(tracks []Track, start, end float64) []Note {
	notes := []Note{}
	for _, tr := range tracks {
		for _, n := range tr.Notes {
			if n.Start < end && n.End() > start {
				notes = append(notes, n)
			}
		}
	}
	return notes
}
