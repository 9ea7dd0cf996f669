package midi

import (
	"math"
	"strconv"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns scientific pitch notation for a MIDI key, so 60 is C4.
// Keys outside 0-127 have no name and return "".
func NoteName(pitch int) string {
	if pitch < 0 || pitch > 127 {
		return ""
	}
	octave := pitch/12 - 1
	return noteNames[pitch%12] + strconv.Itoa(octave)
}

// Frequency returns the equal-tempered frequency of a MIDI key with A4 at 440 Hz.
func Frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// IsBlackKey reports whether a MIDI key falls on a black piano key.
func IsBlackKey(pitch int) bool {
	switch pitch % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
