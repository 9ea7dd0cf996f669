// Package filename implements the naming grammar of generated MIDI files.
//
// A conforming leaf name carries, in order:
//
//	<mode prefix>_tem_<temperature>_prompt_<prompt id>_<prompt length>_input_<input id>_<generation length>_<version>.mid
//
// for example offline_tem_1.0_prompt_001_100t_input_002_200t_v1.mid. The
// identifier, length and version tokens are word tokens ([A-Za-z0-9_]+) and
// the temperature is a decimal number such as 1, 1.0 or 0.85. Anything else
// is rejected as a whole.
package filename

import (
	"regexp"
	"strconv"

	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// pattern is anchored on the extension; the leading mode prefix is free-form.
var pattern = regexp.MustCompile(`_tem_([\d.]+)_prompt_(\w+)_(\w+)_input_(\w+)_(\w+)_(\w+)\.mid$`)

// Parsed is the structured content of a conforming filename.
type Parsed struct {
	Temperature      float64
	PromptFile       string
	PromptLength     string
	InputFile        string
	GenerationLength string
	Version          string
}

// Parse matches name against the grammar. A non-conforming name yields a
// *errors.GrammarError and a zero Parsed.
func Parse(name string) (Parsed, error) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return Parsed{}, errors.NewGrammarError(name, "")
	}

	temperature, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Parsed{}, errors.NewGrammarError(name, "temperature "+strconv.Quote(m[1])+" is not a decimal number")
	}

	return Parsed{
		Temperature:      temperature,
		PromptFile:       m[2],
		PromptLength:     m[3],
		InputFile:        m[4],
		GenerationLength: m[5],
		Version:          m[6],
	}, nil
}

// Matches reports whether name follows the grammar.
func Matches(name string) bool {
	_, err := Parse(name)
	return err == nil
}

// FormatParameters turns a raw parameter-count token into its display form
// by placing a decimal point after the first character ("025b" -> "0.25b").
// It assumes a single leading digit; "125b" becomes "1.25b", never "12.5b".
func FormatParameters(raw string) string {
	if raw == "" {
		return ""
	}
	return raw[:1] + "." + raw[1:]
}
