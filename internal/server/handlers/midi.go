package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/StreamMUSE/streammuse/internal/server/response"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/logging"
	"github.com/StreamMUSE/streammuse/pkg/midi"
)

// MIDIView is the decoded form of one instance file.
type MIDIView struct {
	URL    string       `json:"url"`
	Tracks []midi.Track `json:"tracks"`
	Info   midi.Info    `json:"info"`
	Notes  []midi.Note  `json:"notes,omitempty"`
}

// HandleMIDI handles GET /api/midi?url=<instance url>.
// @Summary Decode an instance file
// @Description Returns tracks and a summary of a catalogued MIDI file. With from and to (seconds), also returns the notes sounding in that window.
// @Tags midi
// @Produce json
// @Param url query string true "Instance midi_url"
// @Param from query number false "Window start in seconds"
// @Param to query number false "Window end in seconds"
// @Success 200 {object} response.Response{data=MIDIView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/midi [get].
func (h *Handlers) HandleMIDI(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	path, err := h.resolveInstance(url)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	tracks, err := midi.DecodeFile(path)
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Str("url", url).Msg("Failed to decode MIDI file")
		response.ErrorFromType(w, err)
		return
	}

	view := MIDIView{
		URL:    url,
		Tracks: tracks,
		Info:   midi.Summarize(tracks),
	}
	if q := r.URL.Query(); q.Has("from") || q.Has("to") {
		from := parseSeconds(q.Get("from"), 0)
		to := parseSeconds(q.Get("to"), view.Info.Duration)
		view.Notes = midi.NotesInRange(tracks, from, to)
	}

	response.OK(w, view)
}

// resolveInstance maps an instance URL to a file under the content root.
// Only .mid files below the URL prefix are reachable.
func (h *Handlers) resolveInstance(url string) (string, error) {
	if url == "" {
		return "", errors.NewValidationError("url", url, "is required")
	}

	prefix := strings.TrimSuffix(h.app.URLPrefix(), "/") + "/"
	rel, ok := strings.CutPrefix(url, prefix)
	if !ok {
		return "", errors.NewValidationError("url", url, "is not an instance url")
	}
	if !strings.HasSuffix(strings.ToLower(rel), constants.MIDIExtension) {
		return "", errors.NewValidationError("url", url, "is not a MIDI file")
	}
	if !filepath.IsLocal(filepath.FromSlash(rel)) || strings.Contains(rel, "\\") {
		return "", errors.NewValidationError("url", url, "escapes the content root")
	}

	return filepath.Join(h.app.ContentRoot(), filepath.FromSlash(rel)), nil
}

func parseSeconds(s string, def float64) float64 {
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return v
	}
	return def
}
