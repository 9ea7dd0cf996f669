package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/StreamMUSE/streammuse/cmd/application"
	"github.com/StreamMUSE/streammuse/internal/catalogs/builder"
	"github.com/StreamMUSE/streammuse/internal/catalogs/store"
	"github.com/StreamMUSE/streammuse/internal/votes"
	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

const (
	leafDir    = "modelX/025b/pop909/offline"
	sampleFile = leafDir + "/offline_tem_0.8_prompt_000_100t_input_002_200t_v1.mid"
)

// envelope mirrors the API response shape for decoding in tests.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total   int  `json:"total"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
		HasMore bool `json:"hasMore"`
	} `json:"pagination"`
	Meta    map[string]any `json:"meta"`
	Message string         `json:"message"`
	Error   string         `json:"error"`
}

type fixture struct {
	root    string
	url     string
	server  *Server
	votes   *logging.TestLogger
	catalog application.Catalog
}

// midiBytes is a one-note file at 120 BPM lasting one second.
func midiBytes(t *testing.T) []byte {
	t.Helper()

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(960, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

// writeContent lays out n groups under one leaf directory, each with a
// single instance. Only the first file holds real MIDI data.
func writeContent(t *testing.T, n int) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(leafDir)), 0o755))

	for i := range n {
		name := fmt.Sprintf("offline_tem_0.8_prompt_%03d_100t_input_002_200t_v1.mid", i)
		data := []byte("not midi")
		if i == 0 {
			data = midiBytes(t)
		}
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(leafDir), name), data, 0o644))
	}
	return root
}

func newFixture(t *testing.T, groups int, mutate func(*Config)) *fixture {
	t.Helper()

	root := writeContent(t, groups)
	indexPath := filepath.Join(t.TempDir(), "audio_catalog.json")

	b := builder.New(builder.WithLogger(logging.NewNopLogger()))
	_, err := b.BuildIndex(context.Background(), root, indexPath)
	require.NoError(t, err)

	return newFixtureWithCatalog(t, root, store.NewFileStore(indexPath, store.WithLogger(logging.NewNopLogger())), mutate)
}

func newFixtureWithCatalog(t *testing.T, root string, cat application.Catalog, mutate func(*Config)) *fixture {
	t.Helper()

	voteLog := logging.NewTestLogger(t)
	app := &application.Mock{
		CatalogFunc:     func() application.Catalog { return cat },
		VotesFunc:       func() *votes.Recorder { return votes.NewRecorder(votes.WithLogger(voteLog.Logger)) },
		ContentRootFunc: func() string { return root },
	}

	cfg := DefaultConfig()
	cfg.RateLimit = 0
	if mutate != nil {
		mutate(&cfg)
	}

	srv, err := New(app, cfg)
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &fixture{root: root, url: ts.URL, server: srv, votes: voteLog, catalog: cat}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, envelope) {
	t.Helper()
	resp, err := http.Get(f.url + path)
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func (f *fixture) post(t *testing.T, path, body string, header map[string]string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, f.url+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func groupsOf(t *testing.T, env envelope) []catalogs.CardGroup {
	t.Helper()
	var groups []catalogs.CardGroup
	require.NoError(t, json.Unmarshal(env.Data, &groups))
	return groups
}

func TestListAudio(t *testing.T) {
	f := newFixture(t, 3, nil)

	resp, env := f.get(t, "/api/audio")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Total)
	assert.Equal(t, 48, env.Pagination.Limit)
	assert.Equal(t, 0, env.Pagination.Offset)
	assert.False(t, env.Pagination.HasMore)

	groups := groupsOf(t, env)
	require.Len(t, groups, 3)
	assert.Equal(t, "modelX-0.25b-pop909-offline-000-100t-002-200t", groups[0].GroupID)
	assert.Equal(t, "/audio/"+sampleFile, groups[0].Instances[0].URL)
}

func TestListAudioNoMatches(t *testing.T) {
	f := newFixture(t, 3, nil)

	_, env := f.get(t, "/api/audio?model_parameters=0.5b")
	assert.True(t, env.Success)
	assert.Equal(t, 0, env.Pagination.Total)
	assert.False(t, env.Pagination.HasMore)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestListAudioPagination(t *testing.T) {
	f := newFixture(t, 25, nil)

	_, first := f.get(t, "/api/audio?limit=10&offset=0")
	assert.Len(t, groupsOf(t, first), 10)
	assert.Equal(t, 25, first.Pagination.Total)
	assert.True(t, first.Pagination.HasMore)

	_, last := f.get(t, "/api/audio?limit=10&offset=20")
	assert.Len(t, groupsOf(t, last), 5)
	assert.False(t, last.Pagination.HasMore)

	_, beyond := f.get(t, "/api/audio?limit=10&offset=30")
	assert.Empty(t, groupsOf(t, beyond))
	assert.False(t, beyond.Pagination.HasMore)

	resp, huge := f.get(t, "/api/audio?limit=9223372036854775807&offset=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, huge.Success)
	assert.Len(t, groupsOf(t, huge), 24)
	assert.False(t, huge.Pagination.HasMore)

	// Walking every page reproduces the full listing in order.
	_, all := f.get(t, "/api/audio?limit=100")
	var walked []catalogs.CardGroup
	for offset := 0; ; offset += 7 {
		_, page := f.get(t, fmt.Sprintf("/api/audio?limit=7&offset=%d", offset))
		walked = append(walked, groupsOf(t, page)...)
		if !page.Pagination.HasMore {
			break
		}
	}
	assert.Equal(t, groupsOf(t, all), walked)
}

func TestListAudioFilters(t *testing.T) {
	f := newFixture(t, 12, nil)

	tests := []struct {
		name  string
		query url.Values
		want  int
	}{
		{"all sentinel", url.Values{"model_architecture": {"all"}, "inference_mode": {"all"}}, 12},
		{"matching axis", url.Values{"model_architecture": {"modelX"}, "model_parameters": {"0.25b"}}, 12},
		{"case-sensitive axis", url.Values{"model_architecture": {"MODELX"}}, 0},
		{"search matches filenames", url.Values{"search": {"PROMPT"}}, 12},
		{"search by group id", url.Values{"search": {"-010-100T"}}, 1},
		{"search by filename", url.Values{"search": {"prompt_011_"}}, 1},
		{"malformed limit falls back", url.Values{"limit": {"ten"}}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := f.get(t, "/api/audio?"+tt.query.Encode())
			assert.Equal(t, tt.want, env.Pagination.Total)
		})
	}
}

func TestListAudioCached(t *testing.T) {
	f := newFixture(t, 2, nil)

	f.get(t, "/api/audio?limit=1")
	f.get(t, "/api/audio?limit=1")

	stats := f.server.Cache().GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, 1, stats.ItemCount)
}

func TestListAudioUnreadableIndex(t *testing.T) {
	cat := store.NewFileStore(filepath.Join(t.TempDir(), "missing.json"), store.WithLogger(logging.NewNopLogger()))
	f := newFixtureWithCatalog(t, t.TempDir(), cat, nil)

	resp, env := f.get(t, "/api/audio")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Pagination.Total)
	assert.Equal(t, 0, f.server.Cache().ItemCount(), "degraded results are not cached")

	resp, env = f.get(t, "/api/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, env.Success)
}

type panickingCatalog struct{}

func (panickingCatalog) Load(context.Context) []catalogs.CardGroup { panic("catalog exploded") }
func (panickingCatalog) Loaded() bool                              { return false }
func (panickingCatalog) Len() int                                  { return 0 }

func TestInternalErrorBody(t *testing.T) {
	f := newFixtureWithCatalog(t, t.TempDir(), panickingCatalog{}, nil)

	resp, err := http.Get(f.url + "/api/audio")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, string(body))
}

func TestGetGroup(t *testing.T) {
	f := newFixture(t, 2, nil)

	resp, env := f.get(t, "/api/audio/modelX-0.25b-pop909-offline-001-100t-002-200t")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var g catalogs.CardGroup
	require.NoError(t, json.Unmarshal(env.Data, &g))
	assert.Equal(t, "modelX-0.25b-pop909-offline-001-100t-002-200t", g.GroupID)

	resp, env = f.get(t, "/api/audio/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestRecordVote(t *testing.T) {
	f := newFixture(t, 1, nil)

	body := `{"audio_a_id":"audio_1","audio_b_id":"audio_2","winner":"audio_1","comparison_type":"blind","user_id":"u-7"}`
	resp, env := f.post(t, "/api/audio", body, map[string]string{"X-Request-ID": "req-99"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Vote recorded successfully", env.Message)
	assert.Equal(t, "req-99", resp.Header.Get("X-Request-ID"))

	f.votes.AssertContains(t, "New comparison result")
	f.votes.AssertContains(t, `"request_id":"req-99"`)
	f.votes.AssertContains(t, `"winner":"audio_1"`)
	f.votes.AssertContains(t, `"user_id":"u-7"`)
}

func TestRecordVoteMalformed(t *testing.T) {
	f := newFixture(t, 1, nil)

	resp, env := f.post(t, "/api/audio", `{"audio_a_id":`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to record vote", env.Error)
	assert.Equal(t, 0, f.votes.Count())
}

func TestRecordVoteAuth(t *testing.T) {
	f := newFixture(t, 1, func(c *Config) {
		c.AuthEnabled = true
		c.APIKey = "secret"
	})
	body := `{"audio_a_id":"a","audio_b_id":"b","winner":"a","comparison_type":"blind"}`

	resp, _ := f.post(t, "/api/audio", body, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.post(t, "/api/audio", body, map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.get(t, "/api/audio")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads stay public")
}

func TestRankings(t *testing.T) {
	f := newFixture(t, 1, nil)

	resp, env := f.get(t, "/api/rankings")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, float64(1818), env.Meta["total_comparisons"])
	assert.NotEmpty(t, env.Meta["last_updated"])

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Len(t, entries, 9)
}

func TestMIDI(t *testing.T) {
	f := newFixture(t, 2, nil)

	resp, env := f.get(t, "/api/midi?url="+url.QueryEscape("/audio/"+sampleFile))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Tracks []struct {
			Name  string           `json:"name"`
			Notes []map[string]any `json:"notes"`
		} `json:"tracks"`
		Info struct {
			NoteCount  int    `json:"noteCount"`
			PitchRange [2]int `json:"pitchRange"`
		} `json:"info"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Tracks, 1)
	assert.Equal(t, "Track 1", view.Tracks[0].Name)
	assert.Equal(t, 1, view.Info.NoteCount)
	assert.Equal(t, [2]int{60, 60}, view.Info.PitchRange)
}

func TestMIDIRejected(t *testing.T) {
	f := newFixture(t, 2, nil)

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing", "", http.StatusBadRequest},
		{"outside prefix", "/etc/passwd.mid", http.StatusBadRequest},
		{"traversal", "/audio/../../secret.mid", http.StatusBadRequest},
		{"not midi", "/audio/" + leafDir + "/notes.txt", http.StatusBadRequest},
		{"absent file", "/audio/" + leafDir + "/absent.mid", http.StatusNotFound},
		{"undecodable", "/audio/" + leafDir + "/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := f.get(t, "/api/midi?url="+url.QueryEscape(tt.url))
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.False(t, env.Success)
		})
	}
}

func TestStaticInstances(t *testing.T) {
	f := newFixture(t, 1, nil)

	resp, err := http.Get(f.url + "/audio/" + sampleFile)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, midiBytes(t), body)
}

func TestHealthAndReady(t *testing.T) {
	f := newFixture(t, 4, nil)

	resp, env := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = f.get(t, "/api/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ready struct {
		Catalog struct {
			Groups int `json:"groups"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ready))
	assert.Equal(t, 4, ready.Catalog.Groups)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, 1, nil)

	req, err := http.NewRequest(http.MethodDelete, f.url+"/api/audio", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	env := decode(t, resp)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestHeadOnReadEndpoints(t *testing.T) {
	f := newFixture(t, 1, nil)

	paths := []string{
		"/api/audio",
		"/api/audio/modelX-0.25b-pop909-offline-000-100t-002-200t",
		"/api/rankings",
		"/api/stats",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Head(f.url + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, 1, nil)
	f.get(t, "/api/audio")

	resp, err := http.Get(f.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "streammuse_http_requests_total")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cat := store.New(nil)
	app := &application.Mock{CatalogFunc: func() application.Catalog { return cat }}

	cfg := DefaultConfig()
	cfg.AuthEnabled = true
	_, err := New(app, cfg)
	assert.Error(t, err, "auth without a key")

	cfg = DefaultConfig()
	cfg.PathPrefix = ""
	_, err = New(app, cfg)
	assert.Error(t, err, "static mount collides with the audio API")

	cdn := &application.Mock{
		CatalogFunc:   func() application.Catalog { return cat },
		URLPrefixFunc: func() string { return "https://cdn.example.com/audio" },
	}
	_, err = New(cdn, DefaultConfig())
	assert.Error(t, err, "static mount under an absolute URL")

	cfg = DefaultConfig()
	cfg.StaticEnabled = false
	_, err = New(cdn, cfg)
	assert.NoError(t, err, "absolute URL without static serving")

	_, err = New(&application.Mock{}, DefaultConfig())
	assert.Error(t, err, "no catalog")
}

func TestShutdownStopsBackgroundServices(t *testing.T) {
	cat := store.New(nil)
	app := &application.Mock{CatalogFunc: func() application.Catalog { return cat }}

	srv, err := New(app, DefaultConfig())
	require.NoError(t, err)
	srv.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
