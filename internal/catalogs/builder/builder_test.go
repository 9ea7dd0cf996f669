package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

const leafDir = "modelX/025b/pop909/offline"

var fixedClock = func() time.Time {
	return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
}

// writeTree creates empty files at the given slash-separated paths under a
// fresh temporary root.
func writeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("MThd"), 0o644))
	}
	return root
}

func newTestBuilder(t *testing.T) (*Builder, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	return New(WithLogger(tl.Logger), WithClock(fixedClock)), tl
}

func TestBuildSingleFile(t *testing.T) {
	root := writeTree(t, leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid")
	b, _ := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)

	g := result.Groups[0]
	assert.Equal(t, "modelX-0.25b-pop909-offline-001-100t-002-200t", g.GroupID)
	assert.Equal(t, "0.25b", g.SharedMetadata.ModelParameters)
	assert.Equal(t, []float64{0.8}, g.AvailableTemperatures)
	assert.Equal(t, []string{"v1"}, g.AvailableVersions)
	require.Len(t, g.Instances, 1)

	inst := g.Instances[0]
	assert.Equal(t, "audio_1", inst.ID)
	assert.Equal(t, "offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid", inst.Filename)
	assert.Equal(t, "/audio/"+leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid", inst.URL)
	assert.Equal(t, "v1", inst.Version)
	assert.Equal(t, catalogs.AudioInfo{Duration: 30, FileSize: "N/A", Format: "midi"}, inst.AudioInfo)
	assert.Equal(t, catalogs.GenerationParams{Temperature: 0.8, TopP: 0.9, Seed: 1234}, inst.GenerationParams)
	assert.Equal(t, catalogs.Evaluation{Votes: 0, EloRating: 1500, TotalComparisons: 0}, inst.Evaluation)
	assert.True(t, fixedClock().Equal(inst.CreatedAt.Time))
}

func TestBuildGroupsTemperatureAndVersion(t *testing.T) {
	root := writeTree(t,
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid",
		leafDir+"/offline_tem_1.0_prompt_001_100t_input_002_200t_v2.mid",
	)
	b, _ := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)

	g := result.Groups[0]
	assert.Len(t, g.Instances, 2)
	assert.Equal(t, []float64{0.8, 1.0}, g.AvailableTemperatures)
	assert.Equal(t, []string{"v1", "v2"}, g.AvailableVersions)
}

func TestBuildSplitsOnEveryOtherAxis(t *testing.T) {
	base := "offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid"
	root := writeTree(t,
		leafDir+"/"+base,
		"modelY/025b/pop909/offline/"+base,
		"modelX/05b/pop909/offline/"+base,
		"modelX/025b/aria_unique/offline/"+base,
		"modelX/025b/pop909/real_time/"+base,
		leafDir+"/offline_tem_0.8_prompt_009_100t_input_002_200t_v1.mid",
		leafDir+"/offline_tem_0.8_prompt_001_50t_input_002_200t_v1.mid",
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_009_200t_v1.mid",
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_400t_v1.mid",
	)
	b, _ := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, result.Groups, 9)

	seen := make(map[string]bool)
	for _, g := range result.Groups {
		assert.False(t, seen[g.GroupID], "duplicate group %s", g.GroupID)
		seen[g.GroupID] = true
		assert.Len(t, g.Instances, 1)
	}
}

func TestBuildSkipsNonConformingNames(t *testing.T) {
	root := writeTree(t,
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid",
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_002.mid",
		leafDir+"/notes.txt",
	)
	b, tl := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Files, "only .mid files are scanned")
	assert.Equal(t, 1, result.Instances)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, leafDir+"/offline_tem_0.8_prompt_001_100t_input_002.mid", result.Skipped[0].Path)
	tl.AssertContains(t, "did not match expected format")
	tl.AssertContains(t, "offline_tem_0.8_prompt_001_100t_input_002.mid")
}

func TestBuildSkipsWrongDepth(t *testing.T) {
	name := "offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid"
	root := writeTree(t,
		"modelX/025b/"+name,
		leafDir+"/extra/"+name,
		leafDir+"/"+name,
	)
	b, tl := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Files)
	assert.Len(t, result.Groups, 1)
	assert.Len(t, result.Skipped, 2)
	tl.AssertContains(t, "depth")
}

func TestBuildIDsCountScannedFiles(t *testing.T) {
	// Lexical walk order puts ab_bad.mid between the two valid files.
	root := writeTree(t,
		leafDir+"/a_tem_0.8_prompt_001_100t_input_002_200t_v1.mid",
		leafDir+"/ab_bad.mid",
		leafDir+"/b_tem_1.0_prompt_001_100t_input_002_200t_v1.mid",
	)
	b, _ := newTestBuilder(t)

	result, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, result.Groups, 1)

	ids := []string{}
	for _, inst := range result.Groups[0].Instances {
		ids = append(ids, inst.ID)
	}
	assert.Equal(t, []string{"audio_1", "audio_3"}, ids)
}

func TestBuildEmptyTree(t *testing.T) {
	b, _ := newTestBuilder(t)

	result, err := b.Build(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, result.Groups)
	assert.Empty(t, result.Groups)
	assert.Equal(t, 0, result.Files)
}

func TestBuildMissingRoot(t *testing.T) {
	b, _ := newTestBuilder(t)

	_, err := b.Build(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "walk", ioErr.Operation)
}

func TestBuildCanceled(t *testing.T) {
	root := writeTree(t, leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid")
	b, _ := newTestBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildIdempotent(t *testing.T) {
	root := writeTree(t,
		leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid",
		leafDir+"/offline_tem_1.0_prompt_001_100t_input_002_200t_v2.mid",
		"modelY/012b/aria_deduped/simulator/sim_tem_1.2_prompt_003_100t_input_004_200t_v1.mid",
	)
	b, _ := newTestBuilder(t)

	first, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first.Groups, second.Groups)
}

func TestURLPrefix(t *testing.T) {
	root := writeTree(t, leafDir+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid")

	tests := []struct {
		prefix string
		want   string
	}{
		{"/audio", "/audio/" + leafDir},
		{"/static/midi/", "/static/midi/" + leafDir},
		{"", "/" + leafDir},
		{"/", "/" + leafDir},
		{"https://cdn.example.com/audio", "https://cdn.example.com/audio/" + leafDir},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			b := New(WithLogger(logging.NewNopLogger()), WithURLPrefix(tt.prefix))
			result, err := b.Build(context.Background(), root)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"/offline_tem_0.8_prompt_001_100t_input_002_200t_v1.mid", result.Groups[0].Instances[0].URL)
		})
	}
}

func TestParseSourcePath(t *testing.T) {
	src, err := ParseSourcePath("modelX/025b/pop909/offline/a.mid")
	require.NoError(t, err)
	assert.Equal(t, SourcePath{
		Rel:       "modelX/025b/pop909/offline/a.mid",
		Model:     "modelX",
		RawParams: "025b",
		Dataset:   "pop909",
		Mode:      "offline",
		Filename:  "a.mid",
	}, src)

	_, err = ParseSourcePath("a.mid")
	assert.True(t, errors.IsInvalidLayout(err))
}
