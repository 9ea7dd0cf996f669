package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() SharedMetadata {
	return SharedMetadata{
		ModelArchitecture: "modelX",
		ModelParameters:   "0.25b",
		TrainingDataset:   "pop909",
		InferenceMode:     "offline",
		PromptLength:      "100t",
		GenerationLength:  "200t",
		PromptFile:        "001",
		InputFile:         "002",
	}
}

func testInstance(id, filename string, temperature float64, version string) AudioInstance {
	return AudioInstance{
		ID:               id,
		Filename:         filename,
		URL:              "/audio/" + filename,
		Version:          version,
		GenerationParams: GenerationParams{Temperature: temperature, TopP: 0.9, Seed: 1234},
		Evaluation:       Evaluation{EloRating: 1500},
	}
}

func TestGroupID(t *testing.T) {
	assert.Equal(t, "modelX-0.25b-pop909-offline-001-100t-002-200t", testMetadata().GroupID())

	other := testMetadata()
	other.InputFile = "003"
	assert.NotEqual(t, testMetadata().GroupID(), other.GroupID())
}

func TestNewCardGroup(t *testing.T) {
	g := NewCardGroup(testMetadata())
	assert.Equal(t, testMetadata().GroupID(), g.GroupID)
	assert.NotNil(t, g.Instances)
	assert.Empty(t, g.AvailableTemperatures)
	assert.Empty(t, g.AvailableVersions)
}

func TestRefreshSelectors(t *testing.T) {
	g := NewCardGroup(testMetadata())
	g.Add(testInstance("audio_1", "a.mid", 1.0, "v2"))
	g.Add(testInstance("audio_2", "b.mid", 0.8, "v10"))
	g.Add(testInstance("audio_3", "c.mid", 1.0, "v1"))
	g.Add(testInstance("audio_4", "d.mid", 0.85, "v2"))

	g.RefreshSelectors()

	assert.Equal(t, []float64{0.8, 0.85, 1.0}, g.AvailableTemperatures)
	assert.Equal(t, []string{"v1", "v10", "v2"}, g.AvailableVersions)
	assert.Len(t, g.Instances, 4, "instances keep scan order and multiplicity")
	assert.Equal(t, "audio_1", g.Instances[0].ID)

	t.Run("idempotent", func(t *testing.T) {
		g.RefreshSelectors()
		assert.Equal(t, []float64{0.8, 0.85, 1.0}, g.AvailableTemperatures)
		assert.Equal(t, []string{"v1", "v10", "v2"}, g.AvailableVersions)
	})
}

func TestInstanceLookup(t *testing.T) {
	g := NewCardGroup(testMetadata())
	g.Add(testInstance("audio_1", "a.mid", 0.8, "v1"))
	g.Add(testInstance("audio_2", "b.mid", 1.0, "v1"))

	inst, ok := g.Instance(1.0, "v1")
	require.True(t, ok)
	assert.Equal(t, "audio_2", inst.ID)

	_, ok = g.Instance(1.0, "v2")
	assert.False(t, ok)
}

func TestDisplayNames(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"old model", ModelDisplayName, "xinyue_old", "Xinyue's Old"},
		{"new model", ModelDisplayName, "xinyue_new", "Xinyue's New"},
		{"chord model", ModelDisplayName, "xinyue_new_chord", "Xinyue's New+Chord"},
		{"unknown model", ModelDisplayName, "modelX", "modelX"},
		{"pop909", DatasetDisplayName, "pop909", "POP909"},
		{"aria unique", DatasetDisplayName, "aria_unique", "ARIA-Unique"},
		{"aria deduped", DatasetDisplayName, "aria_deduped", "ARIA-Deduped"},
		{"unknown dataset", DatasetDisplayName, "lakh", "lakh"},
		{"offline", ModeDisplayName, "offline", "Offline"},
		{"real time", ModeDisplayName, "real_time", "Real-time"},
		{"simulator", ModeDisplayName, "simulator", "Simulator"},
		{"fake offline", ModeDisplayName, "fake_offline", "Fake-Offline"},
		{"fake realtime", ModeDisplayName, "fake_realtime", "Fake-Realtime"},
		{"unknown mode", ModeDisplayName, "batch", "batch"},
		{"quarter billion", ParametersDisplayName, "0.25b", "0.25B"},
		{"unknown params", ParametersDisplayName, "7b", "7b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestEnumerationsHaveDisplayNames(t *testing.T) {
	for _, m := range Models() {
		assert.NotEqual(t, string(m), ModelDisplayName(string(m)))
	}
	for _, d := range Datasets() {
		assert.NotEqual(t, string(d), DatasetDisplayName(string(d)))
	}
	for _, m := range Modes() {
		assert.NotEqual(t, string(m), ModeDisplayName(string(m)))
	}
}
