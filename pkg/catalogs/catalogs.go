// Package catalogs defines the card-group data model of the audio catalog,
// its persisted index format and the query engine that serves it.
//
// A card group collects every generated file that shares model, parameter
// count, dataset, inference mode, prompt file, prompt length, input file and
// generation length. Files inside a group differ only by temperature and
// version, which the group exposes as selector axes.
package catalogs

import (
	"slices"
	"strings"

	"github.com/agentstation/utc"
)

// AudioInfo is fixed playback metadata of an instance.
type AudioInfo struct {
	Duration int    `json:"duration" yaml:"duration"`
	FileSize string `json:"file_size" yaml:"file_size"`
	Format   string `json:"format" yaml:"format"`
}

// GenerationParams records the sampling parameters of an instance.
type GenerationParams struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	TopP        float64 `json:"top_p" yaml:"top_p"`
	Seed        int     `json:"seed" yaml:"seed"`
}

// Evaluation holds comparison statistics. Values are seeded defaults; the
// serving process never increments them.
type Evaluation struct {
	Votes            int `json:"votes" yaml:"votes"`
	EloRating        int `json:"elo_rating" yaml:"elo_rating"`
	TotalComparisons int `json:"total_comparisons" yaml:"total_comparisons"`
}

// AudioInstance is one playable generated file.
type AudioInstance struct {
	ID               string           `json:"id" yaml:"id"` // unique within one build run only
	Filename         string           `json:"filename" yaml:"filename"`
	URL              string           `json:"midi_url" yaml:"midi_url"`
	Version          string           `json:"version" yaml:"version"`
	AudioInfo        AudioInfo        `json:"audio_info" yaml:"audio_info"`
	GenerationParams GenerationParams `json:"generation_params" yaml:"generation_params"`
	Evaluation       Evaluation       `json:"evaluation" yaml:"evaluation"`
	CreatedAt        utc.Time         `json:"created_at" yaml:"created_at"`
}

// SharedMetadata is the set of axes every instance of a group agrees on.
type SharedMetadata struct {
	ModelArchitecture string `json:"model_architecture" yaml:"model_architecture"`
	ModelParameters   string `json:"model_parameters" yaml:"model_parameters"`
	TrainingDataset   string `json:"training_dataset" yaml:"training_dataset"`
	InferenceMode     string `json:"inference_mode" yaml:"inference_mode"`
	PromptLength      string `json:"prompt_length" yaml:"prompt_length"`
	GenerationLength  string `json:"generation_length" yaml:"generation_length"`
	PromptFile        string `json:"prompt_file" yaml:"prompt_file"`
	InputFile         string `json:"input_file" yaml:"input_file"`
}

// GroupID derives the group key from the shared axes.
func (m SharedMetadata) GroupID() string {
	return strings.Join([]string{
		m.ModelArchitecture,
		m.ModelParameters,
		m.TrainingDataset,
		m.InferenceMode,
		m.PromptFile,
		m.PromptLength,
		m.InputFile,
		m.GenerationLength,
	}, "-")
}

// CardGroup is the unit the query engine filters and pages over.
type CardGroup struct {
	GroupID               string          `json:"groupId" yaml:"groupId"`
	SharedMetadata        SharedMetadata  `json:"sharedMetadata" yaml:"sharedMetadata"`
	Instances             []AudioInstance `json:"instances" yaml:"instances"`
	AvailableTemperatures []float64       `json:"availableTemperatures" yaml:"availableTemperatures"`
	AvailableVersions     []string        `json:"availableVersions" yaml:"availableVersions"`
}

// NewCardGroup creates an empty group for the given axes.
func NewCardGroup(meta SharedMetadata) *CardGroup {
	return &CardGroup{
		GroupID:               meta.GroupID(),
		SharedMetadata:        meta,
		Instances:             []AudioInstance{},
		AvailableTemperatures: []float64{},
		AvailableVersions:     []string{},
	}
}

// Add appends an instance in scan order.
func (g *CardGroup) Add(inst AudioInstance) {
	g.Instances = append(g.Instances, inst)
}

// RefreshSelectors recomputes the temperature and version selector sets
// from the member instances: deduplicated, temperatures ascending
// numerically and versions ascending lexicographically.
func (g *CardGroup) RefreshSelectors() {
	temps := make([]float64, 0, len(g.Instances))
	versions := make([]string, 0, len(g.Instances))
	for _, inst := range g.Instances {
		temps = append(temps, inst.GenerationParams.Temperature)
		versions = append(versions, inst.Version)
	}

	slices.Sort(temps)
	slices.Sort(versions)
	g.AvailableTemperatures = slices.Compact(temps)
	g.AvailableVersions = slices.Compact(versions)
}

// Instance returns the instance with the given temperature and version.
func (g CardGroup) Instance(temperature float64, version string) (AudioInstance, bool) {
	for _, inst := range g.Instances {
		if inst.GenerationParams.Temperature == temperature && inst.Version == version {
			return inst, true
		}
	}
	return AudioInstance{}, false
}

// matchesSearch reports whether the lowercased needle occurs in the group id
// or any instance filename, ignoring case.
func (g CardGroup) matchesSearch(needle string) bool {
	if strings.Contains(strings.ToLower(g.GroupID), needle) {
		return true
	}
	for _, inst := range g.Instances {
		if strings.Contains(strings.ToLower(inst.Filename), needle) {
			return true
		}
	}
	return false
}
