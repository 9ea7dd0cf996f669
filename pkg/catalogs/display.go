package catalogs

// ModelArchitecture identifies a generator family.
type ModelArchitecture string

// Known model architectures.
const (
	ModelXinyueOld      ModelArchitecture = "xinyue_old"
	ModelXinyueNew      ModelArchitecture = "xinyue_new"
	ModelXinyueNewChord ModelArchitecture = "xinyue_new_chord"
)

// TrainingDataset identifies the corpus a model was trained on.
type TrainingDataset string

// Known training datasets.
const (
	DatasetPOP909      TrainingDataset = "pop909"
	DatasetAriaUnique  TrainingDataset = "aria_unique"
	DatasetAriaDeduped TrainingDataset = "aria_deduped"
)

// InferenceMode identifies how a sample was generated.
type InferenceMode string

// Known inference modes.
const (
	ModeOffline      InferenceMode = "offline"
	ModeRealTime     InferenceMode = "real_time"
	ModeSimulator    InferenceMode = "simulator"
	ModeFakeOffline  InferenceMode = "fake_offline"
	ModeFakeRealtime InferenceMode = "fake_realtime"
)

var modelNames = map[ModelArchitecture]string{
	ModelXinyueOld:      "Xinyue's Old",
	ModelXinyueNew:      "Xinyue's New",
	ModelXinyueNewChord: "Xinyue's New+Chord",
}

var datasetNames = map[TrainingDataset]string{
	DatasetPOP909:      "POP909",
	DatasetAriaUnique:  "ARIA-Unique",
	DatasetAriaDeduped: "ARIA-Deduped",
}

var modeNames = map[InferenceMode]string{
	ModeOffline:      "Offline",
	ModeRealTime:     "Real-time",
	ModeSimulator:    "Simulator",
	ModeFakeOffline:  "Fake-Offline",
	ModeFakeRealtime: "Fake-Realtime",
}

var parameterNames = map[string]string{
	"0.12b": "0.12B",
	"0.25b": "0.25B",
	"0.5b":  "0.5B",
}

// ModelDisplayName returns the human label for a model id, or the id itself.
func ModelDisplayName(id string) string {
	if name, ok := modelNames[ModelArchitecture(id)]; ok {
		return name
	}
	return id
}

// DatasetDisplayName returns the human label for a dataset id, or the id itself.
func DatasetDisplayName(id string) string {
	if name, ok := datasetNames[TrainingDataset(id)]; ok {
		return name
	}
	return id
}

// ModeDisplayName returns the human label for an inference mode, or the id itself.
func ModeDisplayName(id string) string {
	if name, ok := modeNames[InferenceMode(id)]; ok {
		return name
	}
	return id
}

// ParametersDisplayName returns the human label for a parameter count.
func ParametersDisplayName(params string) string {
	if name, ok := parameterNames[params]; ok {
		return name
	}
	return params
}

// Models lists the known model architectures in display order.
func Models() []ModelArchitecture {
	return []ModelArchitecture{ModelXinyueOld, ModelXinyueNew, ModelXinyueNewChord}
}

// Datasets lists the known training datasets in display order.
func Datasets() []TrainingDataset {
	return []TrainingDataset{DatasetPOP909, DatasetAriaUnique, DatasetAriaDeduped}
}

// Modes lists the known inference modes in display order.
func Modes() []InferenceMode {
	return []InferenceMode{ModeOffline, ModeRealTime, ModeSimulator, ModeFakeOffline, ModeFakeRealtime}
}
