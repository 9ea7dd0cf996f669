// Package filter parses catalog query parameters from HTTP requests.
package filter

import (
	"net/http"
	"strconv"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
)

// Query parameter names accepted by the audio listing.
const (
	ParamModelArchitecture = "model_architecture"
	ParamModelParameters   = "model_parameters"
	ParamTrainingDataset   = "training_dataset"
	ParamInferenceMode     = "inference_mode"
	ParamSearch            = "search"
	ParamLimit             = "limit"
	ParamOffset            = "offset"
)

// ParseAudioQuery extracts a catalog query from the request. Filters are
// taken verbatim ("all" is resolved later by the query engine); malformed
// limit and offset values fall back to their defaults instead of failing
// the request.
func ParseAudioQuery(r *http.Request) catalogs.Query {
	q := r.URL.Query()

	return catalogs.Query{
		ModelArchitecture: q.Get(ParamModelArchitecture),
		ModelParameters:   q.Get(ParamModelParameters),
		TrainingDataset:   q.Get(ParamTrainingDataset),
		InferenceMode:     q.Get(ParamInferenceMode),
		Search:            q.Get(ParamSearch),
		Limit:             parseIntOrDefault(q.Get(ParamLimit), constants.DefaultPageSize),
		Offset:            parseIntOrDefault(q.Get(ParamOffset), 0),
	}
}

// parseIntOrDefault parses an integer or returns the default.
func parseIntOrDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return defaultVal
}

// ParseFloatOrDefault parses a float or returns the default.
func ParseFloatOrDefault(s string, defaultVal float64) float64 {
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}
