// Package builder turns a content tree of generated MIDI files into an
// ordered catalog of card groups and persists it as the index the server
// loads.
//
// The tree layout is fixed: <root>/<model>/<params>/<dataset>/<mode>/<file>.mid.
// Files at any other depth, and files whose names do not follow the naming
// grammar, are skipped with a warning; they never abort a build.
package builder

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/filename"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

// Builder scans content trees and builds catalogs.
type Builder struct {
	logger    *zerolog.Logger
	urlPrefix string
	clock     func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build progress and skip warnings.
func WithLogger(logger *zerolog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithURLPrefix sets the prefix instance URLs are rooted at.
func WithURLPrefix(prefix string) Option {
	return func(b *Builder) {
		b.urlPrefix = prefix
	}
}

// WithClock overrides the source of instance creation timestamps.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		logger:    logging.Default(),
		urlPrefix: constants.DefaultURLPrefix,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Skip records a scanned file that did not make it into the catalog.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result is the outcome of a build.
type Result struct {
	Groups    []catalogs.CardGroup `json:"groups" yaml:"groups"`
	Files     int                  `json:"files" yaml:"files"`
	Instances int                  `json:"instances" yaml:"instances"`
	Skipped   []Skip               `json:"skipped" yaml:"skipped"`
}

// Build scans root and assembles the catalog. Only a failure to walk the
// tree is returned as an error; individual bad files are recorded in
// Result.Skipped.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	files, err := b.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	b.logger.Info().
		Str("root", root).
		Int("files", len(files)).
		Msg("Scanned content tree")

	created := utc.New(b.clock())
	result := &Result{Files: len(files), Skipped: []Skip{}}

	// groups holds first-sight order; index maps a group id to its slot.
	var groups []*catalogs.CardGroup
	index := make(map[string]int)

	for i, rel := range files {
		src, err := ParseSourcePath(rel)
		if err != nil {
			result.Skipped = append(result.Skipped, b.skip(rel, err))
			continue
		}

		parsed, err := filename.Parse(src.Filename)
		if err != nil {
			result.Skipped = append(result.Skipped, b.skip(rel, err))
			continue
		}

		meta := catalogs.SharedMetadata{
			ModelArchitecture: src.Model,
			ModelParameters:   filename.FormatParameters(src.RawParams),
			TrainingDataset:   src.Dataset,
			InferenceMode:     src.Mode,
			PromptLength:      parsed.PromptLength,
			GenerationLength:  parsed.GenerationLength,
			PromptFile:        parsed.PromptFile,
			InputFile:         parsed.InputFile,
		}

		id := meta.GroupID()
		slot, ok := index[id]
		if !ok {
			slot = len(groups)
			index[id] = slot
			groups = append(groups, catalogs.NewCardGroup(meta))
		}

		// Ids count every scanned file, skipped or not.
		groups[slot].Add(b.newInstance(i+1, src, parsed, created))
		result.Instances++
	}

	result.Groups = make([]catalogs.CardGroup, 0, len(groups))
	for _, g := range groups {
		g.RefreshSelectors()
		result.Groups = append(result.Groups, *g)
	}

	b.logger.Info().
		Int("groups", len(result.Groups)).
		Int("instances", result.Instances).
		Int("skipped", len(result.Skipped)).
		Msg("Built catalog")

	return result, nil
}

func (b *Builder) newInstance(n int, src SourcePath, parsed filename.Parsed, created utc.Time) catalogs.AudioInstance {
	return catalogs.AudioInstance{
		ID:       "audio_" + strconv.Itoa(n),
		Filename: src.Filename,
		URL:      b.url(src.Rel),
		Version:  parsed.Version,
		AudioInfo: catalogs.AudioInfo{
			Duration: constants.PlaceholderDuration,
			FileSize: constants.PlaceholderFileSize,
			Format:   constants.DefaultFormat,
		},
		GenerationParams: catalogs.GenerationParams{
			Temperature: parsed.Temperature,
			TopP:        constants.PlaceholderTopP,
			Seed:        constants.PlaceholderSeed,
		},
		Evaluation: catalogs.Evaluation{
			Votes:            constants.InitialVotes,
			EloRating:        constants.InitialEloRating,
			TotalComparisons: constants.InitialTotalComparisons,
		},
		CreatedAt: created,
	}
}

func (b *Builder) url(rel string) string {
	if b.urlPrefix == "" {
		return "/" + rel
	}
	return strings.TrimSuffix(b.urlPrefix, "/") + "/" + rel
}

func (b *Builder) skip(rel string, err error) Skip {
	event := b.logger.Warn().Str("path", rel)
	switch {
	case errors.IsGrammarMismatch(err):
		event.Msg("Filename did not match expected format, skipping")
	case errors.IsInvalidLayout(err):
		event.Msg("File is not at model/params/dataset/mode depth, skipping")
	default:
		event.Err(err).Msg("Skipping file")
	}
	return Skip{Path: rel, Reason: err.Error()}
}
