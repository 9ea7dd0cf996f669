// Package docs generates a Hugo-ready markdown report of the catalog and
// the model leaderboard.
package docs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
	"github.com/StreamMUSE/streammuse/pkg/logging"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// Generator handles documentation generation
type Generator struct {
	outputDir string
	logger    *zerolog.Logger
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithOutputDir sets the output directory for generated documentation
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithLogger sets the generator logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{
		outputDir: "./docs",
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the catalog overview, one page per model architecture and
// the leaderboard under <outputDir>/catalog. It returns the written paths.
func (g *Generator) Generate(ctx context.Context, groups []catalogs.CardGroup, entries []rankings.Entry) ([]string, error) {
	catalogDir := filepath.Join(g.outputDir, "catalog")
	modelsDir := filepath.Join(catalogDir, "models")
	if err := os.MkdirAll(modelsDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", modelsDir, err)
	}

	var written []string
	write := func(path string, render func(*Markdown)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return errors.WrapIO("create", path, err)
		}
		m := NewMarkdown(f)
		render(m)
		if err := m.Build(); err != nil {
			_ = f.Close()
			return errors.WrapIO("write", path, err)
		}
		if err := f.Close(); err != nil {
			return errors.WrapIO("close", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write(filepath.Join(catalogDir, "_index.md"), func(m *Markdown) {
		g.renderIndex(m, groups)
	}); err != nil {
		return written, err
	}

	for i, model := range modelsOf(groups) {
		var own []catalogs.CardGroup
		for _, grp := range groups {
			if grp.SharedMetadata.ModelArchitecture == model {
				own = append(own, grp)
			}
		}
		if err := write(filepath.Join(modelsDir, model+".md"), func(m *Markdown) {
			renderModel(m, model, i+1, own)
		}); err != nil {
			return written, err
		}
	}

	if err := write(filepath.Join(catalogDir, "rankings.md"), func(m *Markdown) {
		renderRankings(m, entries)
	}); err != nil {
		return written, err
	}

	g.logger.Info().Str("dir", catalogDir).Int("pages", len(written)).Msg("Generated catalog documentation")
	return written, nil
}

func (g *Generator) renderIndex(m *Markdown, groups []catalogs.CardGroup) {
	instances := 0
	for _, grp := range groups {
		instances += len(grp.Instances)
	}

	m.HugoFrontMatter(FrontMatter{
		Title:       "Audio Catalog",
		Description: "Comparison groups available for listening studies",
		Weight:      1,
	})
	m.H1("Audio Catalog").LF()
	m.PlainTextf("%s comparison groups holding %s generated samples.", Bold(strconv.Itoa(len(groups))), Bold(strconv.Itoa(instances))).LF()

	axisHeaders := []string{"Name", "Value", "Groups", "Instances"}

	m.H2("Models").LF()
	models := countBy(groups, func(s catalogs.SharedMetadata) string { return s.ModelArchitecture })
	modelRows := axisRows(models, catalogs.ModelDisplayName)
	for i, c := range models {
		modelRows[i][0] = Link(modelRows[i][0], "models/"+c.value)
	}
	m.Table(axisHeaders, modelRows).LF()

	m.H2("Training Datasets").LF()
	m.Table(axisHeaders, axisRows(countBy(groups, func(s catalogs.SharedMetadata) string { return s.TrainingDataset }), catalogs.DatasetDisplayName)).LF()

	m.H2("Inference Modes").LF()
	m.Table(axisHeaders, axisRows(countBy(groups, func(s catalogs.SharedMetadata) string { return s.InferenceMode }), catalogs.ModeDisplayName)).LF()

	m.H2("See Also").LF()
	m.BulletList(Link("Model rankings", "rankings")).LF()
}

func renderModel(m *Markdown, model string, weight int, groups []catalogs.CardGroup) {
	name := catalogs.ModelDisplayName(model)
	m.HugoFrontMatter(FrontMatter{Title: name, Weight: weight})
	m.H1(name).LF()
	m.PlainTextf("Architecture %s, %d groups.", Code(model), len(groups)).LF()
	m.Table(
		[]string{"Group", "Params", "Dataset", "Mode", "Temperatures", "Versions", "Instances"},
		groupRows(groups),
	).LF()
}

func renderRankings(m *Markdown, entries []rankings.Entry) {
	m.HugoFrontMatter(FrontMatter{
		Title:       "Model Rankings",
		Description: "Elo leaderboard from pairwise listening comparisons",
		Weight:      2,
	})
	m.H1("Model Rankings").LF()
	m.PlainTextf("%s comparisons across %d models.", Bold(strconv.Itoa(rankings.TotalVotes(entries))), len(entries)).LF()
	m.Table(
		[]string{"Rank", "Model", "Parameters", "Elo", "Win Rate", "Votes", "95% CI"},
		rankingRows(entries),
	).LF()
}
