package docs

import (
	"slices"
	"strconv"
	"strings"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/rankings"
)

// axisCount is the number of groups and instances sharing one axis value.
type axisCount struct {
	value     string
	groups    int
	instances int
}

// countBy tallies groups by the axis key returns, in first-seen order.
func countBy(groups []catalogs.CardGroup, key func(catalogs.SharedMetadata) string) []axisCount {
	var counts []axisCount
	index := make(map[string]int)
	for _, g := range groups {
		k := key(g.SharedMetadata)
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, axisCount{value: k})
		}
		counts[i].groups++
		counts[i].instances += len(g.Instances)
	}
	return counts
}

func axisRows(counts []axisCount, display func(string) string) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			display(c.value),
			Code(c.value),
			strconv.Itoa(c.groups),
			strconv.Itoa(c.instances),
		})
	}
	return rows
}

func groupRows(groups []catalogs.CardGroup) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		m := g.SharedMetadata
		temps := make([]string, 0, len(g.AvailableTemperatures))
		for _, t := range g.AvailableTemperatures {
			temps = append(temps, strconv.FormatFloat(t, 'f', -1, 64))
		}
		rows = append(rows, []string{
			Code(g.GroupID),
			catalogs.ParametersDisplayName(m.ModelParameters),
			catalogs.DatasetDisplayName(m.TrainingDataset),
			catalogs.ModeDisplayName(m.InferenceMode),
			strings.Join(temps, ", "),
			strings.Join(g.AvailableVersions, ", "),
			strconv.Itoa(len(g.Instances)),
		})
	}
	return rows
}

func rankingRows(entries []rankings.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.ModelName,
			e.Parameters,
			strconv.Itoa(e.EloRating),
			strconv.FormatFloat(e.WinRate*100, 'f', 0, 64) + "%",
			strconv.Itoa(e.TotalVotes),
			strconv.Itoa(e.ConfidenceInterval[0]) + "-" + strconv.Itoa(e.ConfidenceInterval[1]),
		})
	}
	return rows
}

// modelsOf returns the distinct model architectures in catalog order.
func modelsOf(groups []catalogs.CardGroup) []string {
	var models []string
	for _, g := range groups {
		if m := g.SharedMetadata.ModelArchitecture; !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	return models
}
