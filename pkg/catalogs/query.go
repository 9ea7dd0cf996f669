package catalogs

import (
	"strings"

	"github.com/StreamMUSE/streammuse/pkg/constants"
)

// Query selects a page of card groups. Empty or "all" filter values leave
// the axis unconstrained.
type Query struct {
	ModelArchitecture string
	ModelParameters   string
	TrainingDataset   string
	InferenceMode     string
	Search            string
	Limit             int
	Offset            int
}

// Page is the result of applying a Query.
type Page struct {
	Groups  []CardGroup
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// NewQuery returns a query with default pagination and no constraints.
func NewQuery() Query {
	return Query{Limit: constants.DefaultPageSize}
}

// Normalize maps "all" to unconstrained and clamps a negative offset to
// zero. Limit is left as given; a non-positive limit
// yields an empty page.
func (q Query) Normalize() Query {
	q.ModelArchitecture = normalizeFilter(q.ModelArchitecture)
	q.ModelParameters = normalizeFilter(q.ModelParameters)
	q.TrainingDataset = normalizeFilter(q.TrainingDataset)
	q.InferenceMode = normalizeFilter(q.InferenceMode)
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func normalizeFilter(v string) string {
	if v == constants.AllValue {
		return ""
	}
	return v
}

// Matches reports whether a group satisfies every filter and the search term.
func (q Query) Matches(g CardGroup) bool {
	m := g.SharedMetadata
	if q.ModelArchitecture != "" && m.ModelArchitecture != q.ModelArchitecture {
		return false
	}
	if q.ModelParameters != "" && m.ModelParameters != q.ModelParameters {
		return false
	}
	if q.TrainingDataset != "" && m.TrainingDataset != q.TrainingDataset {
		return false
	}
	if q.InferenceMode != "" && m.InferenceMode != q.InferenceMode {
		return false
	}
	if q.Search != "" && !g.matchesSearch(strings.ToLower(q.Search)) {
		return false
	}
	return true
}

// Apply filters groups in catalog order and returns the requested window.
func Apply(groups []CardGroup, q Query) Page {
	q = q.Normalize()

	matched := make([]CardGroup, 0, len(groups))
	for _, g := range groups {
		if q.Matches(g) {
			matched = append(matched, g)
		}
	}

	total := len(matched)
	page := Page{
		Groups: []CardGroup{},
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.Limit <= 0 || q.Offset >= total {
		return page
	}

	// Offset is below total here, so the remaining count bounds the page
	// without adding limit to offset.
	end := q.Offset + min(q.Limit, total-q.Offset)
	page.Groups = matched[q.Offset:end]
	page.HasMore = end < total
	return page
}
