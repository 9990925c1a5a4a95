package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/monsterdex/monsterdex/internal/models"
)

// Suggest returns up to limit creature names close to query, nearest first.
// Names that start with the query rank ahead of plain edit-distance matches.
func (c *Catalog) Suggest(query string, limit int) []string {
	q := models.NameKey(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}

	var candidates []candidate
	for _, creature := range c.roster {
		key := creature.Key()
		if len(q) >= 3 && strings.HasPrefix(key, q) {
			candidates = append(candidates, candidate{name: creature.Name, dist: 0})
			continue
		}

		dist := levenshtein.ComputeDistance(q, key)
		if dist <= levenshteinLimit(len(q)) {
			candidates = append(candidates, candidate{name: creature.Name, dist: dist})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.name
	}
	return out
}

// levenshteinLimit is the largest edit distance accepted for a query of
// length n.
func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
