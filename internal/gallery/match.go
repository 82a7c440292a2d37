package gallery

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match returns the images whose filename matches query. Fuzzy matches are
// ranked by distance; when nothing matches fuzzily a plain substring pass is
// used instead. An empty query returns every image in catalog order.
func Match(images []Image, query string) []Image {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneImages(images)
	}
	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.Filename
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		})
		out := make([]Image, 0, len(ranks))
		for _, rank := range ranks {
			out = append(out, images[rank.OriginalIndex])
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	out := make([]Image, 0, len(images))
	for _, img := range images {
		if strings.Contains(strings.ToLower(img.Filename), lower) ||
			strings.Contains(strings.ToLower(img.RelativePath), lower) {
			out = append(out, img)
		}
	}
	return out
}
