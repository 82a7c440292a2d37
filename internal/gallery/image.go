// Package gallery holds the image records exchanged with the caption
// search backend and the display projection shared by every list the UI
// renders.
package gallery

import (
	"fmt"
	"strings"
)

// Image is one entry of the browsable catalog. Filename is not guaranteed
// to be unique, so display keys combine it with the record's position.
type Image struct {
	Filename     string
	RelativePath string
}

// SearchResult is one ranked hit of a caption search.
type SearchResult struct {
	ImagePath string
	Caption   string
}

// Displayable is the normalised shape rendered by the view regardless of
// which list produced it.
type Displayable struct {
	Key   string
	URI   string
	Label string
}

const fallbackLabel = "Gallery Image"

// FromImages projects catalog images into displayable entries, keeping order.
func FromImages(images []Image) []Displayable {
	if len(images) == 0 {
		return nil
	}
	out := make([]Displayable, len(images))
	for i, img := range images {
		label := strings.TrimSpace(img.Filename)
		if label == "" {
			label = fallbackLabel
		}
		out[i] = Displayable{
			Key:   DisplayKey(img.Filename, i),
			URI:   img.RelativePath,
			Label: label,
		}
	}
	return out
}

// FromResults projects search results into displayable entries. Backend
// ranking is preserved as-is.
func FromResults(results []SearchResult) []Displayable {
	if len(results) == 0 {
		return nil
	}
	out := make([]Displayable, len(results))
	for i, res := range results {
		label := strings.TrimSpace(res.Caption)
		if label == "" {
			label = fallbackLabel
		}
		out[i] = Displayable{
			Key:   DisplayKey(res.ImagePath, i),
			URI:   res.ImagePath,
			Label: label,
		}
	}
	return out
}

// DisplayKey builds a key that stays unique when names repeat.
func DisplayKey(name string, index int) string {
	return fmt.Sprintf("%s-%d", name, index)
}

// CloneImages returns a shallow copy of images.
func CloneImages(images []Image) []Image {
	if images == nil {
		return nil
	}
	dup := make([]Image, len(images))
	copy(dup, images)
	return dup
}

// CloneResults returns a shallow copy of results.
func CloneResults(results []SearchResult) []SearchResult {
	if results == nil {
		return nil
	}
	dup := make([]SearchResult, len(results))
	copy(dup, results)
	return dup
}
