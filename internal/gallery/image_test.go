package gallery

import "testing"

func TestFromImagesKeysStayUniqueForDuplicateNames(t *testing.T) {
	items := FromImages([]Image{
		{Filename: "cat.jpg", RelativePath: "http://h/gallery/cat.jpg"},
		{Filename: "cat.jpg", RelativePath: "http://h/gallery/cat.jpg"},
	})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Key == items[1].Key {
		t.Fatalf("expected distinct keys, got %q twice", items[0].Key)
	}
	if items[0].Label != "cat.jpg" || items[0].URI != "http://h/gallery/cat.jpg" {
		t.Fatalf("unexpected projection %#v", items[0])
	}
}

func TestFromImagesFallsBackToGenericLabel(t *testing.T) {
	items := FromImages([]Image{{RelativePath: "http://h/gallery/x.jpg"}})
	if items[0].Label != "Gallery Image" {
		t.Fatalf("expected fallback label, got %q", items[0].Label)
	}
}

func TestFromResultsKeepsBackendOrder(t *testing.T) {
	results := []SearchResult{
		{ImagePath: "http://h/gallery/c.jpg", Caption: "third by name"},
		{ImagePath: "http://h/gallery/a.jpg", Caption: "first by name"},
		{ImagePath: "http://h/gallery/b.jpg", Caption: "second by name"},
	}
	items := FromResults(results)
	for i, res := range results {
		if items[i].URI != res.ImagePath || items[i].Label != res.Caption {
			t.Fatalf("item %d reordered: %#v", i, items[i])
		}
	}
}

func TestFromEmptyListsReturnNil(t *testing.T) {
	if FromImages(nil) != nil || FromResults([]SearchResult{}) != nil {
		t.Fatalf("expected nil projections for empty input")
	}
}
