package gallery

import "testing"

func TestMatchEmptyQueryReturnsEverything(t *testing.T) {
	images := []Image{{Filename: "a.jpg"}, {Filename: "b.jpg"}}
	got := Match(images, "  ")
	if len(got) != 2 {
		t.Fatalf("expected all images, got %#v", got)
	}
}

func TestMatchFuzzyFindsSubsequence(t *testing.T) {
	images := []Image{
		{Filename: "beach_sunset.jpg"},
		{Filename: "mountain.jpg"},
		{Filename: "sunrise.jpg"},
	}
	got := Match(images, "bsun")
	if len(got) != 1 || got[0].Filename != "beach_sunset.jpg" {
		t.Fatalf("expected beach_sunset.jpg only, got %#v", got)
	}
}

func TestMatchNoHits(t *testing.T) {
	images := []Image{{Filename: "a.jpg"}}
	if got := Match(images, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}
