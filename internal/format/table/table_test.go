package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"1.", "sunset.png", "http://host/sunset.png"},
		{"10.", "a.jpg", "http://host/a.jpg"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft, AlignLeft})
	want := []string{
		" 1.  sunset.png  http://host/sunset.png",
		"10.  a.jpg       http://host/a.jpg",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	if got[0] != "日本  x" || got[1] != "ab    y" {
		t.Fatalf("unexpected wide rune alignment: %q", got)
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "b", "c"}, {"dd"}}, nil)
	if got[1] != "dd" {
		t.Fatalf("expected padded short row, got %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}
