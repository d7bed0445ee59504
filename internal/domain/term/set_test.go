package term

import (
	"reflect"
	"testing"
)

func TestSet_KeepsFirstSpelling(t *testing.T) {
	s := NewSet(4)
	if !s.Add("Mountain") {
		t.Fatal("expected first add to succeed")
	}
	if s.Add("mountain") {
		t.Error("expected case-insensitive duplicate to be rejected")
	}
	s.Add("lake")
	if !reflect.DeepEqual(s.Terms(), []string{"Mountain", "lake"}) {
		t.Errorf("unexpected terms: %v", s.Terms())
	}
	if !s.Contains("MOUNTAIN") {
		t.Error("expected Contains to ignore case")
	}
	if s.Len() != 2 {
		t.Errorf("expected len 2, got %d", s.Len())
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"no dups", []string{"a", "b"}, []string{"a", "b"}},
		{"case dups", []string{"Sky", "sky", "SKY", "sea"}, []string{"Sky", "sea"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Dedupe(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Dedupe(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"sun", 1},
		{"  golden   hour ", 2},
		{"a b c d", 4},
	}
	for _, tc := range tests {
		if got := WordCount(tc.in); got != tc.want {
			t.Errorf("WordCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	banned := []string{"wallpaper", "aesthetic"}
	if !ContainsAny("Sunset Wallpapers", banned) {
		t.Error("expected banned substring match ignoring case")
	}
	if ContainsAny("sunset", banned) {
		t.Error("unexpected match")
	}
}
