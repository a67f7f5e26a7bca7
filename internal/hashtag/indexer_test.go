package hashtag

import (
	"sort"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "empty content",
			content:  "",
			expected: nil,
		},
		{
			name:     "no hashtags",
			content:  "hello world",
			expected: nil,
		},
		{
			name:     "single hashtag",
			content:  "hello #world",
			expected: []string{"world"},
		},
		{
			name:     "multiple hashtags",
			content:  "#go is great #golang",
			expected: []string{"go", "golang"},
		},
		{
			name:     "mixed case lowered",
			content:  "#GoLang #GOLANG",
			expected: []string{"golang"},
		},
		{
			name:     "duplicates collapse",
			content:  "#x again #x",
			expected: []string{"x"},
		},
		{
			name:     "bare marker ignored",
			content:  "# alone",
			expected: nil,
		},
		{
			name:     "marker mid-token is not a tag",
			content:  "foo#bar",
			expected: nil,
		},
		{
			name:     "tag that is a prefix of another",
			content:  "#cat #category",
			expected: []string{"cat", "category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.content)
			if len(got) != len(tt.expected) {
				t.Fatalf("ExtractTags(%q) returned %d tags, want %d", tt.content, len(got), len(tt.expected))
			}
			for _, tag := range tt.expected {
				if _, ok := got[tag]; !ok {
					t.Errorf("ExtractTags(%q) missing tag %q", tt.content, tag)
				}
			}
		})
	}
}

func TestExtractTagsTruncation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantRunes int
	}{
		{
			name:      "ascii tag over the cap",
			content:   "#" + strings.Repeat("a", 150),
			wantRunes: maxTagLen,
		},
		{
			name:      "multibyte tag over the cap",
			content:   "#" + strings.Repeat("あ", 150),
			wantRunes: maxTagLen,
		},
		{
			// 34 three-byte runes exceed 100 bytes but not 100 characters.
			name:      "multibyte tag within the cap",
			content:   "#" + strings.Repeat("あ", 34),
			wantRunes: 34,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.content)
			if len(got) != 1 {
				t.Fatalf("ExtractTags(%q) returned %d tags, want 1", tt.content, len(got))
			}
			for tag := range got {
				if !utf8.ValidString(tag) {
					t.Errorf("extracted tag %q is not valid UTF-8", tag)
				}
				if n := utf8.RuneCountInString(tag); n != tt.wantRunes {
					t.Errorf("extracted tag has %d runes, want %d", n, tt.wantRunes)
				}
			}
		})
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		oldContent  string
		newContent  string
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:        "disjoint edit keeps shared tag",
			oldContent:  "text #a #b",
			newContent:  "text #b #c",
			wantAdded:   []string{"c"},
			wantRemoved: []string{"a"},
		},
		{
			name:        "no change",
			oldContent:  "#a #b",
			newContent:  "reordered #b #a",
			wantAdded:   nil,
			wantRemoved: nil,
		},
		{
			name:        "all removed",
			oldContent:  "#a #b",
			newContent:  "plain text",
			wantAdded:   nil,
			wantRemoved: []string{"a", "b"},
		},
		{
			name:        "all added",
			oldContent:  "plain text",
			newContent:  "#a #b",
			wantAdded:   []string{"a", "b"},
			wantRemoved: nil,
		},
		{
			name:       "substring tags are distinct",
			oldContent: "#cat",
			newContent: "#category",
			// #cat must not be treated as present just because it is a
			// substring of #category.
			wantAdded:   []string{"category"},
			wantRemoved: []string{"cat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := Diff(tt.oldContent, tt.newContent)
			sort.Strings(added)
			sort.Strings(removed)
			if !equal(added, tt.wantAdded) {
				t.Errorf("Diff() added = %v, want %v", added, tt.wantAdded)
			}
			if !equal(removed, tt.wantRemoved) {
				t.Errorf("Diff() removed = %v, want %v", removed, tt.wantRemoved)
			}
		})
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
