package dedup

import "testing"

func TestTokenSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical single token", a: "Test", b: "Test", want: 1.0},
		{name: "identical multi token", a: "Test Title", b: "Test Title", want: 1.0},
		{name: "case insensitive", a: "Test Title", b: "test title", want: 1.0},
		{name: "no overlap", a: "GitHub", b: "Facebook", want: 0.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "test", b: "", want: 0.0},
		{name: "whitespace only counts as empty", a: "   ", b: "", want: 1.0},
		{name: "one third overlap", a: "GitHub Repository", b: "GitHub Project", want: 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSimilarityPartial(t *testing.T) {
	sim := TokenSimilarity("GitHub Repository", "GitHub Project")
	if sim <= 0.0 || sim >= 1.0 {
		t.Errorf("partial overlap similarity = %v, want strictly between 0 and 1", sim)
	}
}

func TestEditSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "test", b: "test", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "test", b: "", want: 0.0},
		{name: "single substitution", a: "cat", b: "bat", want: 2.0 / 3.0},
		{name: "completely different", a: "abc", b: "xyz", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EditSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("EditSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// kitten/sitting is the classic three-edit case: distance 3 over max length
// 7 gives a ratio of 4/7, strictly between 0.4 and 0.6.
func TestEditSimilarityKittenSitting(t *testing.T) {
	sim := EditSimilarity("kitten", "sitting")
	if sim <= 0.4 || sim >= 0.6 {
		t.Errorf("EditSimilarity(kitten, sitting) = %v, want strictly between 0.4 and 0.6", sim)
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"GitHub Repository", "GitHub Project"},
		{"kitten", "sitting"},
		{"", "something"},
		{"a b c", "c b a"},
	}
	for _, p := range pairs {
		if TokenSimilarity(p[0], p[1]) != TokenSimilarity(p[1], p[0]) {
			t.Errorf("TokenSimilarity not symmetric for %q / %q", p[0], p[1])
		}
		if EditSimilarity(p[0], p[1]) != EditSimilarity(p[1], p[0]) {
			t.Errorf("EditSimilarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely unrelated long string"},
		{"hello world", "hello"},
		{"", ""},
		{"x", ""},
	}
	for _, p := range pairs {
		for name, sim := range map[string]float64{
			"TokenSimilarity": TokenSimilarity(p[0], p[1]),
			"EditSimilarity":  EditSimilarity(p[0], p[1]),
		} {
			if sim < 0.0 || sim > 1.0 {
				t.Errorf("%s(%q, %q) = %v, out of [0, 1]", name, p[0], p[1], sim)
			}
		}
	}
}
