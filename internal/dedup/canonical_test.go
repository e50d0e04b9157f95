package dedup

import "testing"

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "case normalization",
			in:   "HTTPS://EXAMPLE.COM",
			want: "https://example.com",
		},
		{
			name: "trailing slash removed",
			in:   "https://example.com/",
			want: "https://example.com",
		},
		{
			name: "only one trailing slash removed",
			in:   "https://example.com//",
			want: "https://example.com/",
		},
		{
			name: "www stripped after scheme",
			in:   "https://www.example.com",
			want: "https://example.com",
		},
		{
			name: "www stripped after http scheme",
			in:   "http://www.example.com",
			want: "http://example.com",
		},
		{
			name: "www in path preserved",
			in:   "https://example.com/www.backup",
			want: "https://example.com/www.backup",
		},
		{
			name: "default http port removed",
			in:   "http://example.com:80",
			want: "http://example.com",
		},
		{
			name: "default https port removed",
			in:   "https://example.com:443",
			want: "https://example.com",
		},
		{
			name: "non-default port preserved",
			in:   "http://example.com:8080",
			want: "http://example.com:8080",
		},
		{
			name: "https port 80 preserved",
			in:   "https://example.com:80",
			want: "https://example.com:80",
		},
		{
			name: "default port before path removed",
			in:   "http://example.com:80/docs",
			want: "http://example.com/docs",
		},
		{
			name: "utm parameters dropped",
			in:   "https://example.com?utm_source=google&utm_medium=cpc&utm_campaign=test",
			want: "https://example.com",
		},
		{
			name: "non-tracking parameters survive in order",
			in:   "https://example.com?page=1&utm_source=google&sort=date",
			want: "https://example.com?page=1&sort=date",
		},
		{
			name: "mixed tracking parameter kinds dropped",
			in:   "https://example.com?fbclid=123&gclid=456",
			want: "https://example.com",
		},
		{
			name: "tracking then semantic parameter",
			in:   "https://example.com?utm_source=x&page=1",
			want: "https://example.com?page=1",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: "",
		},
		{
			name: "no scheme passes through lower-cased",
			in:   "Example.COM/Path",
			want: "example.com/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalURL(tt.in); got != tt.want {
				t.Errorf("CanonicalURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Canonical forms are equality keys, so canonicalization must be a fixed
// point: canonicalizing a canonical form changes nothing.
func TestCanonicalURLIdempotent(t *testing.T) {
	inputs := []string{
		"HTTPS://WWW.EXAMPLE.COM/",
		"http://example.com:80/a?utm_source=x&b=1",
		"https://github.com?utm_source=google&utm_medium=cpc",
		"not a url at all",
	}
	for _, in := range inputs {
		once := CanonicalURL(in)
		twice := CanonicalURL(once)
		if once != twice {
			t.Errorf("CanonicalURL not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
