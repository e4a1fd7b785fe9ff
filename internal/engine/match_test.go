package engine

import "testing"

func TestExactMatch(t *testing.T) {
	cases := []struct {
		preferred, observed string
		want                bool
	}{
		{"App.exe", "App.exe", true},
		{"App.exe", "app.exe", false},
		{"App.exe", "Other.exe", false},
		{"", "", false},
		{"", "App.exe", false},
	}
	for _, tc := range cases {
		if got := ExactMatch(tc.preferred, tc.observed); got != tc.want {
			t.Fatalf("ExactMatch(%q, %q) = %v, want %v", tc.preferred, tc.observed, got, tc.want)
		}
	}
}

func TestFoldMatch(t *testing.T) {
	cases := []struct {
		preferred, observed string
		want                bool
	}{
		{"App.exe", "app.EXE", true},
		{"App.exe", "App.exe", true},
		{"App.exe", "Other.exe", false},
		{"", "", false},
	}
	for _, tc := range cases {
		if got := FoldMatch(tc.preferred, tc.observed); got != tc.want {
			t.Fatalf("FoldMatch(%q, %q) = %v, want %v", tc.preferred, tc.observed, got, tc.want)
		}
	}
}
