package reel

import (
	"errors"
	"testing"
)

func TestExtractShortcode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain url", "https://www.instagram.com/reel/ABC123", "ABC123"},
		{"trailing slash", "https://www.instagram.com/reel/ABC123/", "ABC123"},
		{"query params", "https://www.instagram.com/reel/C9x_-yz/?igsh=abc", "C9x_-yz"},
		{"embedded in message", "check this out https://www.instagram.com/reel/DqT0FGhIJKL so cool", "DqT0FGhIJKL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractShortcode(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractShortcodeNoMatch(t *testing.T) {
	inputs := []string{
		"",
		"hello there",
		"https://www.instagram.com/p/ABC123",
		"https://instagram.com/reel/ABC123",    // missing www
		"http://www.instagram.com/reel/ABC123", // not https
	}
	for _, in := range inputs {
		if _, err := ExtractShortcode(in); !errors.Is(err, ErrNoShortcode) {
			t.Errorf("ExtractShortcode(%q): expected ErrNoShortcode, got %v", in, err)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain_name-1", "plain_name-1"},
		{"has spaces", "has_spaces"},
		{"emoji🎬and/slash", "emoji_and_slash"},
	}
	for _, tt := range tests {
		if got := safeFilename(tt.in); got != tt.want {
			t.Errorf("safeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
