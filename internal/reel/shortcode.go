// Package reel resolves Instagram reel links: extracting the stable shortcode
// from a URL, retrieving the reel's metadata (creator, caption, duration,
// publish date), and downloading the underlying video to local disk.
package reel

import (
	"errors"
	"regexp"
)

// LinkMarker is the substring that identifies a message as containing a reel link.
const LinkMarker = "instagram.com/reel"

// ErrNoShortcode indicates the input did not match the expected reel URL shape.
var ErrNoShortcode = errors.New("no reel shortcode in URL")

var shortcodePattern = regexp.MustCompile(`https://www\.instagram\.com/reel/([a-zA-Z0-9_-]+)`)

// ExtractShortcode returns the shortcode embedded in a reel URL.
// Returns ErrNoShortcode when the text does not contain a matching URL.
func ExtractShortcode(text string) (string, error) {
	match := shortcodePattern.FindStringSubmatch(text)
	if match == nil {
		return "", ErrNoShortcode
	}
	return match[1], nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// safeFilename replaces characters outside [a-zA-Z0-9_-] with underscores.
func safeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
