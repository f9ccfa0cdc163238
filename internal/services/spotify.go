package services

import (
	"regexp"

	"partyplanner/internal/domain"
)

// Spotify track IDs are 22 base62 characters. Guests paste references in three
// shapes; the first matching pattern wins and the stored form is always the
// reconstructed open.spotify.com URL, never the raw input.
var (
	trackURIPattern  = regexp.MustCompile(`^spotify:track:([a-zA-Z0-9]{22})$`)
	trackURLPattern  = regexp.MustCompile(`/track/([a-zA-Z0-9]{22})(?:[^a-zA-Z0-9]|$)`)
	trackBarePattern = regexp.MustCompile(`^[a-zA-Z0-9]{22}$`)
)

// NormalizeTrackURL canonicalizes a guest-entered track reference to
// "https://open.spotify.com/track/<id>". It accepts a spotify: URI, a web URL
// containing /track/<id>, or a bare 22-character ID, and returns
// ErrInvalidInput for anything else.
func NormalizeTrackURL(raw string) (string, error) {
	var id string
	switch {
	case trackURIPattern.MatchString(raw):
		id = trackURIPattern.FindStringSubmatch(raw)[1]
	case trackURLPattern.MatchString(raw):
		id = trackURLPattern.FindStringSubmatch(raw)[1]
	case trackBarePattern.MatchString(raw):
		id = raw
	default:
		return "", domain.ErrInvalidInput
	}
	return "https://open.spotify.com/track/" + id, nil
}
