package youtube

import (
	"regexp"
	"strings"
)

var (
	// videoIDPattern matches a canonical 11-character video ID.
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	// urlIDPattern extracts the ID segment from the supported URL shapes:
	// watch URLs (youtube.com and m.youtube.com, extra query parameters
	// ignored), youtu.be short links, and embed URLs. The captured token
	// is validated against videoIDPattern afterwards.
	urlIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#\s]*&)?v=|youtu\.be/|youtube\.com/embed/)([^&?#/\s]+)`)
)

// VideoRef is a validated video reference: the canonical ID plus the raw
// input it was derived from. Construction through ParseVideoID is the
// only place validation occurs.
type VideoRef struct {
	// ID is the canonical 11-character video ID.
	ID string
	// Input is the raw string the ID was derived from.
	Input string
}

// WatchURL returns the canonical watch page URL for this reference.
func (r *VideoRef) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + r.ID
}

// ParseVideoID normalizes a raw input string into a VideoRef. It accepts
// the four supported URL shapes and bare 11-character IDs; anything
// else, or an extracted token failing the ID alphabet/length check,
// yields an invalid-input ResolutionError. Purely syntactic: no network.
func ParseVideoID(input string) (*VideoRef, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, newError(KindInvalidInput, input, ErrInvalidInput)
	}

	if videoIDPattern.MatchString(trimmed) {
		return &VideoRef{ID: trimmed, Input: input}, nil
	}

	if m := urlIDPattern.FindStringSubmatch(trimmed); m != nil {
		if videoIDPattern.MatchString(m[1]) {
			return &VideoRef{ID: m[1], Input: input}, nil
		}
	}

	return nil, newError(KindInvalidInput, input, ErrInvalidInput)
}
