package youtube

import (
	"errors"
	"fmt"
)

// Sentinel errors for transcript resolution. Each corresponds to one
// failure kind; use errors.Is() to test for them regardless of wrapping.
var (
	ErrInvalidInput        = errors.New("youtube: not a recognized YouTube URL or video ID")
	ErrTranscriptsDisabled = errors.New("youtube: transcripts are disabled for this video")
	ErrVideoUnavailable    = errors.New("youtube: video is unavailable")
	ErrNoTranscript        = errors.New("youtube: no transcript available")
	ErrRateLimited         = errors.New("youtube: rate limited")
	ErrNetwork             = errors.New("youtube: network failure")
	ErrFetchFailed         = errors.New("youtube: transcript fetch failed")
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindInvalidInput means the input is not a supported URL shape or a
	// well-formed video ID.
	KindInvalidInput Kind = iota
	// KindTranscriptsDisabled means captions are turned off for the video.
	KindTranscriptsDisabled
	// KindVideoUnavailable means the video is private, deleted, or
	// region-restricted.
	KindVideoUnavailable
	// KindNoTranscript means the catalog was fetched but no track
	// satisfied any selection tier.
	KindNoTranscript
	// KindRateLimited means the captions backend is refusing requests
	// (reCAPTCHA interstitial or HTTP 429).
	KindRateLimited
	// KindNetwork means a transport-level failure reaching the backend
	// during the catalog stage.
	KindNetwork
	// KindFetchFailed means the catalog succeeded and a track was
	// selected, but materializing its cues failed.
	KindFetchFailed
)

// String returns a stable token for the kind, suitable for display and
// machine consumption (CLI output, API error_kind fields).
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid-input"
	case KindTranscriptsDisabled:
		return "transcripts-disabled"
	case KindVideoUnavailable:
		return "video-unavailable"
	case KindNoTranscript:
		return "no-transcript-available"
	case KindRateLimited:
		return "rate-limited"
	case KindNetwork:
		return "network-error"
	case KindFetchFailed:
		return "transcript-fetch-failed"
	default:
		return "unknown"
	}
}

// sentinel returns the sentinel error corresponding to the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindTranscriptsDisabled:
		return ErrTranscriptsDisabled
	case KindVideoUnavailable:
		return ErrVideoUnavailable
	case KindNoTranscript:
		return ErrNoTranscript
	case KindRateLimited:
		return ErrRateLimited
	case KindNetwork:
		return ErrNetwork
	case KindFetchFailed:
		return ErrFetchFailed
	default:
		return nil
	}
}

// ResolutionError is the terminal failure value of a resolution. It
// carries the failure kind, the original input, and the underlying
// diagnostic where one exists.
//
// Use errors.As() to extract it:
//
//	var resErr *youtube.ResolutionError
//	if errors.As(err, &resErr) {
//		fmt.Printf("%s resolving %q: %v\n", resErr.Kind, resErr.Input, resErr.Err)
//	}
//
// Or match a specific kind with errors.Is() and the sentinels above:
//
//	if errors.Is(err, youtube.ErrTranscriptsDisabled) {
//		fmt.Println("no captions for this one")
//	}
type ResolutionError struct {
	// Kind is the failure classification.
	Kind Kind
	// Input is the raw input string the resolution started from.
	Input string
	// Err is the underlying diagnostic, if any.
	Err error
}

// Error returns a string representation of the resolution error.
func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("youtube: %s (%q): %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("youtube: %s (%q)", e.Kind, e.Input)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ResolutionError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind, so
// errors.Is(err, ErrVideoUnavailable) matches even when Err carries a
// different underlying cause.
func (e *ResolutionError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// newError builds a ResolutionError for the given kind and input. A
// cause that is just the kind's own sentinel adds nothing and is
// dropped; errors.Is still matches through ResolutionError.Is.
func newError(kind Kind, input string, err error) *ResolutionError {
	if err == kind.sentinel() {
		err = nil
	}
	return &ResolutionError{Kind: kind, Input: input, Err: err}
}
