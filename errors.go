package ytscribe

import (
	"ytscribe/storage"
	"ytscribe/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytscribe.ErrNoTranscript) {
//		fmt.Println("No transcript for this video")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var resErr *ytscribe.ResolutionError
//	if errors.As(err, &resErr) {
//		fmt.Printf("%s resolving %q: %v\n", resErr.Kind, resErr.Input, resErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// ResolutionError is the terminal failure value of a resolution.
	ResolutionError = youtube.ResolutionError
	// Kind classifies a resolution failure.
	Kind = youtube.Kind
	// StorageError wraps errors during artifact persistence.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidInput indicates the input is not a supported URL or video ID.
	ErrInvalidInput = youtube.ErrInvalidInput
	// ErrTranscriptsDisabled indicates captions are turned off for the video.
	ErrTranscriptsDisabled = youtube.ErrTranscriptsDisabled
	// ErrVideoUnavailable indicates the video is private, deleted, or blocked.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
	// ErrNoTranscript indicates no track satisfied any selection tier.
	ErrNoTranscript = youtube.ErrNoTranscript
	// ErrRateLimited indicates the captions backend is refusing requests.
	ErrRateLimited = youtube.ErrRateLimited
	// ErrNetwork indicates a transport failure during the catalog stage.
	ErrNetwork = youtube.ErrNetwork
	// ErrFetchFailed indicates a selected track's cues could not be fetched.
	ErrFetchFailed = youtube.ErrFetchFailed

	// Storage errors
	// ErrNotFound indicates an artifact was not found in storage.
	ErrNotFound = storage.ErrNotFound
)
