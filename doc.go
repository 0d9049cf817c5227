// Package ytscribe resolves YouTube transcripts.
//
// It turns a YouTube URL or bare video ID into the flattened plain-text
// transcript of the video's best available caption track.
//
// Overview
//
// ytscribe provides high-level convenience functions for the most common operations:
//
//   - Resolve: Turn a URL or video ID into a flattened transcript
//   - ListTracks: List the caption tracks available for a video
//
// Resolution runs a fixed pipeline: the input is normalized to a video
// ID, the track catalog is fetched from the captions backend, one track
// is selected (manual tracks beat auto-generated ones, requested
// languages beat the default language beat anything else), its cues are
// fetched and flattened into a single line of prose, and the result is
// assembled with language, origin, and character count.
//
// Quick Start
//
// Resolve a transcript:
//
//	ctx := context.Background()
//	result, err := ytscribe.Resolve(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Text)
//
// Prefer specific languages:
//
//	result, err := ytscribe.Resolve(ctx, "dQw4w9WgXcQ", "de", "en")
//
// See what is available first:
//
//	tracks, err := ytscribe.ListTracks(ctx, "dQw4w9WgXcQ")
//	for _, t := range tracks {
//		fmt.Printf("%s generated=%v\n", t.Language, t.Generated)
//	}
//
// Configuration
//
// ytscribe uses a configuration system that loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytscribe.json or ~/.config/ytscribe/ytscribe.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTSCRIBE_LANGUAGES: Requested language codes, comma-separated
//   - YTSCRIBE_DEFAULT_LANGUAGE: Fallback language code
//   - YTSCRIBE_OUTPUT_DIR: Directory for transcript artifacts
//   - YTSCRIBE_HTTP_TIMEOUT: Per-request timeout for backend calls
//   - YTSCRIBE_USER_AGENT: User agent presented to the backend
//   - YTSCRIBE_MAX_ATTEMPTS: Tries per backend request (1 = no retry)
//   - YTSCRIBE_INITIAL_BACKOFF: Initial retry backoff duration
//   - YTSCRIBE_MAX_BACKOFF: Maximum retry backoff duration
//   - YTSCRIBE_REQUESTS_PER_SECOND: Outbound pacing (0 = unpaced)
//   - YTSCRIBE_YOUTUBE_API_KEY: Data API key for metadata lookups
//   - YTSCRIBE_LISTEN_ADDR: JSON API listen address
//
// Error Handling
//
// Every failure carries one of seven kinds, so callers can tell a
// malformed URL from a video without captions from a backend outage.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytscribe.ErrTranscriptsDisabled) {
//		fmt.Println("Captions are turned off for this video")
//	}
//
// Extracting wrapped error details:
//
//	var resErr *ytscribe.ResolutionError
//	if errors.As(err, &resErr) {
//		fmt.Printf("%s resolving %q: %v\n", resErr.Kind, resErr.Input, resErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: The resolution pipeline (normalizer, catalog, selection, cues)
//   - config: Configuration management
//   - storage: Transcript artifact persistence
//   - api: JSON HTTP front-end
//
// Example using the youtube package directly:
//
//	resolver, err := youtube.NewResolver(youtube.Options{
//		Languages: []string{"de", "en"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer resolver.Close()
//	result, err := resolver.Resolve(ctx, "dQw4w9WgXcQ")
//
package ytscribe
