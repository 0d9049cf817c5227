package youtube

import (
	"context"
	"log"
	"unicode/utf8"

	httpclient "ytscribe/http"
)

// Transcript is the terminal result of a successful resolution.
type Transcript struct {
	// VideoID is the canonical 11-character video ID.
	VideoID string `json:"video_id"`
	// Language is the language code of the track the text came from.
	Language string `json:"language"`
	// Generated reports whether the track was auto-generated.
	Generated bool `json:"generated"`
	// Text is the flattened transcript prose.
	Text string `json:"text"`
	// CharCount is the number of characters (runes) in Text.
	CharCount int `json:"char_count"`
}

// Options configures a Resolver. The zero value resolves English
// transcripts from the production backend with default HTTP settings.
type Options struct {
	// Languages is the requested language sequence in preference order.
	// Empty means the default language only.
	Languages []string
	// DefaultLanguage is the fallback language code. Empty means "en".
	DefaultLanguage string
	// BaseURL overrides the captions backend. Empty means production.
	BaseURL string
	// HTTP configures the underlying HTTP client. Nil means defaults.
	HTTP *httpclient.Config
}

// Resolver turns a YouTube URL or video ID into a flattened transcript.
// Configuration is fixed at construction; each Resolve call runs one
// sequential pipeline and shares nothing with concurrent calls, so a
// single Resolver is safe for concurrent use.
type Resolver struct {
	opts    Options
	client  *httpclient.Client
	catalog *CatalogClient
	cues    *CueClient
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts Options) (*Resolver, error) {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = DefaultLanguage
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{opts.DefaultLanguage}
	}

	client, err := httpclient.New(opts.HTTP)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		opts:    opts,
		client:  client,
		catalog: NewCatalogClient(client, opts.BaseURL),
		cues:    NewCueClient(client),
	}, nil
}

// Resolve runs the full pipeline: normalize the input, fetch the track
// catalog, select the best track, fetch and flatten its cues, and
// assemble the result. Any failure surfaces as a *ResolutionError; on
// success the returned Transcript is complete.
//
// When languages are given they override the configured request
// sequence for this call only.
func (r *Resolver) Resolve(ctx context.Context, input string, languages ...string) (*Transcript, error) {
	ref, err := ParseVideoID(input)
	if err != nil {
		return nil, err
	}

	catalog, err := r.catalog.FetchCatalog(ctx, *ref)
	if err != nil {
		return nil, err
	}

	requested := r.opts.Languages
	if len(languages) > 0 {
		requested = languages
	}

	track, err := SelectTrack(catalog, requested, r.opts.DefaultLanguage)
	if err != nil {
		return nil, newError(KindNoTranscript, ref.Input, err)
	}

	cues, err := r.cues.FetchCues(ctx, track, *ref)
	if err != nil {
		return nil, err
	}

	result := assemble(*ref, track, Flatten(cues))
	log.Printf("youtube: resolved %s (%s, generated=%t, %d chars)",
		result.VideoID, result.Language, result.Generated, result.CharCount)
	return result, nil
}

// ListTracks normalizes the input and returns the video's track catalog
// without materializing any cues.
func (r *Resolver) ListTracks(ctx context.Context, input string) ([]Track, error) {
	ref, err := ParseVideoID(input)
	if err != nil {
		return nil, err
	}
	return r.catalog.FetchCatalog(ctx, *ref)
}

// Close releases the resolver's HTTP resources.
func (r *Resolver) Close() error {
	return r.client.Close()
}

// assemble builds the Transcript from pipeline outputs. It cannot fail;
// all failure surfaces upstream of it.
func assemble(ref VideoRef, track *Track, text string) *Transcript {
	return &Transcript{
		VideoID:   ref.ID,
		Language:  track.Language,
		Generated: track.Generated,
		Text:      text,
		CharCount: utf8.RuneCountInString(text),
	}
}
