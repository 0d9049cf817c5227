package ytscribe

import (
	"context"

	"ytscribe/config"
	httpclient "ytscribe/http"
	"ytscribe/youtube"
)

// Type aliases for the main result and configuration types.
type (
	// Transcript is the terminal result of a successful resolution.
	Transcript = youtube.Transcript
	// Track describes one available caption track.
	Track = youtube.Track
	// Resolver runs the resolution pipeline.
	Resolver = youtube.Resolver
	// Options configures a Resolver.
	Options = youtube.Options
)

// Resolve turns a YouTube URL or video ID into a flattened transcript
// using default options. When languages are given they are the
// requested sequence, in preference order.
//
// For repeated resolutions construct one youtube.Resolver and reuse it.
func Resolve(ctx context.Context, input string, languages ...string) (*Transcript, error) {
	resolver, err := youtube.NewResolver(youtube.Options{Languages: languages})
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	return resolver.Resolve(ctx, input)
}

// ListTracks returns the caption tracks available for a video using
// default options.
func ListTracks(ctx context.Context, input string) ([]Track, error) {
	resolver, err := youtube.NewResolver(youtube.Options{})
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	return resolver.ListTracks(ctx, input)
}

// NewResolverFromConfig builds a Resolver from application config,
// mapping the HTTP, retry, and pacing settings onto the client.
func NewResolverFromConfig(cfg *config.Config) (*Resolver, error) {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTPTimeout
	httpCfg.Retry.MaxAttempts = cfg.MaxAttempts
	httpCfg.Retry.InitialInterval = cfg.InitialBackoff
	httpCfg.Retry.MaxInterval = cfg.MaxBackoff
	httpCfg.RateLimit.RequestsPerSecond = cfg.RequestsPerSecond
	if cfg.UserAgent != "" {
		httpCfg.Session.UserAgent = cfg.UserAgent
	}

	return youtube.NewResolver(youtube.Options{
		Languages:       cfg.Languages,
		DefaultLanguage: cfg.DefaultLanguage,
		HTTP:            httpCfg,
	})
}
