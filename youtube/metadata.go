package youtube

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// VideoMetadata contains display metadata about a video from the
// YouTube Data API. It enriches CLI and API output; the resolution
// pipeline itself never depends on it.
type VideoMetadata struct {
	// ID is the YouTube video ID.
	ID string `json:"id"`
	// Title is the video title.
	Title string `json:"title"`
	// ChannelID is the uploading channel's ID.
	ChannelID string `json:"channel_id"`
	// ChannelTitle is the uploading channel's display name.
	ChannelTitle string `json:"channel_title"`
	// PublishedAt is the video's publish timestamp.
	PublishedAt time.Time `json:"published_at"`
	// Duration is the video length.
	Duration time.Duration `json:"duration"`
	// ViewCount is the total number of views.
	ViewCount uint64 `json:"view_count"`
}

// MetadataClient looks up video metadata through YouTube Data API v3.
// It requires an API key and is entirely optional.
type MetadataClient struct {
	service *ytapi.Service
}

// NewMetadataClient creates a Data API-backed metadata client.
func NewMetadataClient(ctx context.Context, apiKey string) (*MetadataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &MetadataClient{service: service}, nil
}

// Lookup fetches metadata for a video ID. A video the API does not
// return at all is reported as KindVideoUnavailable, which doubles as
// an existence probe for diagnostics.
func (m *MetadataClient) Lookup(ctx context.Context, videoID string) (*VideoMetadata, error) {
	call := m.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		if strings.Contains(err.Error(), "quotaExceeded") {
			log.Printf("youtube: metadata lookup for %s hit API quota", videoID)
		}
		return nil, fmt.Errorf("videos.list %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, newError(KindVideoUnavailable, videoID, ErrVideoUnavailable)
	}

	item := resp.Items[0]
	meta := &VideoMetadata{ID: videoID}

	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.ChannelID = item.Snippet.ChannelId
		meta.ChannelTitle = item.Snippet.ChannelTitle
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			meta.PublishedAt = t
		}
	}
	if item.ContentDetails != nil {
		meta.Duration = parseISO8601Duration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		meta.ViewCount = item.Statistics.ViewCount
	}

	return meta, nil
}

var iso8601DurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts Data API durations like "PT4M13S" to a
// time.Duration. Unparseable input yields zero.
func parseISO8601Duration(s string) time.Duration {
	m := iso8601DurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	var d time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			continue
		}
		d += time.Duration(n) * unit
	}
	return d
}
