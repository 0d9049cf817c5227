package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"regexp"
	"strings"

	httpclient "ytscribe/http"
)

// DefaultBaseURL is the captions backend queried for track catalogs.
const DefaultBaseURL = "https://www.youtube.com"

const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
	playabilityMarker  = `"playabilityStatus":`
	recaptchaMarker    = `class="g-recaptcha"`
	consentFormMarker  = `action="https://consent.youtube.com/s"`
)

var consentTokenPattern = regexp.MustCompile(`name="v" value="(.*?)"`)

// CatalogClient retrieves the caption track catalog for a video from
// the watch page of the captions backend.
type CatalogClient struct {
	client  *httpclient.Client
	baseURL string
}

// NewCatalogClient creates a catalog client talking to baseURL. An
// empty baseURL selects the production backend.
func NewCatalogClient(client *httpclient.Client, baseURL string) *CatalogClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CatalogClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchCatalog performs one backend call and returns the ordered track
// catalog for the video. An empty catalog is a valid result; failures
// are reported as *ResolutionError with kind KindTranscriptsDisabled,
// KindVideoUnavailable, KindRateLimited, or KindNetwork.
func (c *CatalogClient) FetchCatalog(ctx context.Context, ref VideoRef) ([]Track, error) {
	html, err := c.fetchWatchHTML(ctx, ref)
	if err != nil {
		return nil, err
	}
	return c.parseCatalog(html, ref)
}

// fetchWatchHTML retrieves the watch page, answering a consent
// interstitial at most once.
func (c *CatalogClient) fetchWatchHTML(ctx context.Context, ref VideoRef) (string, error) {
	watchURL := c.watchURL(ref)

	body, err := c.get(ctx, watchURL, ref)
	if err != nil {
		return "", err
	}

	if strings.Contains(body, consentFormMarker) {
		log.Printf("youtube: answering consent interstitial for %s", ref.ID)
		if err := c.acceptConsent(body); err != nil {
			return "", newError(KindNetwork, ref.Input, err)
		}
		body, err = c.get(ctx, watchURL, ref)
		if err != nil {
			return "", err
		}
		if strings.Contains(body, consentFormMarker) {
			return "", newError(KindNetwork, ref.Input,
				errors.New("consent cookie was not accepted"))
		}
	}

	return body, nil
}

func (c *CatalogClient) get(ctx context.Context, url string, ref VideoRef) (string, error) {
	resp, err := c.client.Get(ctx, url)
	if err != nil {
		return "", wrapTransportError(err, ref)
	}
	return string(resp.Body), nil
}

// acceptConsent extracts the consent token from the interstitial form
// and stores the matching cookie on the client's session.
func (c *CatalogClient) acceptConsent(html string) error {
	m := consentTokenPattern.FindStringSubmatch(html)
	if m == nil {
		return errors.New("consent form without token")
	}
	return c.client.Session().SetCookie(c.baseURL, &nethttp.Cookie{
		Name:  "CONSENT",
		Value: "YES+" + m[1],
	})
}

// parseCatalog extracts the caption catalog JSON embedded in the watch
// page and maps it to tracks.
func (c *CatalogClient) parseCatalog(html string, ref VideoRef) ([]Track, error) {
	parts := strings.Split(html, captionsMarker)
	if len(parts) <= 1 {
		switch {
		case strings.Contains(html, recaptchaMarker):
			return nil, newError(KindRateLimited, ref.Input, ErrRateLimited)
		case !strings.Contains(html, playabilityMarker):
			return nil, newError(KindVideoUnavailable, ref.Input, ErrVideoUnavailable)
		default:
			return nil, newError(KindTranscriptsDisabled, ref.Input, ErrTranscriptsDisabled)
		}
	}

	raw, _, _ := strings.Cut(parts[1], videoDetailsMarker)
	raw = strings.ReplaceAll(raw, "\n", "")

	var payload captionsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, newError(KindNetwork, ref.Input,
			fmt.Errorf("parse captions payload: %w", err))
	}

	renderer := payload.PlayerCaptionsTracklistRenderer
	if renderer == nil {
		return nil, newError(KindTranscriptsDisabled, ref.Input, ErrTranscriptsDisabled)
	}

	tracks := make([]Track, 0, len(renderer.CaptionTracks))
	for _, ct := range renderer.CaptionTracks {
		tracks = append(tracks, Track{
			Language:  ct.LanguageCode,
			Name:      ct.Name.SimpleText,
			Generated: ct.Kind == "asr",
			baseURL:   ct.BaseURL,
		})
	}
	return tracks, nil
}

func (c *CatalogClient) watchURL(ref VideoRef) string {
	return c.baseURL + "/watch?v=" + ref.ID
}

// wrapTransportError maps client errors to resolution errors: bot
// detection and HTTP 429 become KindRateLimited, everything else at
// this stage is KindNetwork with the diagnostic preserved.
func wrapTransportError(err error, ref VideoRef) error {
	var rateErr *httpclient.RateLimitError
	if errors.As(err, &rateErr) {
		return newError(KindRateLimited, ref.Input, err)
	}
	return newError(KindNetwork, ref.Input, err)
}

// captionsPayload mirrors the slice of player response JSON between the
// captions marker and the video details that follow it.
type captionsPayload struct {
	PlayerCaptionsTracklistRenderer *tracklistRenderer `json:"playerCaptionsTracklistRenderer"`
}

type tracklistRenderer struct {
	CaptionTracks []captionTrack `json:"captionTracks"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         trackName `json:"name"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"`
}

type trackName struct {
	SimpleText string `json:"simpleText"`
}
