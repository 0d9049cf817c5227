package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	httpclient "ytscribe/http"
)

// Cue is one timed caption line. Start and Duration are seconds.
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

var markupTagPattern = regexp.MustCompile(`(?i)<[^>]*>`)

// CueClient materializes the cue sequence for a selected track.
type CueClient struct {
	client *httpclient.Client
}

// NewCueClient creates a cue client on top of the shared HTTP client.
func NewCueClient(client *httpclient.Client) *CueClient {
	return &CueClient{client: client}
}

// FetchCues retrieves and parses the timedtext document for track.
// Failures here mean captions were known to exist but could not be
// retrieved, and are reported as KindFetchFailed (KindRateLimited when
// the backend is refusing requests).
func (c *CueClient) FetchCues(ctx context.Context, track *Track, ref VideoRef) ([]Cue, error) {
	if track == nil || track.baseURL == "" {
		return nil, newError(KindFetchFailed, ref.Input,
			errors.New("track has no cue document URL"))
	}

	resp, err := c.client.Get(ctx, track.baseURL)
	if err != nil {
		var rateErr *httpclient.RateLimitError
		if errors.As(err, &rateErr) {
			return nil, newError(KindRateLimited, ref.Input, err)
		}
		return nil, newError(KindFetchFailed, ref.Input, err)
	}

	cues, err := parseCues(resp.Body)
	if err != nil {
		return nil, newError(KindFetchFailed, ref.Input, err)
	}
	return cues, nil
}

// parseCues decodes a timedtext XML document into cues. Markup inside
// cue text is stripped, entities are unescaped, and cues that are empty
// after cleanup are dropped.
func parseCues(data []byte) ([]Cue, error) {
	var doc transcriptXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	cues := make([]Cue, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := html.UnescapeString(markupTagPattern.ReplaceAllString(t.Text, ""))
		if strings.TrimSpace(text) == "" {
			continue
		}
		cues = append(cues, Cue{
			Start:    parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
			Text:     text,
		})
	}
	return cues, nil
}

// parseSeconds converts a timedtext attribute to seconds, tolerating
// absent or malformed values.
func parseSeconds(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Flatten joins cue texts in order into one line of prose. Whitespace
// runs inside a cue collapse to single spaces, cues are separated by
// single spaces, and punctuation passes through untouched.
func Flatten(cues []Cue) string {
	parts := make([]string, 0, len(cues))
	for _, cue := range cues {
		fields := strings.Fields(cue.Text)
		if len(fields) == 0 {
			continue
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, " ")
}

// transcriptXML mirrors the timedtext document shape:
// <transcript><text start="1.2" dur="3.4">line</text>...</transcript>
type transcriptXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}
