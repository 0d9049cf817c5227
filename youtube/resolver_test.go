package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newResolverBackend serves a watch page whose caption tracks point back
// at the same server's timedtext endpoint, one document per language.
func newResolverBackend(t *testing.T, timedtext map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			captions := fmt.Sprintf(`{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
				`{"baseUrl":"%s/api/timedtext?lang=en","name":{"simpleText":"English"},"languageCode":"en"},`+
				`{"baseUrl":"%s/api/timedtext?lang=de","name":{"simpleText":"German (auto-generated)"},"languageCode":"de","kind":"asr"}`+
				`]}}`, srv.URL, srv.URL)
			fmt.Fprint(w, watchPage(captions))
		case "/api/timedtext":
			doc, ok := timedtext[r.URL.Query().Get("lang")]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, doc)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	r, err := NewResolver(opts)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestResolver_Resolve(t *testing.T) {
	srv := newResolverBackend(t, map[string]string{
		"en": `<transcript><text start="0" dur="1">Hello</text><text start="1" dur="1">world.</text></transcript>`,
	})

	r := newTestResolver(t, Options{BaseURL: srv.URL})
	transcript, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", transcript.VideoID)
	assert.Equal(t, "en", transcript.Language)
	assert.False(t, transcript.Generated)
	assert.Equal(t, "Hello world.", transcript.Text)
	assert.Equal(t, 12, transcript.CharCount)

	// Resolving again against the same backend yields the same text.
	again, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, transcript.Text, again.Text)
}

func TestResolver_Resolve_CharCountIsRunes(t *testing.T) {
	srv := newResolverBackend(t, map[string]string{
		"en": `<transcript><text start="0" dur="1">f&amp;#252;nf</text></transcript>`,
	})

	r := newTestResolver(t, Options{BaseURL: srv.URL})
	transcript, err := r.Resolve(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "fünf", transcript.Text)
	assert.Equal(t, 4, transcript.CharCount)
}

func TestResolver_Resolve_LanguageOverride(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			captions := fmt.Sprintf(`{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
				`{"baseUrl":"%s/api/timedtext?lang=en","name":{"simpleText":"English"},"languageCode":"en"},`+
				`{"baseUrl":"%s/api/timedtext?lang=de","name":{"simpleText":"German"},"languageCode":"de"}`+
				`]}}`, srv.URL, srv.URL)
			fmt.Fprint(w, watchPage(captions))
		case "/api/timedtext":
			if r.URL.Query().Get("lang") == "de" {
				fmt.Fprint(w, `<transcript><text start="0" dur="1">deutscher Text</text></transcript>`)
				return
			}
			fmt.Fprint(w, `<transcript><text start="0" dur="1">english text</text></transcript>`)
		}
	}))
	defer srv.Close()

	r := newTestResolver(t, Options{BaseURL: srv.URL, Languages: []string{"en"}})
	transcript, err := r.Resolve(context.Background(), "dQw4w9WgXcQ", "de")
	require.NoError(t, err)

	assert.Equal(t, "de", transcript.Language)
	assert.False(t, transcript.Generated)
	assert.Equal(t, "deutscher Text", transcript.Text)
}

func TestResolver_Resolve_InvalidInput(t *testing.T) {
	r := newTestResolver(t, Options{BaseURL: "http://127.0.0.1:0"})
	_, err := r.Resolve(context.Background(), "definitely not a video")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "definitely not a video", resErr.Input)
}

func TestResolver_Resolve_NoTranscriptForEmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPage(`{"playerCaptionsTracklistRenderer":{"audioTracks":[]}}`))
	}))
	defer srv.Close()

	r := newTestResolver(t, Options{BaseURL: srv.URL})
	_, err := r.Resolve(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTranscript))
}

func TestResolver_Resolve_TranscriptsDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPage(""))
	}))
	defer srv.Close()

	r := newTestResolver(t, Options{BaseURL: srv.URL})
	_, err := r.Resolve(context.Background(), "dQw4w9WgXcQ")
	assert.True(t, errors.Is(err, ErrTranscriptsDisabled))
}

func TestResolver_ListTracks(t *testing.T) {
	srv := newResolverBackend(t, nil)

	r := newTestResolver(t, Options{BaseURL: srv.URL})
	tracks, err := r.ListTracks(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "en", tracks[0].Language)
	assert.False(t, tracks[0].Generated)
	assert.Equal(t, "de", tracks[1].Language)
	assert.True(t, tracks[1].Generated)
}
