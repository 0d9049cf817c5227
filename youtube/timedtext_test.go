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

	httpclient "ytscribe/http"
)

func TestParseCues(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="1.54">Hello &amp;amp; welcome</text>
  <text start="1.54" dur="2.2">to the &lt;i&gt;show&lt;/i&gt;</text>
  <text start="3.74" dur="0.5">&lt;i&gt;&lt;/i&gt;</text>
  <text start="4.24" dur="0.5">   </text>
  <text start="bogus" dur="">don&amp;#39;t stop</text>
</transcript>`

	cues, err := parseCues([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cues, 3)

	assert.Equal(t, "Hello & welcome", cues[0].Text)
	assert.Equal(t, 0.0, cues[0].Start)
	assert.Equal(t, 1.54, cues[0].Duration)

	assert.Equal(t, "to the show", cues[1].Text)
	assert.Equal(t, 1.54, cues[1].Start)

	assert.Equal(t, "don't stop", cues[2].Text)
	assert.Equal(t, 0.0, cues[2].Start)
	assert.Equal(t, 0.0, cues[2].Duration)
}

func TestParseCues_EmptyDocument(t *testing.T) {
	cues, err := parseCues([]byte(`<transcript></transcript>`))
	require.NoError(t, err)
	assert.Empty(t, cues)
}

func TestParseCues_MalformedDocument(t *testing.T) {
	_, err := parseCues([]byte(`<transcript><text`))
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		cues []Cue
		want string
	}{
		{
			name: "joins cues with single spaces",
			cues: []Cue{{Text: "Hello"}, {Text: "world."}},
			want: "Hello world.",
		},
		{
			name: "collapses internal whitespace",
			cues: []Cue{{Text: "Hello\n  world"}, {Text: "again\tand again"}},
			want: "Hello world again and again",
		},
		{
			name: "no cues",
			cues: nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.cues))
		})
	}
}

func newTestCueClient(t *testing.T) *CueClient {
	t.Helper()
	client, err := httpclient.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewCueClient(client)
}

func TestCueClient_FetchCues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="2">first cue</text><text start="2" dur="2">second cue</text></transcript>`)
	}))
	defer srv.Close()

	track := &Track{Language: "en", baseURL: srv.URL + "/api/timedtext"}
	cues, err := newTestCueClient(t).FetchCues(context.Background(), track, testRef(t, "dQw4w9WgXcQ"))
	require.NoError(t, err)
	require.Len(t, cues, 2)
	assert.Equal(t, "first cue", cues[0].Text)
	assert.Equal(t, 2.0, cues[1].Start)
}

func TestCueClient_FetchCues_Errors(t *testing.T) {
	t.Run("track without cue document", func(t *testing.T) {
		_, err := newTestCueClient(t).FetchCues(context.Background(), &Track{Language: "en"}, testRef(t, "dQw4w9WgXcQ"))
		assert.True(t, errors.Is(err, ErrFetchFailed))
	})

	t.Run("document gone", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		track := &Track{Language: "en", baseURL: srv.URL}
		_, err := newTestCueClient(t).FetchCues(context.Background(), track, testRef(t, "dQw4w9WgXcQ"))
		require.Error(t, err)

		var resErr *ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, KindFetchFailed, resErr.Kind)
	})

	t.Run("malformed document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not xml at all`)
		}))
		defer srv.Close()

		track := &Track{Language: "en", baseURL: srv.URL}
		_, err := newTestCueClient(t).FetchCues(context.Background(), track, testRef(t, "dQw4w9WgXcQ"))
		assert.True(t, errors.Is(err, ErrFetchFailed))
	})

	t.Run("rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		track := &Track{Language: "en", baseURL: srv.URL}
		_, err := newTestCueClient(t).FetchCues(context.Background(), track, testRef(t, "dQw4w9WgXcQ"))
		assert.True(t, errors.Is(err, ErrRateLimited))
	})
}
