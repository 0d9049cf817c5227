package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url without scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with leading params", "https://www.youtube.com/watch?list=PLabc&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with trailing params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=30s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile url", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id full alphabet", "A1b2-C3d_4e", "A1b2-C3d_4e"},
		{"surrounding whitespace", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseVideoID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref.ID)
			assert.Equal(t, tt.input, ref.Input)
		})
	}
}

func TestParseVideoID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "dQw4w9WgXc"},
		{"too long", "dQw4w9WgXcQQ"},
		{"bad alphabet", "dQw4w9WgXc!"},
		{"channel url", "https://www.youtube.com/channel/UC38IQsAvIsxxjztdMZQtwHA"},
		{"playlist url", "https://www.youtube.com/playlist?list=PL590L5WQmH8dp"},
		{"watch url without id", "https://www.youtube.com/watch?list=PLabc"},
		{"watch url with short id", "https://www.youtube.com/watch?v=short"},
		{"unrelated host", "https://example.com/watch?v=dQw4w9WgXcQ"},
		{"random text", "not a video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVideoID(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, KindInvalidInput, resErr.Kind)
			assert.Equal(t, tt.input, resErr.Input)
		})
	}
}

func TestVideoRef_WatchURL(t *testing.T) {
	ref, err := ParseVideoID("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ref.WatchURL())
}
