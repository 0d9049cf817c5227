package youtube

// DefaultLanguage is the fallback language code used by track selection
// when no explicit default is configured.
const DefaultLanguage = "en"

// Track describes one available caption track as reported by the
// catalog. Tracks are read-only descriptors; they hold no cue text
// until fetched.
type Track struct {
	// Language is the track's language code (e.g. "en").
	Language string `json:"language"`
	// Name is the human-readable language name (e.g. "English").
	Name string `json:"name"`
	// Generated reports whether the track is auto-generated (speech
	// recognition) rather than manually authored.
	Generated bool `json:"generated"`

	// baseURL is the cue endpoint supplied by the catalog.
	baseURL string
}

// SelectTrack picks exactly one track from the catalog, or reports that
// no acceptable track exists.
//
// Manual tracks always win over auto-generated ones. Within each kind,
// the requested languages are tried in order, then defaultLang (if not
// already tried), then the first track of that kind in catalog order.
func SelectTrack(catalog []Track, requested []string, defaultLang string) (*Track, error) {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	langs := make([]string, 0, len(requested)+1)
	langs = append(langs, requested...)
	if !containsLang(langs, defaultLang) {
		langs = append(langs, defaultLang)
	}

	if t := matchTrack(catalog, langs, false); t != nil {
		return t, nil
	}
	if t := matchTrack(catalog, langs, true); t != nil {
		return t, nil
	}
	return nil, ErrNoTranscript
}

// matchTrack returns the first track of the given kind matching the
// language preference order, falling back to the first track of that
// kind in catalog order. Returns nil when no track of the kind exists.
func matchTrack(catalog []Track, langs []string, generated bool) *Track {
	for _, lang := range langs {
		for i := range catalog {
			if catalog[i].Generated == generated && catalog[i].Language == lang {
				return &catalog[i]
			}
		}
	}
	for i := range catalog {
		if catalog[i].Generated == generated {
			return &catalog[i]
		}
	}
	return nil
}

func containsLang(langs []string, lang string) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}
