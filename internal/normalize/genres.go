package normalize

import "golang.org/x/text/cases"

// genreTable maps fold-cased source-locale genre names to the canonical tags
// the remote store understands. Unmapped names are dropped during
// normalization; raw locale strings never leave this package.
var genreTable = map[string]string{
	"драма":           "drama",
	"комедия":         "comedy",
	"боевик":          "action",
	"триллер":         "thriller",
	"ужасы":           "horror",
	"фантастика":      "sci-fi",
	"фэнтези":         "fantasy",
	"мелодрама":       "romance",
	"детектив":        "detective",
	"криминал":        "crime",
	"приключения":     "adventure",
	"семейный":        "family",
	"мультфильм":      "animation",
	"аниме":           "anime",
	"мюзикл":          "musical",
	"музыка":          "music",
	"биография":       "biography",
	"документальный":  "documentary",
	"история":         "history",
	"военный":         "war",
	"вестерн":         "western",
	"спорт":           "sport",
	"короткометражка": "short",
	"детский":         "kids",
	"нуар":            "noir",
}

// cartoonGenres are the source-locale terms whose presence forces the
// cartoon category, ahead of any series signal.
var cartoonGenres = map[string]struct{}{
	"мультфильм": {},
	"аниме":      {},
}

// foldcase builds a fresh Caser per call; x/text Casers are stateful and
// must not be shared between goroutines.
func foldcase(s string) string {
	return cases.Fold().String(s)
}

// mapGenres converts raw genre names into the canonical tag set, preserving
// first-seen order and dropping duplicates and unknown names. Names are
// entity-decoded before lookup, like every other scraped text field.
func mapGenres(raw []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, g := range raw {
		tag, ok := genreTable[foldcase(decoded(g))]
		if !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// hasCartoonGenre checks raw (pre-mapping) genre names for animation terms.
func hasCartoonGenre(raw []string) bool {
	for _, g := range raw {
		if _, ok := cartoonGenres[foldcase(decoded(g))]; ok {
			return true
		}
	}
	return false
}
