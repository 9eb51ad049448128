package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"TitleSync/internal/domain"
)

var (
	isoDurationExpr  = regexp.MustCompile(`^PT(\d+)M$`)
	freeDurationExpr = regexp.MustCompile(`(?:(\d+)\s*(?:h|ч)\.?)?\s*(?:(\d+)\s*(?:min|мин)\.?)?`)
	yearExpr         = regexp.MustCompile(`\b(\d{4})\b`)
	freeDateExpr     = regexp.MustCompile(`(\d{1,2})\s+(\S+)\s+(\d{4})`)
)

// monthTable resolves fold-cased source-locale month names (genitive form,
// as they appear in "<day> <month> <year>" strings) to month numbers.
var monthTable = map[string]int{
	"января":   1,
	"февраля":  2,
	"марта":    3,
	"апреля":   4,
	"мая":      5,
	"июня":     6,
	"июля":     7,
	"августа":  8,
	"сентября": 9,
	"октября":  10,
	"ноября":   11,
	"декабря":  12,
}

// Title converts one raw extraction into the canonical record. Missing
// optional fields never fail normalization; only an empty title does.
func Title(ext domain.Extraction, snapshot domain.PageSnapshot) (domain.ExtractedTitle, error) {
	out := domain.ExtractedTitle{
		SourceURL:  snapshot.URL,
		ExternalID: snapshot.ExternalID(),
	}

	switch {
	case ext.Structured != nil:
		fromStructured(&out, ext.Structured)
	case ext.Dom != nil:
		fromDom(&out, ext.Dom)
	default:
		return domain.ExtractedTitle{}, domain.ErrNoExtractableData
	}

	if out.Title == "" {
		return domain.ExtractedTitle{}, domain.ErrNoExtractableData
	}

	if r, ok := parseRating(ext.Aux.SecondaryRatingText); ok {
		out.SecondaryRating = r
	}
	if d, ok := parseFreeDate(ext.Aux.ReleaseDateText); ok {
		out.ReleaseDate = d
	}

	return out, nil
}

func fromStructured(out *domain.ExtractedTitle, rec *domain.RawStructuredRecord) {
	out.Title = decoded(rec.Name)
	out.OriginalTitle = decoded(rec.AlternateName)
	out.Description = decoded(rec.Description)
	out.PosterURL = trimmed(rec.Image)
	out.Genres = mapGenres(rec.Genres)
	out.Category = deriveCategory(rec.Genres, rec.IsSeries())
	out.Director = joinDirectors(rec.Directors)

	if m, ok := parseISODuration(rec.Duration); ok {
		out.DurationMinutes = m
	}
	if y, ok := parseYear(rec.DatePublished); ok {
		out.ReleaseYear = y
	}
	if r, ok := parseRating(rec.RatingValue); ok {
		out.Rating = r
	}
}

func fromDom(out *domain.ExtractedTitle, rec *domain.RawDomRecord) {
	out.Title = decoded(rec.Title)
	out.OriginalTitle = decoded(rec.OriginalTitle)
	out.Description = decoded(rec.Description)
	out.PosterURL = trimmed(rec.PosterURL)
	out.Genres = mapGenres(rec.GenreTexts)
	out.Category = deriveCategory(rec.GenreTexts, false)

	if m, ok := parseFreeDuration(rec.DurationText); ok {
		out.DurationMinutes = m
	}
	if y, ok := parseYear(rec.YearText); ok {
		out.ReleaseYear = y
	}
	if r, ok := parseRating(rec.RatingText); ok {
		out.Rating = r
	}
}

// deriveCategory inspects the raw (pre-mapping) genre names; animation wins
// over the series signal.
func deriveCategory(rawGenres []string, isSeries bool) domain.Category {
	if hasCartoonGenre(rawGenres) {
		return domain.CategoryCartoon
	}
	if isSeries {
		return domain.CategorySeries
	}
	return domain.CategoryFilm
}

// decoded trims and resolves HTML character entities. Decoding is a no-op
// on already-plain text, so repeated normalization is safe.
func decoded(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func joinDirectors(names []string) string {
	var kept []string
	for _, n := range names {
		if n = decoded(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

// parseISODuration handles the structured-data "PT<N>M" form. Zero or
// negative minutes mean absent, never a stored zero.
func parseISODuration(s string) (int, bool) {
	m := isoDurationExpr.FindStringSubmatch(trimmed(s))
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// parseFreeDuration handles the on-page "<H> h <M> min" form (either locale's
// unit tokens), summing hours into minutes.
func parseFreeDuration(s string) (int, bool) {
	s = trimmed(s)
	if s == "" {
		return 0, false
	}
	m := freeDurationExpr.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	total := hours*60 + minutes
	if total <= 0 {
		return 0, false
	}
	return total, true
}

// parseYear picks the first plausible four-digit year out of free text or an
// ISO date string.
func parseYear(s string) (int, bool) {
	m := yearExpr.FindStringSubmatch(trimmed(s))
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1888 || year > 2100 {
		return 0, false
	}
	return year, true
}

// parseFreeDate converts "<day> <month-name> <year>" into YYYY-MM-DD. An
// unknown month name or impossible day drops the date rather than guessing.
func parseFreeDate(s string) (string, bool) {
	m := freeDateExpr.FindStringSubmatch(trimmed(s))
	if m == nil {
		return "", false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	month, ok := monthTable[foldcase(m[2])]
	if !ok {
		return "", false
	}

	year, err := strconv.Atoi(m[3])
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// parseRating accepts decimal strings with either "." or "," separators and
// keeps only values inside the 0..10 scale.
func parseRating(s string) (float64, bool) {
	s = strings.ReplaceAll(trimmed(s), ",", ".")
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 || value > 10 {
		return 0, false
	}
	return value, true
}
