package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TitleSync/internal/domain"
)

// strategy names one selector attempt for a field; chains run in order until
// the first non-empty result.
type strategy struct {
	name     string
	selector string
}

var (
	titleStrategies = []strategy{
		{"itemprop-name", `h1[itemprop="name"]`},
		{"page-header", `h1.movie-title`},
	}
	originalTitleStrategies = []strategy{
		{"itemprop-alternative", `[itemprop="alternativeHeadline"]`},
		{"original-title", `.original-title`},
	}
	yearStrategies = []strategy{
		{"title-year", `.movie-title .year`},
		{"info-year", `table.info td.year`},
	}
	ratingStrategies = []strategy{
		{"rating-value", `.rating .value`},
		{"rating-ball", `span.rating-ball`},
	}
	descriptionStrategies = []strategy{
		{"itemprop-description", `[itemprop="description"]`},
		{"synopsis", `.synopsis`},
	}
	durationStrategies = []strategy{
		{"info-duration", `table.info td.duration`},
		{"duration", `.duration`},
	}
	genreStrategies = []strategy{
		{"genre-links", `.genres a`},
		{"info-genre-links", `table.info td.genre a`},
	}
	posterStrategies = []strategy{
		{"poster-img", `img.poster`},
		{"film-img", `.film-img img`},
	}
	secondaryRatingStrategies = []strategy{
		{"imdb-value", `.rating-imdb .value`},
		{"imdb", `span.imdb`},
	}
	releaseDateStrategies = []strategy{
		{"release-date", `.release-date`},
		{"info-premiere", `table.info td.premiere`},
	}
)

// ExtractDom scrapes the visible markup when no structured-data block
// qualifies. The title is mandatory; every other field is best effort.
func ExtractDom(doc *goquery.Document, logger *slog.Logger) (*domain.RawDomRecord, error) {
	title := firstOwnText(doc, titleStrategies, "title", logger)
	if title == "" {
		return nil, domain.ErrNoExtractableData
	}

	rec := &domain.RawDomRecord{
		Title:         title,
		OriginalTitle: firstText(doc, originalTitleStrategies, "originalTitle", logger),
		YearText:      firstText(doc, yearStrategies, "year", logger),
		RatingText:    firstText(doc, ratingStrategies, "rating", logger),
		Description:   firstText(doc, descriptionStrategies, "description", logger),
		DurationText:  firstText(doc, durationStrategies, "duration", logger),
		GenreTexts:    allTexts(doc, genreStrategies, "genres", logger),
		PosterURL:     firstAttr(doc, posterStrategies, "src", "poster", logger),
	}
	return rec, nil
}

// ScrapeAuxiliary reads the two page regions the structured-data block never
// covers. It runs on every extraction, whichever path produced the record.
func ScrapeAuxiliary(doc *goquery.Document, logger *slog.Logger) domain.Auxiliary {
	return domain.Auxiliary{
		SecondaryRatingText: firstText(doc, secondaryRatingStrategies, "secondaryRating", logger),
		ReleaseDateText:     firstText(doc, releaseDateStrategies, "releaseDate", logger),
	}
}

// firstOwnText reads only the element's own text nodes, so a title element
// that nests the year span (or other annotations) yields a clean title.
func firstOwnText(doc *goquery.Document, chain []strategy, field string, logger *slog.Logger) string {
	for _, st := range chain {
		sel := doc.Find(st.selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Contents().Not("*").Text())
		if text == "" {
			continue
		}
		logDebug(logger, "selector strategy matched", "field", field, "strategy", st.name)
		return text
	}
	return ""
}

func firstText(doc *goquery.Document, chain []strategy, field string, logger *slog.Logger) string {
	for _, st := range chain {
		text := strings.TrimSpace(doc.Find(st.selector).First().Text())
		if text == "" {
			continue
		}
		logDebug(logger, "selector strategy matched", "field", field, "strategy", st.name)
		return text
	}
	return ""
}

// allTexts collects every non-empty match of the first strategy that yields
// anything; later strategies are fallbacks, not additions.
func allTexts(doc *goquery.Document, chain []strategy, field string, logger *slog.Logger) []string {
	for _, st := range chain {
		var texts []string
		doc.Find(st.selector).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		if len(texts) == 0 {
			continue
		}
		logDebug(logger, "selector strategy matched", "field", field, "strategy", st.name, "count", len(texts))
		return texts
	}
	return nil
}

func firstAttr(doc *goquery.Document, chain []strategy, attr, field string, logger *slog.Logger) string {
	for _, st := range chain {
		value, ok := doc.Find(st.selector).First().Attr(attr)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		logDebug(logger, "selector strategy matched", "field", field, "strategy", st.name)
		return value
	}
	return ""
}

func logDebug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func logWarn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
