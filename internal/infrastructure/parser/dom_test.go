package parser

import (
	"errors"
	"testing"

	"TitleSync/internal/domain"
)

const fallbackPage = `
<html><body>
  <h1 class="movie-title">Старый фильм <span class="year">1987</span></h1>
  <span itemprop="alternativeHeadline">The Old Film</span>
  <div class="synopsis">Описание фильма.</div>
  <table class="info">
    <tr><td class="duration">1 ч 43 мин</td></tr>
    <tr><td class="genre"><a href="/genre/drama/">драма</a><a href="/genre/crime/">криминал</a></td></tr>
  </table>
  <div class="rating"><span class="value">8,1</span></div>
  <div class="rating-imdb"><span class="value">7.9</span></div>
  <div class="release-date">12 марта 1987</div>
  <img class="poster" src="https://example.org/old.jpg"/>
</body></html>`

func TestExtractDomFields(t *testing.T) {
	t.Parallel()

	rec, err := ExtractDom(mustDocument(t, fallbackPage), nil)
	if err != nil {
		t.Fatalf("ExtractDom returned error: %v", err)
	}

	if rec.Title != "Старый фильм" {
		t.Fatalf("title must not absorb the nested year span, got %q", rec.Title)
	}
	if rec.YearText != "1987" {
		t.Fatalf("unexpected year text: %q", rec.YearText)
	}
	if rec.OriginalTitle != "The Old Film" {
		t.Fatalf("unexpected original title: %q", rec.OriginalTitle)
	}
	if rec.Description != "Описание фильма." {
		t.Fatalf("unexpected description: %q", rec.Description)
	}
	if rec.DurationText != "1 ч 43 мин" {
		t.Fatalf("unexpected duration text: %q", rec.DurationText)
	}
	if rec.RatingText != "8,1" {
		t.Fatalf("unexpected rating text: %q", rec.RatingText)
	}
	if len(rec.GenreTexts) != 2 || rec.GenreTexts[0] != "драма" || rec.GenreTexts[1] != "криминал" {
		t.Fatalf("unexpected genres: %v", rec.GenreTexts)
	}
	if rec.PosterURL != "https://example.org/old.jpg" {
		t.Fatalf("unexpected poster: %q", rec.PosterURL)
	}
}

func TestExtractDomTitleFallbackOrder(t *testing.T) {
	t.Parallel()

	html := `
	<h1 itemprop="name">Первичный заголовок</h1>
	<h1 class="movie-title">Запасной заголовок</h1>`

	rec, err := ExtractDom(mustDocument(t, html), nil)
	if err != nil {
		t.Fatalf("ExtractDom returned error: %v", err)
	}
	if rec.Title != "Первичный заголовок" {
		t.Fatalf("primary selector should win, got %q", rec.Title)
	}

	rec, err = ExtractDom(mustDocument(t, `<h1 class="movie-title">Запасной заголовок</h1>`), nil)
	if err != nil {
		t.Fatalf("ExtractDom returned error: %v", err)
	}
	if rec.Title != "Запасной заголовок" {
		t.Fatalf("fallback selector should win, got %q", rec.Title)
	}
}

func TestExtractDomTitleExcludesNestedMarkup(t *testing.T) {
	t.Parallel()

	html := `<h1 itemprop="name">Фильм <span class="year">2001</span></h1>`

	rec, err := ExtractDom(mustDocument(t, html), nil)
	if err != nil {
		t.Fatalf("ExtractDom returned error: %v", err)
	}
	if rec.Title != "Фильм" {
		t.Fatalf("expected the element's own text only, got %q", rec.Title)
	}
}

func TestExtractDomMissingTitleFails(t *testing.T) {
	t.Parallel()

	html := `<div class="synopsis">Только описание, заголовка нет.</div>`

	if _, err := ExtractDom(mustDocument(t, html), nil); !errors.Is(err, domain.ErrNoExtractableData) {
		t.Fatalf("expected ErrNoExtractableData, got %v", err)
	}
}

func TestScrapeAuxiliary(t *testing.T) {
	t.Parallel()

	aux := ScrapeAuxiliary(mustDocument(t, fallbackPage), nil)
	if aux.SecondaryRatingText != "7.9" {
		t.Fatalf("unexpected secondary rating text: %q", aux.SecondaryRatingText)
	}
	if aux.ReleaseDateText != "12 марта 1987" {
		t.Fatalf("unexpected release date text: %q", aux.ReleaseDateText)
	}
}

func TestScrapeAuxiliaryAbsentRegions(t *testing.T) {
	t.Parallel()

	aux := ScrapeAuxiliary(mustDocument(t, `<h1 itemprop="name">Фильм</h1>`), nil)
	if aux.SecondaryRatingText != "" || aux.ReleaseDateText != "" {
		t.Fatalf("expected empty auxiliary, got %+v", aux)
	}
}
