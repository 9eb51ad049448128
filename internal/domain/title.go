package domain

// Category classifies a title; derived during normalization, never scraped
// verbatim from the page.
type Category string

const (
	CategoryFilm    Category = "film"
	CategorySeries  Category = "series"
	CategoryCartoon Category = "cartoon"
)

// RawStructuredRecord is the creative-work document found in an embedded
// structured-data block. Transient; lives only inside one extraction run.
type RawStructuredRecord struct {
	Type          string
	Name          string
	AlternateName string
	Description   string
	Genres        []string
	Directors     []string
	Duration      string
	DatePublished string
	RatingValue   string
	Image         string
}

// IsSeries reports whether the block declared a series type.
func (r *RawStructuredRecord) IsSeries() bool {
	return r.Type == "TVSeries"
}

// RawDomRecord holds the loosely-typed strings scraped from visible markup
// when no structured-data block qualifies. Same lifecycle as
// RawStructuredRecord; a run produces at most one of the two.
type RawDomRecord struct {
	Title         string
	OriginalTitle string
	YearText      string
	RatingText    string
	Description   string
	DurationText  string
	GenreTexts    []string
	PosterURL     string
}

// Auxiliary carries the two values scraped from page regions the
// structured-data block never covers. It is collected on every run,
// regardless of which extractor produced the primary record.
type Auxiliary struct {
	SecondaryRatingText string
	ReleaseDateText     string
}

// Extraction bundles one run's raw output: exactly one of Structured/Dom is
// non-nil, plus the auxiliary region values.
type Extraction struct {
	Structured *RawStructuredRecord
	Dom        *RawDomRecord
	Aux        Auxiliary
}

// ExtractedTitle is the canonical record the pipeline produces. Title is the
// only mandatory field; zero values mean "absent" everywhere else.
type ExtractedTitle struct {
	SourceURL       string   `json:"sourceUrl"`
	ExternalID      string   `json:"externalId,omitempty"`
	Title           string   `json:"title"`
	OriginalTitle   string   `json:"originalTitle,omitempty"`
	Description     string   `json:"description,omitempty"`
	ReleaseYear     int      `json:"releaseYear,omitempty"`
	ReleaseDate     string   `json:"releaseDate,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	SecondaryRating float64  `json:"secondaryRating,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Director        string   `json:"director,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	PosterURL       string   `json:"posterUrl,omitempty"`
	Category        Category `json:"category"`
}

// Fields maps the extracted title onto the exact payload the remote store
// accepts. Store-only fields (watch status, personal rating, review body)
// are never part of this set, so writes leave them untouched.
func (t ExtractedTitle) Fields() TitleFields {
	return TitleFields{
		SourceURL:       t.SourceURL,
		ExternalID:      t.ExternalID,
		Title:           t.Title,
		OriginalTitle:   t.OriginalTitle,
		Description:     t.Description,
		ReleaseYear:     t.ReleaseYear,
		ReleaseDate:     t.ReleaseDate,
		Rating:          t.Rating,
		SecondaryRating: t.SecondaryRating,
		Genres:          t.Genres,
		Director:        t.Director,
		DurationMinutes: t.DurationMinutes,
		PosterURL:       t.PosterURL,
		Category:        t.Category,
	}
}

// TitleFields is the write payload for create/update calls against the
// remote store. Every field of the shared set is always serialized, even
// when absent: freshly extracted data is authoritative for this set, so an
// update must clear store values the page no longer carries. Store-only
// fields stay untouched by never appearing here at all.
type TitleFields struct {
	SourceURL       string   `json:"sourceUrl"`
	ExternalID      string   `json:"externalId"`
	Title           string   `json:"title"`
	OriginalTitle   string   `json:"originalTitle"`
	Description     string   `json:"description"`
	ReleaseYear     int      `json:"releaseYear"`
	ReleaseDate     string   `json:"releaseDate"`
	Rating          float64  `json:"rating"`
	SecondaryRating float64  `json:"secondaryRating"`
	Genres          []string `json:"genres"`
	Director        string   `json:"director"`
	DurationMinutes int      `json:"durationMinutes"`
	PosterURL       string   `json:"posterUrl"`
	Category        Category `json:"category"`
}

// RemoteRecord is a record as the remote store returns it: the shared field
// set plus the store's own identifier.
type RemoteRecord struct {
	ID string `json:"id"`
	TitleFields
}
