package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TitleSync/internal/domain"
	"TitleSync/internal/ports"
)

// PageSource implements ports.TitleExtractor over serialized page snapshots.
// The markup is parsed exactly once per run; the structured-data locator
// runs first and the DOM fallback only when it finds nothing.
type PageSource struct {
	logger *slog.Logger
}

var _ ports.TitleExtractor = (*PageSource)(nil)

// NewPageSource wires the extraction facade.
func NewPageSource(logger *slog.Logger) *PageSource {
	return &PageSource{logger: logger}
}

// Extract produces exactly one raw record (structured preferred, DOM
// otherwise) plus the auxiliary region values.
func (p *PageSource) Extract(snapshot domain.PageSnapshot) (domain.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot.HTML))
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("parse page markup: %w", err)
	}

	ext := domain.Extraction{Aux: ScrapeAuxiliary(doc, p.logger)}

	if rec := LocateStructured(doc, p.logger); rec != nil {
		ext.Structured = rec
		return ext, nil
	}

	logDebug(p.logger, "no structured-data block, falling back to DOM scrape", "url", snapshot.URL)

	rec, err := ExtractDom(doc, p.logger)
	if err != nil {
		return domain.Extraction{}, err
	}
	ext.Dom = rec
	return ext, nil
}
