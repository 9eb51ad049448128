package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"TitleSync/internal/domain"
)

const structuredBlockSelector = `script[type="application/ld+json"]`

// LocateStructured scans every embedded structured-data block and returns
// the first creative-work document typed Movie or TVSeries. Malformed blocks
// are logged and skipped; nil means no block on the page qualifies.
func LocateStructured(doc *goquery.Document, logger *slog.Logger) *domain.RawStructuredRecord {
	var found *domain.RawStructuredRecord

	doc.Find(structuredBlockSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		docs, err := decodeBlock([]byte(sel.Text()))
		if err != nil {
			logWarn(logger, "skipping malformed structured-data block", "index", i, "error", err)
			return true
		}

		for _, d := range docs {
			if !d.qualifies() {
				continue
			}
			found = d.toRecord()
			logDebug(logger, "structured-data block matched", "index", i, "type", found.Type)
			return false
		}
		return true
	})

	return found
}

// decodeBlock accepts either a single document or an array of documents per
// block, as both shapes occur in the wild.
func decodeBlock(raw []byte) ([]ldDocument, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty block")
	}

	if raw[0] == '[' {
		var docs []ldDocument
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, fmt.Errorf("decode document array: %w", err)
		}
		return docs, nil
	}

	var single ldDocument
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return []ldDocument{single}, nil
}

// ldDocument mirrors the creative-work vocabulary with the loose typing real
// pages use: genre may be a string or a list, director a person object, a
// list, or a bare name, ratingValue a number or a string.
type ldDocument struct {
	Type            stringList `json:"@type"`
	Name            string     `json:"name"`
	AlternateName   string     `json:"alternateName"`
	Description     string     `json:"description"`
	Genre           stringList `json:"genre"`
	Director        personList `json:"director"`
	Duration        string     `json:"duration"`
	DatePublished   string     `json:"datePublished"`
	AggregateRating *ldRating  `json:"aggregateRating"`
	Image           stringList `json:"image"`
}

type ldRating struct {
	RatingValue numberText `json:"ratingValue"`
}

func (d ldDocument) qualifies() bool {
	for _, t := range d.Type {
		if t == "Movie" || t == "TVSeries" {
			return true
		}
	}
	return false
}

func (d ldDocument) toRecord() *domain.RawStructuredRecord {
	rec := &domain.RawStructuredRecord{
		Name:          d.Name,
		AlternateName: d.AlternateName,
		Description:   d.Description,
		Genres:        d.Genre,
		Directors:     d.Director,
		Duration:      d.Duration,
		DatePublished: d.DatePublished,
	}

	for _, t := range d.Type {
		if t == "Movie" || t == "TVSeries" {
			rec.Type = t
			break
		}
	}
	if d.AggregateRating != nil {
		rec.RatingValue = string(d.AggregateRating.RatingValue)
	}
	if len(d.Image) > 0 {
		rec.Image = d.Image[0]
	}
	return rec
}

// stringList decodes a JSON string or array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(raw []byte) error {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		*l = stringList{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return fmt.Errorf("string or string array expected: %w", err)
	}
	*l = stringList(many)
	return nil
}

// personList decodes director-shaped values: a bare name, a person object,
// or an array of either.
type personList []string

func (l *personList) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("decode person array: %w", err)
		}
		for _, item := range items {
			name, err := decodePerson(item)
			if err != nil {
				return err
			}
			if name != "" {
				*l = append(*l, name)
			}
		}
		return nil
	}

	name, err := decodePerson(raw)
	if err != nil {
		return err
	}
	if name != "" {
		*l = personList{name}
	}
	return nil
}

func decodePerson(raw []byte) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}

	var person struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &person); err != nil {
		return "", fmt.Errorf("person name or object expected: %w", err)
	}
	return person.Name, nil
}

// numberText keeps a JSON number or string as its textual form so the
// normalizer owns all parsing.
type numberText string

func (n *numberText) UnmarshalJSON(raw []byte) error {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		*n = numberText(asString)
		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return fmt.Errorf("number or string expected: %w", err)
	}
	*n = numberText(strconv.FormatFloat(asNumber, 'f', -1, 64))
	return nil
}
