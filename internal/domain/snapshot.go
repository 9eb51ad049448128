package domain

import "regexp"

var externalIDExpr = regexp.MustCompile(`/(?:film|series)/(\d+)(?:/|$)`)

// PageSnapshot is the serialized page a pipeline run works on: raw markup
// plus the resolved URL it was taken from. Extraction components never touch
// a live document, only snapshots.
type PageSnapshot struct {
	URL  string
	HTML string
}

// ExternalID returns the stable numeric identifier embedded in the snapshot
// URL path ("/film/<digits>/" or "/series/<digits>/"). An empty string means
// the URL carries no identifier; that is not an error.
func (s PageSnapshot) ExternalID() string {
	m := externalIDExpr.FindStringSubmatch(s.URL)
	if m == nil {
		return ""
	}
	return m[1]
}
