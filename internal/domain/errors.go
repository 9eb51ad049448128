package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoExtractableData means neither the structured-data locator nor the DOM
// fallback produced a record with a title. Fatal for the run; the caller
// should re-check the page rather than retry the save.
var ErrNoExtractableData = errors.New("page has no structured data and no title-bearing markup")

// ErrStoreUnreachable marks transport-level failures talking to the remote
// store (DNS, connect, timeout). The run is aborted without automatic retry.
var ErrStoreUnreachable = errors.New("remote store unreachable")

// StoreError is a non-2xx response from the remote store, kept with enough
// detail for the caller to show the store's own message.
type StoreError struct {
	Op     string
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s rejected: status=%d body=%s", e.Op, e.Status, e.Body)
}

// IsDuplicate reports whether the store refused a create because the record
// already exists under its uniqueness key. Surfaced as-is, never converted
// into an update.
func (e *StoreError) IsDuplicate() bool {
	return e.Status == http.StatusConflict
}
