package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"TitleSync/internal/config"
	"TitleSync/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.StoreConfig{
		BaseURL:       server.URL,
		APIToken:      "secret-token",
		RatePerSecond: 1000,
		Burst:         1000,
	})
}

func TestFindByExternalID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if got := r.URL.Query().Get("externalId"); got != "526" {
			t.Errorf("unexpected externalId query: %q", got)
		}
		json.NewEncoder(w).Encode(domain.RemoteRecord{ID: "42", TitleFields: domain.TitleFields{Title: "Фильм"}})
	})

	record, err := client.FindByExternalID(context.Background(), "526")
	if err != nil {
		t.Fatalf("FindByExternalID returned error: %v", err)
	}
	if record == nil || record.ID != "42" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestFindByExternalIDMiss(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	record, err := client.FindByExternalID(context.Background(), "526")
	if err != nil {
		t.Fatalf("a 404 lookup must be a clean miss, got %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestFindByTitle(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("title") != "Фильм" || q.Get("originalTitle") != "The Film" {
			t.Errorf("unexpected query: %v", q)
		}
		json.NewEncoder(w).Encode([]domain.RemoteRecord{{ID: "1"}, {ID: "2"}})
	})

	records, err := client.FindByTitle(context.Background(), "Фильм", "The Film")
	if err != nil {
		t.Fatalf("FindByTitle returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(records))
	}
}

func TestCreateDuplicateKey(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"duplicate externalId"}`, http.StatusConflict)
	})

	_, err := client.Create(context.Background(), domain.TitleFields{Title: "Фильм"})
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if !storeErr.IsDuplicate() {
		t.Fatalf("expected duplicate-key error, got status %d", storeErr.Status)
	}
}

func TestStoreRejectionCarriesBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"title is required"}`, http.StatusUnprocessableEntity)
	})

	_, err := client.Update(context.Background(), "42", domain.TitleFields{})
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", storeErr.Status)
	}
	if storeErr.Body == "" {
		t.Fatal("expected the store's message to be preserved")
	}
}

func TestStoreRejectionBodyTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	long := "x" + strings.Repeat("ошибка ", 200)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, long, http.StatusUnprocessableEntity)
	})

	_, err := client.Update(context.Background(), "42", domain.TitleFields{})
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Body == "" {
		t.Fatal("expected the store's message to be preserved")
	}
	if !utf8.ValidString(storeErr.Body) {
		t.Fatalf("truncated body is not valid UTF-8: %q", storeErr.Body[len(storeErr.Body)-8:])
	}
}

func TestUnreachableStore(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(config.StoreConfig{BaseURL: server.URL})

	_, err := client.FindByTitle(context.Background(), "Фильм", "")
	if !errors.Is(err, domain.ErrStoreUnreachable) {
		t.Fatalf("expected ErrStoreUnreachable, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	t.Parallel()

	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		if calls == 1 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	if err := client.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := client.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("repeated delete must succeed, got %v", err)
	}
}

func TestUpdateSendsFullSharedFieldSet(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		for _, key := range []string{"description", "releaseYear", "releaseDate", "rating", "director", "durationMinutes", "posterUrl"} {
			if _, ok := payload[key]; !ok {
				t.Errorf("absent extracted field %q must still be written so stale store values are cleared", key)
			}
		}
		json.NewEncoder(w).Encode(domain.RemoteRecord{ID: "42"})
	})

	_, err := client.Update(context.Background(), "42", domain.TitleFields{Title: "Фильм"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
}

func TestCreateSendsPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var fields domain.TitleFields
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if fields.Title != "Фильм" || fields.Category != domain.CategoryFilm {
			t.Errorf("unexpected payload: %+v", fields)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.RemoteRecord{ID: "42", TitleFields: fields})
	})

	record, err := client.Create(context.Background(), domain.TitleFields{Title: "Фильм", Category: domain.CategoryFilm})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if record.ID != "42" {
		t.Fatalf("unexpected record id: %q", record.ID)
	}
}
