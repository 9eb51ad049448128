package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"TitleSync/internal/config"
	"TitleSync/internal/domain"
	"TitleSync/internal/ports"
)

const maxErrorBody = 1024

// Client talks JSON over HTTPS to the remote record store. Every call holds
// an Authorization bearer token and passes the client-side rate limiter
// before hitting the wire.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ ports.RemoteStore = (*Client)(nil)

// NewClient builds a store client from configuration.
func NewClient(cfg config.StoreConfig) *Client {
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// FindByExternalID looks a record up by its page-derived identifier. A 404
// is a clean miss, not an error.
func (c *Client) FindByExternalID(ctx context.Context, externalID string) (*domain.RemoteRecord, error) {
	query := url.Values{}
	query.Set("externalId", externalID)

	body, err := c.do(ctx, http.MethodGet, "/titles?"+query.Encode(), nil, "find by external id")
	if err != nil {
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) && storeErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record domain.RemoteRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &record, nil
}

// FindByTitle performs the disjunctive title/originalTitle lookup and
// returns every candidate the store knows; the caller decides what an
// ambiguous answer means.
func (c *Client) FindByTitle(ctx context.Context, title, originalTitle string) ([]domain.RemoteRecord, error) {
	query := url.Values{}
	query.Set("title", title)
	if originalTitle != "" {
		query.Set("originalTitle", originalTitle)
	}

	body, err := c.do(ctx, http.MethodGet, "/titles?"+query.Encode(), nil, "find by title")
	if err != nil {
		return nil, err
	}

	var records []domain.RemoteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// Create inserts a new record. A duplicate-key rejection comes back as a
// *domain.StoreError with IsDuplicate() true; it is never masked.
func (c *Client) Create(ctx context.Context, fields domain.TitleFields) (domain.RemoteRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/titles", fields, "create")
	if err != nil {
		return domain.RemoteRecord{}, err
	}

	var record domain.RemoteRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return domain.RemoteRecord{}, fmt.Errorf("decode created record: %w", err)
	}
	return record, nil
}

// Update overwrites the shared field set on an existing record. Store-only
// fields are absent from the payload and stay untouched.
func (c *Client) Update(ctx context.Context, id string, fields domain.TitleFields) (domain.RemoteRecord, error) {
	body, err := c.do(ctx, http.MethodPatch, "/titles/"+url.PathEscape(id), fields, "update")
	if err != nil {
		return domain.RemoteRecord{}, err
	}

	var record domain.RemoteRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return domain.RemoteRecord{}, fmt.Errorf("decode updated record: %w", err)
	}
	return record, nil
}

// Delete removes a record by id. Deleting an id the store no longer has is
// success, so repeated deletes converge.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/titles/"+url.PathEscape(id), nil, "delete")
	if err != nil {
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) && storeErr.Status == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, op string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new %s request: %w", op, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnreachable, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrStoreUnreachable, op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.StoreError{
			Op:     op,
			Status: resp.StatusCode,
			Body:   snippet(body),
		}
	}

	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	// back up to a rune boundary so the cut never leaves a broken sequence
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
