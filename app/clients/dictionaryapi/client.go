package dictionaryapi

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
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the english entries endpoint of dictionaryapi.dev
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrNotFound matches API errors returned with 404 status
var ErrNotFound = errors.New("word not found")

// ErrInvalidResponse is returned when response body is neither an entries array nor an error object
var ErrInvalidResponse = errors.New("invalid response")

// APIError is returned when the API responds with an error object instead of entries
type APIError struct {
	Status     int
	Title      string
	Message    string
	Resolution string
}

func (e *APIError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("dictionaryapi error (status %d)", e.Status)
	}
	return fmt.Sprintf("dictionaryapi error (status %d): %s", e.Status, e.Title)
}

// Is reports 404 responses as ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client implements integration with DictionaryAPI
// docs: https://dictionaryapi.dev/
type Client struct {
	baseURL string
	client  *http.Client
}

// Get fetches entries for a word. The payload is classified by its shape:
// an array is a list of entries, an object is an *APIError.
func (c Client) Get(ctx context.Context, word string) (items []WordResponse, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaryapi.dev: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("unmarshal error response: %w", err)
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: errResp.Message, Resolution: errResp.Resolution}
		if errResp.Title != nil {
			apiErr.Title = *errResp.Title
		}
		return nil, apiErr
	}
	if err := json.Unmarshal(body, &items); err != nil {
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessful response from dictionaryapi")
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if items == nil {
		return nil, ErrInvalidResponse
	}
	return items, nil
}

// NewClient creates Client for given base URL, DefaultBaseURL is used when empty
func NewClient(baseURL string, timeout time.Duration) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}
