package api

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rbhz/dictionary-lookup/app/highlight"
	"github.com/rbhz/dictionary-lookup/app/history"
	"github.com/rbhz/dictionary-lookup/app/lookup"
	"github.com/rbhz/dictionary-lookup/app/metrics"
	"github.com/rbhz/dictionary-lookup/app/session"
	"github.com/rbhz/dictionary-lookup/app/view"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "tokentokentokentoken"

// fetcherFunc adapts a function to lookup.Fetcher
type fetcherFunc func(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)

func (f fetcherFunc) Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error) {
	return f(ctx, word)
}

// testFetcher knows only "run"
func testFetcher(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error) {
	if word != "run" {
		return nil, &dictionaryapi.APIError{Status: http.StatusNotFound, Title: "No Definitions Found"}
	}
	return []dictionaryapi.WordResponse{{
		Word:      "run",
		Phonetics: []dictionaryapi.Phonetic{{Text: "/rʌn/"}},
		Meanings: []dictionaryapi.Meaning{
			{PartOfSpeech: "verb", Definitions: []dictionaryapi.Definition{{Definition: "To move swiftly."}}},
		},
	}}, nil
}

// getTestServer returns a test server.
func getTestServer(fetcher lookup.Fetcher) (*httptest.Server, func()) {
	if fetcher == nil {
		fetcher = fetcherFunc(testFetcher)
	}
	m := metrics.New()
	manager := session.NewManager(history.NewInMemoryStorage(), session.Pipeline{
		Looker:      lookup.NewService(fetcher),
		Renderer:    view.HTML{},
		Highlighter: highlight.New(highlight.DefaultMarker),
		Metrics:     m,
	})
	server := NewServer(manager, m, testSessionSecret, time.Hour)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

// getClient returns a client keeping cookies between requests
func getClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}
