package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type displayResponse struct {
	Definitions string `json:"definitions"`
	Error       string `json:"error"`
}

func readBody(t *testing.T, r *http.Response) string {
	t.Helper()
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPage(t *testing.T) {
	ts, cancel := getTestServer(nil)
	defer cancel()
	r, err := getClient(t).Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", r.Header.Get("Content-Type"))
	body := readBody(t, r)
	assert.Contains(t, body, `<body class="lightmode">`)
	assert.Contains(t, body, `<div id="definitions"></div>`)
	assert.Contains(t, body, `<div id="error-display"></div>`)
	require.Len(t, r.Cookies(), 1)
	assert.Equal(t, sessionCookie, r.Cookies()[0].Name)
}

func TestLookup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		client := getClient(t)
		r, err := client.PostForm(ts.URL+"/lookup", url.Values{"word": {"run"}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		body := readBody(t, r)
		assert.Contains(t, body, `<div id="definitions" class="contentYes"><div><h3><span class="highlighted">run</span></h3>`)
		assert.Contains(t, body, `<div id="error-display"></div>`)
		assert.Contains(t, body, `value="run"`)

		// display survives page reload
		r, err = client.Get(ts.URL + "/")
		require.NoError(t, err)
		assert.Contains(t, readBody(t, r), `<h3><span class="highlighted">run</span></h3>`)
	})
	t.Run("query parameter", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		r, err := getClient(t).Get(ts.URL + "/lookup?word=run")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Contains(t, readBody(t, r), `<h3><span class="highlighted">run</span></h3>`)
	})
	t.Run("empty word", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		r, err := getClient(t).PostForm(ts.URL+"/lookup", url.Values{"word": {"  "}})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		body := readBody(t, r)
		assert.Contains(t, body, `<div id="definitions"></div>`)
		assert.Contains(t, body, `<div id="error-display" class="contentYes">ERROR: Please enter a word</div>`)
	})
	t.Run("not found replaces definitions", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		client := getClient(t)
		_, err := client.PostForm(ts.URL+"/lookup", url.Values{"word": {"run"}})
		require.NoError(t, err)
		r, err := client.PostForm(ts.URL+"/lookup", url.Values{"word": {"qwxyzzy123"}})
		require.NoError(t, err)
		body := readBody(t, r)
		assert.Contains(t, body, `<div id="definitions"></div>`)
		assert.Contains(t, body, `<div id="error-display" class="contentYes">ERROR: No Definitions Found</div>`)
	})
	t.Run("superseded", func(t *testing.T) {
		started := make(chan struct{})
		ts, cancel := getTestServer(fetcherFunc(func(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error) {
			if word == "slow" {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return testFetcher(ctx, word)
		}))
		defer cancel()
		client := getClient(t)
		_, err := client.Get(ts.URL + "/")
		require.NoError(t, err)

		var (
			wg         sync.WaitGroup
			slowStatus int
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := client.Get(ts.URL + "/lookup?word=slow")
			if err == nil {
				slowStatus = r.StatusCode
				r.Body.Close()
			}
		}()
		<-started
		r, err := client.Get(ts.URL + "/lookup?word=run")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		r.Body.Close()
		wg.Wait()
		assert.Equal(t, http.StatusConflict, slowStatus)
	})
}

func TestToggleMode(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		client := getClient(t)
		r, err := client.Post(ts.URL+"/mode", "", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Contains(t, readBody(t, r), `<body class="darkmode">`)

		r, err = client.Post(ts.URL+"/mode", "", nil)
		require.NoError(t, err)
		assert.Contains(t, readBody(t, r), `<body class="lightmode">`)
	})
	t.Run("unknown mode", func(t *testing.T) {
		ts, cancel := getTestServer(nil)
		defer cancel()
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/mode", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: modeCookie, Value: "sepia"})
		r, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode)
		body := readBody(t, r)
		assert.Contains(t, body, `<div id="error-display" class="contentYes">ERROR: Unable to determine current mode</div>`)
		assert.Contains(t, body, `<body class="lightmode">`)
	})
}

func TestLookupJSON(t *testing.T) {
	ts, cancel := getTestServer(nil)
	defer cancel()
	client := getClient(t)
	get := func(t *testing.T, word string) displayResponse {
		r, err := client.Get(ts.URL + "/api/v1/lookup?word=" + url.QueryEscape(word))
		require.NoError(t, err)
		defer r.Body.Close()
		assert.Equal(t, http.StatusOK, r.StatusCode)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var data displayResponse
		require.NoError(t, json.NewDecoder(r.Body).Decode(&data))
		return data
	}
	t.Run("success", func(t *testing.T) {
		data := get(t, "run")
		assert.Empty(t, data.Error)
		assert.True(t, strings.HasPrefix(data.Definitions, `<div><h3><span class="highlighted">run</span></h3>`))
	})
	t.Run("not found", func(t *testing.T) {
		data := get(t, "qwxyzzy123")
		assert.Empty(t, data.Definitions)
		assert.Equal(t, "ERROR: No Definitions Found", data.Error)
	})
}

func TestHistory(t *testing.T) {
	ts, cancel := getTestServer(nil)
	defer cancel()
	client := getClient(t)
	for _, w := range []string{"run", "qwxyzzy123", "run"} {
		r, err := client.Get(ts.URL + "/api/v1/lookup?word=" + w)
		require.NoError(t, err)
		r.Body.Close()
	}
	r, err := client.Get(ts.URL + "/api/v1/history")
	require.NoError(t, err)
	defer r.Body.Close()
	var words []string
	require.NoError(t, json.NewDecoder(r.Body).Decode(&words))
	assert.Equal(t, []string{"run", "run"}, words)

	t.Run("other session", func(t *testing.T) {
		r, err := getClient(t).Get(ts.URL + "/api/v1/history")
		require.NoError(t, err)
		assert.Equal(t, "[]", readBody(t, r))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	ts, cancel := getTestServer(nil)
	defer cancel()
	client := getClient(t)
	_, err := client.Get(ts.URL + "/lookup?word=run")
	require.NoError(t, err)
	r, err := client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Contains(t, readBody(t, r), `dictionary_lookups_total{outcome="success"} 1`)
}
