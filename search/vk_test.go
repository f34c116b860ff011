package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token")
	c.baseURL = srv.URL
	return c
}

func TestSearch(t *testing.T) {
	t.Run("parses tracks in rank order", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/audio.search", r.URL.Path)
			assert.Equal(t, "summer hits", r.URL.Query().Get("q"))
			assert.Equal(t, "100", r.URL.Query().Get("count"))
			assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))

			w.Write([]byte(`{"response":{"count":2,"items":[
				{"id":11,"owner_id":-7,"artist":"Alpha","title":"One","url":"https://cdn/a.mp3","duration":180},
				{"id":12,"owner_id":42,"artist":"Beta","title":"Two","url":"https://cdn/b.mp3","duration":95}
			]}}`))
		})

		tracks, err := c.Search(context.Background(), "summer hits", 0)
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		assert.Equal(t, Track{ID: "-7_11", Artist: "Alpha", Title: "One", URL: "https://cdn/a.mp3", Duration: 180}, tracks[0])
		assert.Equal(t, "42_12", tracks[1].ID)
	})

	t.Run("clamps count to the maximum", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("count"))
			w.Write([]byte(`{"response":{"count":0,"items":[]}}`))
		})

		_, err := c.Search(context.Background(), "anything", 5000)
		require.NoError(t, err)
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":{"count":0,"items":[]}}`))
		})

		tracks, err := c.Search(context.Background(), "no such band", 100)
		require.NoError(t, err)
		assert.Empty(t, tracks)
	})

	t.Run("api error envelope surfaces code and message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"error_code":6,"error_msg":"Too many requests per second"}}`))
		})

		_, err := c.Search(context.Background(), "anything", 100)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Too many requests per second")
	})

	t.Run("http failure status is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
		})

		_, err := c.Search(context.Background(), "anything", 100)
		require.Error(t, err)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"respo`))
		})

		_, err := c.Search(context.Background(), "anything", 100)
		require.Error(t, err)
	})
}
