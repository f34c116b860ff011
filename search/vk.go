// Package search looks up tracks in the VK audio catalog by free-text query.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultBaseURL = "https://api.vk.com/method"
	apiVersion     = "5.131"

	// MaxResults is the hard cap VK is asked for per query.
	MaxResults = 100
)

// Client calls the VK audio.search method.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// ---- VK API MODELS ----
type vkAudio struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
}

type vkEnvelope struct {
	Response *struct {
		Count int       `json:"count"`
		Items []vkAudio `json:"items"`
	} `json:"response"`
	Error *struct {
		Code    int    `json:"error_code"`
		Message string `json:"error_msg"`
	} `json:"error"`
}

// Search runs audio.search for the query and returns up to limit tracks in
// provider rank order. limit is clamped to MaxResults.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(limit))
	params.Set("access_token", c.token)
	params.Set("v", apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/audio.search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vk error %d: %s", resp.StatusCode, body)
	}

	var envelope vkEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("vk response decode: %w", err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("vk error %d: %s", envelope.Error.Code, envelope.Error.Message)
	}
	if envelope.Response == nil {
		return nil, fmt.Errorf("vk response missing payload")
	}

	tracks := make([]Track, 0, len(envelope.Response.Items))
	for _, item := range envelope.Response.Items {
		tracks = append(tracks, Track{
			ID:       fmt.Sprintf("%d_%d", item.OwnerID, item.ID),
			Artist:   item.Artist,
			Title:    item.Title,
			URL:      item.URL,
			Duration: item.Duration,
		})
	}
	return tracks, nil
}
