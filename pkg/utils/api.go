// Package utils holds small shared plumbing helpers.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StatusError reports a non-200 response from a JSON API.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// API is a minimal JSON-over-HTTP GET client. Requests are spaced out by
// the given interval to respect remote rate limits.
type API struct {
	client  *http.Client
	baseURL string
	limiter *time.Ticker
}

func NewAPI(baseURL string, minInterval time.Duration) *API {
	return &API{
		client:  http.DefaultClient,
		baseURL: baseURL,
		limiter: time.NewTicker(minInterval),
	}
}

// Get fetches baseURL+path and decodes the JSON response into v.
func (a *API) Get(path string, params url.Values, v any) error {
	<-a.limiter.C

	u := a.baseURL + path
	if params != nil {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Close releases the rate limiter.
func (a *API) Close() {
	a.limiter.Stop()
}
