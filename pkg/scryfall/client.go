// Package scryfall is a thin client for the two Scryfall operations the
// generator consumes: fuzzy lookup by name and structured token search.
package scryfall

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/indiecore/bwproxy/pkg/card"
	"github.com/indiecore/bwproxy/pkg/utils"
)

// ErrNotFound is returned when the service reports no match for a name or
// query. Callers treat it as "skip this card", not as a transport failure.
var ErrNotFound = errors.New("scryfall: no matching card")

type Client struct {
	api *utils.API
}

// NewClient builds a client against the public Scryfall API. Requests are
// spaced out to stay inside the documented rate limits.
func NewClient() *Client {
	return &Client{api: utils.NewAPI("https://api.scryfall.com", 100*time.Millisecond)}
}

// NewClientWithBase builds a client against a custom endpoint. Used in
// tests against a local server.
func NewClientWithBase(baseURL string) *Client {
	return &Client{api: utils.NewAPI(baseURL, time.Millisecond)}
}

// Close releases the rate limiter.
func (c *Client) Close() {
	c.api.Close()
}

func (c *Client) get(path string, params url.Values, v any) error {
	err := c.api.Get(path, params, v)
	var status *utils.StatusError
	if errors.As(err, &status) {
		if status.Code == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("scryfall: %w", err)
	}
	return err
}

// Named fetches a single card by fuzzy name match.
func (c *Client) Named(name string) (*card.Payload, error) {
	var payload card.Payload
	params := url.Values{"fuzzy": {name}}
	if err := c.get("/cards/named", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchTokens looks up token or emblem printings by name. It first asks
// for an exact name match within the requested type, then falls back to a
// loose name query, since many tokens are only findable that way.
func (c *Client) SearchTokens(name string, emblem bool) ([]*card.Payload, error) {
	kind, exact := "token", name
	if emblem {
		kind = "emblem"
		exact = name + " Emblem"
	}

	results, err := c.search(fmt.Sprintf("type:%s !%q", kind, exact))
	if errors.Is(err, ErrNotFound) {
		results, err = c.search(fmt.Sprintf("type:%s %s", kind, name))
	}
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return results, err
}

func (c *Client) search(query string) ([]*card.Payload, error) {
	var page struct {
		Data []*card.Payload `json:"data"`
	}
	params := url.Values{"q": {query}, "unique": {"prints"}}
	if err := c.get("/cards/search", params, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}
