package imdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// The source rejects requests without a plausible desktop browser header set.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/84.0.4147.105 Safari/537.36"

// Client fetches title and person detail pages and decodes their embedded
// structured data. Point BaseURL at the mirror server for offline runs.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) TitleURL(id string) string {
	return fmt.Sprintf("%s/title/%s/", c.BaseURL, id)
}

func (c *Client) NameURL(id string) string {
	return fmt.Sprintf("%s/name/%s/", c.BaseURL, id)
}

// Title fetches a movie detail page and returns its structured-data record.
func (c *Client) Title(ctx context.Context, id string) (map[string]any, error) {
	return c.page(ctx, c.TitleURL(id))
}

// Person fetches a person detail page and returns its structured-data record.
func (c *Client) Person(ctx context.Context, id string) (map[string]any, error) {
	return c.page(ctx, c.NameURL(id))
}

func (c *Client) page(ctx context.Context, url string) (map[string]any, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ExtractLinkedData(url, body)
}

func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.BaseURL+"/")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	return resp.Body, nil
}
