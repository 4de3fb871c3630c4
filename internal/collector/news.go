package collector

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"strings"
)

// DefaultFeeds are the RSS feeds tried in order.
var DefaultFeeds = []string{
	"https://www.coindesk.com/arc/outboundfeeds/rss/",
	"https://cointelegraph.com/rss",
}

// NewsClient fetches headlines from RSS feeds. The first feed that
// yields any titles wins.
type NewsClient struct {
	Feeds  []string
	Client *http.Client
}

// NewNewsClient creates a client with optional proxy support. Feed
// fetches use the shorter feed timeout.
func NewNewsClient(feeds []string, proxyURL string) *NewsClient {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	return &NewsClient{
		Feeds:  feeds,
		Client: newHTTPClient(feedTimeout, proxyURL),
	}
}

type rssDoc struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Headlines returns up to limit item titles from the first feed that
// responds with any.
func (c *NewsClient) Headlines(ctx context.Context, limit int) ([]string, error) {
	var lastErr error
	for _, feed := range c.Feeds {
		titles, err := c.fetchTitles(ctx, feed, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(titles) > 0 {
			return titles, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("news: no headlines in any feed")
	}
	return nil, lastErr
}

func (c *NewsClient) fetchTitles(ctx context.Context, feed string, limit int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: status %d", feed, resp.StatusCode)
	}

	var doc rssDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed %s: %w", feed, err)
	}

	titles := make([]string, 0, limit)
	for _, item := range doc.Channel.Items {
		t := strings.TrimSpace(html.UnescapeString(item.Title))
		if t == "" {
			continue
		}
		titles = append(titles, t)
		if len(titles) == limit {
			break
		}
	}
	return titles, nil
}
