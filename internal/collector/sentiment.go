package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"CryptoPulse/internal/model"
)

// SentimentClient fetches the alternative.me Fear & Greed index.
type SentimentClient struct {
	BaseURL string
	Client  *http.Client
}

// NewSentimentClient creates a client with optional proxy support.
func NewSentimentClient(proxyURL string) *SentimentClient {
	return &SentimentClient{
		BaseURL: "https://api.alternative.me/fng/",
		Client:  newHTTPClient(generalTimeout, proxyURL),
	}
}

// FearGreed fetches the latest index reading.
func (c *SentimentClient) FearGreed(ctx context.Context) (model.Sentiment, error) {
	params := url.Values{"limit": {"1"}}
	var resp struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}
	if err := getJSON(ctx, c.Client, c.BaseURL, params, &resp); err != nil {
		return model.Sentiment{}, err
	}
	if len(resp.Data) == 0 {
		return model.Sentiment{}, fmt.Errorf("fear/greed: no data")
	}
	v, err := strconv.Atoi(resp.Data[0].Value)
	if err != nil {
		return model.Sentiment{}, fmt.Errorf("fear/greed: bad value %q", resp.Data[0].Value)
	}
	return model.Sentiment{Value: v, Classification: resp.Data[0].Classification}, nil
}
