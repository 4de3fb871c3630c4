package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"CryptoPulse/internal/model"
)

// ChainClient fetches on-chain metrics: the Etherscan gas oracle and
// the Blockchain.info hashrate chart.
type ChainClient struct {
	EtherscanURL string
	EtherscanKey string
	HashrateURL  string
	Client       *http.Client
}

// NewChainClient creates a client with optional proxy support. Gas
// queries need an Etherscan API key; without one GasPrices always
// errors and the collector serves fallback values.
func NewChainClient(etherscanKey, proxyURL string) *ChainClient {
	return &ChainClient{
		EtherscanURL: "https://api.etherscan.io/api",
		EtherscanKey: etherscanKey,
		HashrateURL:  "https://api.blockchain.info/charts/hash-rate",
		Client:       newHTTPClient(generalTimeout, proxyURL),
	}
}

// GasPrices fetches the gas oracle tiers in gwei.
func (c *ChainClient) GasPrices(ctx context.Context) (model.GasPrices, error) {
	if c.EtherscanKey == "" {
		return model.GasPrices{}, fmt.Errorf("gas oracle: no api key configured")
	}
	params := url.Values{
		"module": {"gastracker"},
		"action": {"gasoracle"},
		"apikey": {c.EtherscanKey},
	}
	var resp struct {
		Result struct {
			SafeGasPrice    string `json:"SafeGasPrice"`
			ProposeGasPrice string `json:"ProposeGasPrice"`
			FastGasPrice    string `json:"FastGasPrice"`
		} `json:"result"`
	}
	if err := getJSON(ctx, c.Client, c.EtherscanURL, params, &resp); err != nil {
		return model.GasPrices{}, err
	}
	gas := model.GasPrices{
		Low:  parseFloat(resp.Result.SafeGasPrice),
		Avg:  parseFloat(resp.Result.ProposeGasPrice),
		Fast: parseFloat(resp.Result.FastGasPrice),
	}
	if gas.Avg <= 0 {
		return model.GasPrices{}, fmt.Errorf("gas oracle: no data")
	}
	return gas, nil
}

// HashrateEHS fetches the latest network hashrate. The chart API
// reports TH/s; the result is converted to EH/s.
func (c *ChainClient) HashrateEHS(ctx context.Context) (float64, error) {
	params := url.Values{
		"timespan": {"3days"},
		"format":   {"json"},
	}
	var resp struct {
		Values []struct {
			X int64   `json:"x"`
			Y float64 `json:"y"`
		} `json:"values"`
	}
	if err := getJSON(ctx, c.Client, c.HashrateURL, params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Values) == 0 {
		return 0, fmt.Errorf("hashrate: no data")
	}
	ehs := resp.Values[len(resp.Values)-1].Y / 1e6
	if ehs <= 0 {
		return 0, fmt.Errorf("hashrate: no data")
	}
	return ehs, nil
}
