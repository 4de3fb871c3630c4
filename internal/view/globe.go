package view

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/session"
)

// Hub is one trading-hub marker on the globe, enriched with per-tick
// activity. Volume and trend are decorative random values; only the
// coordinates and names are real.
type Hub struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	VolumeUSD float64 `json:"volume_usd"`
	Top       string  `json:"top"`
	TrendPct  float64 `json:"trend_pct"`
}

// Payload is the full globe dataset plus camera parameters.
type Payload struct {
	Hubs           []Hub   `json:"hubs"`
	Nodes          []Hub   `json:"nodes"`
	AutoRotate     bool    `json:"auto_rotate"`
	RotateSpeed    float64 `json:"rotate_speed"`
	CameraDistance int     `json:"camera_distance"`
}

var tradingHubs = []Hub{
	{Name: "New York", Lat: 40.7128, Lon: -74.0060, Region: "US"},
	{Name: "London", Lat: 51.5074, Lon: -0.1278, Region: "UK"},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503, Region: "JP"},
	{Name: "Singapore", Lat: 1.3521, Lon: 103.8198, Region: "SG"},
	{Name: "Frankfurt", Lat: 50.1109, Lon: 8.6821, Region: "DE"},
	{Name: "Hong Kong", Lat: 22.3193, Lon: 114.1694, Region: "HK"},
	{Name: "Seoul", Lat: 37.5665, Lon: 126.9780, Region: "KR"},
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093, Region: "AU"},
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522, Region: "FR"},
	{Name: "Dubai", Lat: 25.2048, Lon: 55.2708, Region: "AE"},
	{Name: "Toronto", Lat: 43.6532, Lon: -79.3832, Region: "CA"},
	{Name: "São Paulo", Lat: -23.5558, Lon: -46.6396, Region: "BR"},
}

func topSymbols(assets []model.AssetSnapshot) string {
	syms := make([]string, 0, 3)
	for _, a := range assets {
		syms = append(syms, a.Symbol)
		if len(syms) == 3 {
			break
		}
	}
	if len(syms) == 0 {
		syms = []string{"BTC", "ETH", "SOL"}
	}
	return strings.Join(syms, ", ")
}

// Hubs enriches the fixed hub table with activity derived from the top
// assets, sorted by volume descending.
func Hubs(assets []model.AssetSnapshot) []Hub {
	top := topSymbols(assets)
	out := make([]Hub, len(tradingHubs))
	for i, h := range tradingHubs {
		h.VolumeUSD = 5e7 + rand.Float64()*8e8
		h.Top = top
		h.TrendPct = -4 + rand.Float64()*8
		out[i] = h
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VolumeUSD > out[j].VolumeUSD })
	return out
}

// ExtraNodes scatters n decorative nodes across the globe.
func ExtraNodes(n int, assets []model.AssetSnapshot) []Hub {
	top := topSymbols(assets)
	out := make([]Hub, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Hub{
			Name:      fmt.Sprintf("Node %d", i+1),
			Region:    "Global",
			Lat:       -70 + rand.Float64()*140,
			Lon:       -180 + rand.Float64()*360,
			VolumeUSD: 1e6 + rand.Float64()*8e7,
			Top:       top,
			TrendPct:  -5 + rand.Float64()*10,
		})
	}
	return out
}

// Globe assembles the full payload for the 3D view from the latest
// assets and the session's camera parameters.
func Globe(assets []model.AssetSnapshot, p session.GlobeParams) Payload {
	return Payload{
		Hubs:           Hubs(assets),
		Nodes:          ExtraNodes(p.ExtraPoints, assets),
		AutoRotate:     p.AutoRotate,
		RotateSpeed:    p.RotateSpeed,
		CameraDistance: p.CameraDistance,
	}
}
