package session

import "time"

// GlobeParams are the 3D visualization controls.
type GlobeParams struct {
	AutoRotate     bool    `json:"auto_rotate"`
	RotateSpeed    float64 `json:"rotate_speed"`
	CameraDistance int     `json:"camera_distance"`
	ExtraPoints    int     `json:"extra_points"`
}

// State is the per-session UI state: watchlist, filters and globe
// parameters. Ticks read it as an immutable snapshot; all mutation
// goes through Manager methods.
type State struct {
	ID         string             `json:"id"`
	Watchlist  map[string]float64 `json:"watchlist"` // symbol -> alert threshold, percent
	Category   string             `json:"category"`
	Comparison []string           `json:"comparison"`
	Globe      GlobeParams        `json:"globe"`
	RefreshSec int                `json:"refresh_sec"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// clone returns a deep copy so callers can't mutate shared state.
func (s State) clone() State {
	out := s
	out.Watchlist = make(map[string]float64, len(s.Watchlist))
	for k, v := range s.Watchlist {
		out.Watchlist[k] = v
	}
	out.Comparison = append([]string(nil), s.Comparison...)
	return out
}
