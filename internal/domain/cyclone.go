package domain

import (
	"context"
	"time"
)

// CycloneHeader is one cyclone announcement found in a feed item description,
// e.g. "Typhoon 07W (Noru) Warning #47".
type CycloneHeader struct {
	Code          string `json:"code" yaml:"code"`
	Category      string `json:"category" yaml:"category"`
	Name          string `json:"name" yaml:"name"`
	WarningNumber int    `json:"warning_number" yaml:"warning_number"`
	IssuedAt      string `json:"issued_at" yaml:"issued_at"` // "DD/HHMMZ", year and month are not in the feed
	BulletinLink  string `json:"bulletin_link" yaml:"bulletin_link"`
}

// WindRadius lists the quadrant radii reached by one wind-speed threshold.
type WindRadius struct {
	Threshold string   `json:"threshold" yaml:"threshold"` // e.g. "034 KT"
	Quadrants []string `json:"quadrants" yaml:"quadrants"` // e.g. "120 NM NORTHEAST QUADRANT"
}

// WindRadii is ordered by the position of each threshold in the bulletin.
type WindRadii []WindRadius

// Quadrants returns the radii recorded for a threshold token.
func (w WindRadii) Quadrants(threshold string) ([]string, bool) {
	for _, r := range w {
		if r.Threshold == threshold {
			return r.Quadrants, true
		}
	}
	return nil, false
}

func (w WindRadii) set(threshold string, quadrants []string) WindRadii {
	for i := range w {
		if w[i].Threshold == threshold {
			w[i].Quadrants = quadrants
			return w
		}
	}
	return append(w, WindRadius{Threshold: threshold, Quadrants: quadrants})
}

// TrackObservation is one dated position/intensity block of a bulletin.
// All values are kept as the literal tokens found in the text.
type TrackObservation struct {
	Timestamp        string    `json:"timestamp" yaml:"timestamp"` // "DDHHMMZ"
	Latitude         string    `json:"latitude" yaml:"latitude"`   // e.g. "15.3N"
	Longitude        string    `json:"longitude" yaml:"longitude"` // e.g. "125.4E"
	MaxSustainedWind string    `json:"max_sustained_wind" yaml:"max_sustained_wind"`
	WindGust         string    `json:"wind_gust" yaml:"wind_gust"`
	WindRadii        WindRadii `json:"wind_radii" yaml:"wind_radii"`
}

// Track holds observations keyed by timestamp. Order is the position at
// which a timestamp was first recorded; re-recording a timestamp replaces
// the observation in place.
type Track []TrackObservation

// Find returns the observation recorded for a timestamp token.
func (t Track) Find(timestamp string) (TrackObservation, bool) {
	for _, obs := range t {
		if obs.Timestamp == timestamp {
			return obs, true
		}
	}
	return TrackObservation{}, false
}

// Timestamps lists the keys of the track in order.
func (t Track) Timestamps() []string {
	out := make([]string, len(t))
	for i, obs := range t {
		out[i] = obs.Timestamp
	}
	return out
}

func (t Track) put(obs TrackObservation) Track {
	for i := range t {
		if t[i].Timestamp == obs.Timestamp {
			t[i] = obs
			return t
		}
	}
	return append(t, obs)
}

// CycloneRecord is a header merged with the track parsed from its bulletin.
type CycloneRecord struct {
	CycloneHeader `yaml:",inline"`
	BulletinID    string    `json:"bulletin_id" yaml:"bulletin_id"`
	Track         Track     `json:"track" yaml:"track"`
	PolledAt      time.Time `json:"polled_at" yaml:"polled_at"`
}

// FeedSource yields the description text of every item in the warning feed.
type FeedSource interface {
	Items(ctx context.Context) ([]string, error)
}

// BulletinFetcher retrieves the raw text of the bulletin linked by a header.
type BulletinFetcher interface {
	FetchBulletin(ctx context.Context, header CycloneHeader) (string, error)
}

// LinkLister enumerates hyperlink targets of a markup fragment in document order.
type LinkLister interface {
	Links(fragment string) []string
}
