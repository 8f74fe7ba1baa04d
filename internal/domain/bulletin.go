package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Section markers of a JTWC warning bulletin.
const (
	maxWindMarker = "MAX SUSTAINED WINDS"
	gustMarker    = "GUST"
	radiusMarker  = "RADIUS"

	// maxRadiiThresholds is the number of wind-speed thresholds (34/50/64 KT)
	// a bulletin reports per position.
	maxRadiiThresholds = 3
)

// ErrMissingGust is returned when a position with sustained winds has no
// gust value after it. The whole bulletin is rejected because the block
// layout no longer matches a warning.
var ErrMissingGust = errors.New("gust speed not found")

// ParseBulletin extracts the observations of a warning bulletin keyed by
// their "DDHHMMZ" timestamp, in the order the timestamps appear.
//
// Each timestamp reads its fields from the text that follows it up to the
// end of the document, so a block missing a field picks it up from a later
// block. Timestamps without a full latitude and longitude position or a
// sustained wind speed after them (headers, "next warning at" lines) are
// skipped. A repeated timestamp
// replaces the observation recorded for its earlier occurrence.
func ParseBulletin(g *Grammar, text string) (Track, error) {
	track := Track{}

	for _, loc := range g.timestamp.FindAllStringIndex(text, -1) {
		timestamp := text[loc[0]:loc[1]]
		tail := text[loc[0]:]

		obs, ok, err := parseObservation(g, timestamp, tail)
		if err != nil {
			return nil, fmt.Errorf("observation %s: %w", timestamp, err)
		}
		if !ok {
			continue
		}
		track = track.put(obs)
	}
	return track, nil
}

func parseObservation(g *Grammar, timestamp, tail string) (TrackObservation, bool, error) {
	lat, ok := g.Latitude(tail)
	if !ok {
		return TrackObservation{}, false, nil
	}
	lon, ok := g.Longitude(tail)
	if !ok {
		return TrackObservation{}, false, nil
	}

	maxWind, ok := speedAfter(g, tail, maxWindMarker)
	if !ok {
		return TrackObservation{}, false, nil
	}

	gust, ok := speedAfter(g, tail, gustMarker)
	if !ok {
		return TrackObservation{}, false, ErrMissingGust
	}

	return TrackObservation{
		Timestamp:        timestamp,
		Latitude:         lat,
		Longitude:        lon,
		MaxSustainedWind: maxWind,
		WindGust:         gust,
		WindRadii:        parseWindRadii(g, tail),
	}, true, nil
}

// speedAfter returns the first speed token following marker.
func speedAfter(g *Grammar, text, marker string) (string, bool) {
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	return g.Speed(text[i:])
}

// parseWindRadii reads up to three "RADIUS OF nnn KT WINDS" segments. Each
// segment's first speed is the threshold; segments without one are ignored.
func parseWindRadii(g *Grammar, tail string) WindRadii {
	radii := WindRadii{}

	segments := strings.Split(tail, radiusMarker)
	if len(segments) < 2 {
		return radii
	}
	segments = segments[1:]
	if len(segments) > maxRadiiThresholds {
		segments = segments[:maxRadiiThresholds]
	}

	for _, seg := range segments {
		threshold, ok := g.Speed(seg)
		if !ok {
			continue
		}
		radii = radii.set(threshold, g.Radii(seg))
	}
	return radii
}
