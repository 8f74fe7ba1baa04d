package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no active cyclone matches a requested code.
var ErrNotFound = errors.New("cyclone not found")

// Assemble parses a bulletin and attaches its track to the header.
func Assemble(g *Grammar, header CycloneHeader, bulletin string, polledAt time.Time) (CycloneRecord, error) {
	track, err := ParseBulletin(g, bulletin)
	if err != nil {
		return CycloneRecord{}, fmt.Errorf("parse bulletin %s for %s: %w", BulletinID(header.BulletinLink), header.Code, err)
	}
	return CycloneRecord{
		CycloneHeader: header,
		BulletinID:    BulletinID(header.BulletinLink),
		Track:         track,
		PolledAt:      polledAt,
	}, nil
}

// Listing is the outcome of one poll: every assembled cyclone keyed by code,
// plus the cyclones whose bulletin could not be parsed.
type Listing struct {
	Cyclones map[string]CycloneRecord `json:"cyclones" yaml:"cyclones"`
	Failed   map[string]string        `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// NewListing returns an empty listing.
func NewListing() Listing {
	return Listing{Cyclones: make(map[string]CycloneRecord)}
}

// Add stores a record, replacing any earlier record for the same code.
func (l *Listing) Add(rec CycloneRecord) {
	if rec.Track == nil {
		rec.Track = Track{}
	}
	l.Cyclones[rec.Code] = rec
	delete(l.Failed, rec.Code)
}

// Fail records that a cyclone could not be assembled.
func (l *Listing) Fail(code string, err error) {
	if l.Failed == nil {
		l.Failed = make(map[string]string)
	}
	l.Failed[code] = err.Error()
}

// Len returns the number of assembled cyclones.
func (l Listing) Len() int { return len(l.Cyclones) }
