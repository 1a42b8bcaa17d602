// Package mirror discovers planet files published by independent mirror sites.
package mirror

import (
	"fmt"
	"time"
)

// Site is one independently operated mirror of the planet files.
type Site struct {
	Country        string
	BaseURL        string
	AvoidByDefault bool
	// Sources is filled once by the prober.
	Sources []*Source
}

// Source is one discovered file entry of a site. Every optional attribute is
// a pointer; nil means the site did not publish it or the lookup failed.
type Source struct {
	Name        string
	URL         string
	Timestamp   *time.Time
	Hash        *string
	FileLength  *int64
	ChecksumURL *string
	Site        *Site
}

// SiteName returns a short label of the owning site for logs.
func (s *Source) SiteName() string {
	if s.Site == nil {
		return ""
	}
	return s.Site.Country
}

func (s *Source) String() string {
	return fmt.Sprintf("%s (%s) ts=%s hash=%s len=%s", s.Name, s.SiteName(),
		FormatTimestamp(s.Timestamp), derefOr(s.Hash, "?"), FormatLength(s.FileLength))
}

// FormatTimestamp renders an optional timestamp as a date.
func FormatTimestamp(ts *time.Time) string {
	if ts == nil {
		return "?"
	}
	return ts.Format(time.DateOnly)
}

// FormatLength renders an optional file length.
func FormatLength(length *int64) string {
	if length == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *length)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// PrimaryStateURL is the daily replication state published by the planet origin.
const PrimaryStateURL = "https://planet.openstreetmap.org/replication/day/state.txt"

// DefaultSites returns the built-in planet mirror set. The primary origin is
// flagged AvoidByDefault to steer load to the mirrors.
func DefaultSites() []*Site {
	return []*Site{
		{Country: "GB", BaseURL: "https://planet.openstreetmap.org/pbf/", AvoidByDefault: true},
		{Country: "DE", BaseURL: "https://ftp5.gwdg.de/pub/misc/openstreetmap/planet.openstreetmap.org/pbf/"},
		{Country: "DE", BaseURL: "https://ftp.fau.de/osm-planet/pbf/"},
		{Country: "DE", BaseURL: "https://ftp.spline.de/pub/openstreetmap/pbf/"},
		{Country: "NL", BaseURL: "https://ftp.nluug.nl/maps/planet.openstreetmap.org/pbf/"},
		{Country: "US", BaseURL: "https://ftp.osuosl.org/pub/openstreetmap/pbf/"},
	}
}
