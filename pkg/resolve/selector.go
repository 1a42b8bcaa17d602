package resolve

import (
	"sort"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/mirror"
)

// spreadFactor is how much wider the newest group must be replicated than
// the runner-up before it is trusted.
const spreadFactor = 1.5

// minSitesToAvoid is the number of backing sites above which AvoidByDefault
// sites are dropped.
const minSitesToAvoid = 2

// SelectOptions tune the selection.
type SelectOptions struct {
	// ForceLatest always takes the top ranked group.
	ForceLatest bool
	// IncludePrimary keeps AvoidByDefault sites in the URL list.
	IncludePrimary bool
}

// Selection is the chosen file: its hash and the sources to download from.
type Selection struct {
	Hash    string
	Sources []*mirror.Source
}

// URLs returns the download URLs of the selection.
func (s Selection) URLs() []string {
	urls := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		urls = append(urls, src.URL)
	}
	return urls
}

type rankedGroup struct {
	hash    string
	sources []*mirror.Source
	sites   int
}

// siteCount returns the number of distinct sites backing sources. A site
// listing both latest and a dated file of the same hash counts once.
func siteCount(sources []*mirror.Source) int {
	sites := make(map[*mirror.Site]struct{}, len(sources))
	orphans := 0
	for _, src := range sources {
		if src.Site == nil {
			orphans++
			continue
		}
		sites[src.Site] = struct{}{}
	}
	return len(sites) + orphans
}

// Rank orders groups by (representative timestamp, number of sites), both
// descending. The representative timestamp is the group's first source after
// sorting; an unknown timestamp ranks highest.
func Rank(groups HashGroups) []string {
	ranked := make([]rankedGroup, 0, len(groups))
	for _, hash := range groups.Hashes() {
		if len(groups[hash]) == 0 {
			continue
		}
		ranked = append(ranked, rankedGroup{hash: hash, sources: groups[hash], sites: siteCount(groups[hash])})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := compareTimestamps(ranked[i].sources[0].Timestamp, ranked[j].sources[0].Timestamp); c != 0 {
			return c > 0
		}
		return ranked[i].sites > ranked[j].sites
	})

	hashes := make([]string, 0, len(ranked))
	for _, r := range ranked {
		hashes = append(hashes, r.hash)
	}
	return hashes
}

// Select picks the group to download. A newer group that is not yet
// replicated on spreadFactor times as many sites as the next one is passed
// over unless opts.ForceLatest is set. Empty groups are ignored.
func Select(groups HashGroups, opts SelectOptions) (Selection, error) {
	ranked := Rank(groups)
	if len(ranked) == 0 {
		return Selection{}, errors.ErrNoConsistentSource
	}

	chosen := ranked[0]
	if len(ranked) > 1 && !opts.ForceLatest {
		top, second := siteCount(groups[ranked[0]]), siteCount(groups[ranked[1]])
		if float64(top) < float64(second)*spreadFactor {
			logger.Info("Newest file is not widespread yet, using the previous one", logger.Fields{
				"newest": ranked[0], "newest_sites": top, "previous": ranked[1], "previous_sites": second,
			})
			chosen = ranked[1]
		}
	}

	sources := groups[chosen]
	if siteCount(sources) > minSitesToAvoid && !opts.IncludePrimary {
		sources = withoutAvoided(sources)
	}

	return Selection{Hash: chosen, Sources: sources}, nil
}

// withoutAvoided drops AvoidByDefault sites unless that would leave nothing.
func withoutAvoided(sources []*mirror.Source) []*mirror.Source {
	kept := make([]*mirror.Source, 0, len(sources))
	for _, src := range sources {
		if src.Site != nil && src.Site.AvoidByDefault {
			continue
		}
		kept = append(kept, src)
	}
	if len(kept) == 0 {
		return sources
	}
	return kept
}
