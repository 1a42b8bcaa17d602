// Package resolve decides which planet file the mirrors agree on.
package resolve

import (
	"sort"
	"strconv"
	"time"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/metrics"
	"github.com/cperrin88/geofetch/pkg/mirror"
)

// HashGroups maps a content hash to the sources believed to hold those bytes.
type HashGroups map[string][]*mirror.Source

// Hashes returns the group keys in sorted order.
func (g HashGroups) Hashes() []string {
	hashes := make([]string, 0, len(g))
	for h := range g {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	return hashes
}

// attribute extracts one comparable optional value from a source.
type attribute struct {
	name  string
	value func(*mirror.Source) (string, bool)
}

var (
	timestampAttr = attribute{
		name: "timestamp",
		value: func(s *mirror.Source) (string, bool) {
			if s.Timestamp == nil {
				return "", false
			}
			return s.Timestamp.Format(time.DateOnly), true
		},
	}
	lengthAttr = attribute{
		name: "length",
		value: func(s *mirror.Source) (string, bool) {
			if s.FileLength == nil {
				return "", false
			}
			return strconv.FormatInt(*s.FileLength, 10), true
		},
	}
)

// Resolve groups sources by hash, verifies that timestamps and lengths agree
// per hash across the whole set, infers missing hashes from file length and
// orders every group. Sources whose hash stays unknown are dropped.
func Resolve(sources []*mirror.Source) (HashGroups, error) {
	groups := make(HashGroups)
	var unresolved []*mirror.Source
	for _, src := range sources {
		if src.Hash == nil {
			unresolved = append(unresolved, src)
			continue
		}
		groups[*src.Hash] = append(groups[*src.Hash], src)
	}

	if _, err := checkUniform(groups, timestampAttr); err != nil {
		return nil, err
	}
	lengthToHash, err := checkUniform(groups, lengthAttr)
	if err != nil {
		return nil, err
	}

	if len(unresolved) > 0 {
		dropped := InferHashes(unresolved, lengthIndex(lengthToHash))
		for _, src := range unresolved {
			if src.Hash != nil {
				groups[*src.Hash] = append(groups[*src.Hash], src)
			}
		}
		for _, src := range dropped {
			metrics.UnresolvedSources.Inc()
			logger.Warn("Dropping source without a resolvable hash", logger.Fields{"source": src.String()})
		}
	}

	if len(groups) == 0 {
		return nil, errors.ErrNoConsistentSource
	}

	for _, group := range groups {
		sortGroup(group)
	}
	return groups, nil
}

// checkUniform verifies attr in both directions: all sources of one hash agree
// on its value, and no value is claimed by two hashes. It returns the
// value -> hash map.
func checkUniform(groups HashGroups, attr attribute) (map[string]string, error) {
	valueToHash := make(map[string]string)
	for _, hash := range groups.Hashes() {
		hashValue, seen := "", false
		for _, src := range groups[hash] {
			v, ok := attr.value(src)
			if !ok {
				continue
			}
			if seen && v != hashValue {
				return nil, errors.ErrConflictingAttribute(attr.name, hash, hashValue, v)
			}
			hashValue, seen = v, true

			if other, exists := valueToHash[v]; exists && other != hash {
				return nil, errors.ErrSharedAttribute(attr.name, v, other, hash)
			}
			valueToHash[v] = hash
		}
	}
	return valueToHash, nil
}

func lengthIndex(lengthToHash map[string]string) map[int64][]string {
	index := make(map[int64][]string, len(lengthToHash))
	for v, hash := range lengthToHash {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		index[n] = append(index[n], hash)
	}
	return index
}

// InferHashes assigns a hash to every source whose file length is backed by
// exactly one hash in index. Sources with an unknown, unmatched or ambiguous
// length are returned unchanged.
func InferHashes(sources []*mirror.Source, index map[int64][]string) []*mirror.Source {
	var unresolved []*mirror.Source
	for _, src := range sources {
		if src.FileLength == nil {
			unresolved = append(unresolved, src)
			continue
		}
		candidates := uniqueStrings(index[*src.FileLength])
		if len(candidates) != 1 {
			unresolved = append(unresolved, src)
			continue
		}
		hash := candidates[0]
		src.Hash = &hash
		logger.Debug("Inferred hash from file length", logger.Fields{"source": src.URL, "hash": hash})
	}
	return unresolved
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// sortGroup orders sources by (timestamp, length); a missing value sorts last.
func sortGroup(group []*mirror.Source) {
	sort.SliceStable(group, func(i, j int) bool {
		if c := compareTimestamps(group[i].Timestamp, group[j].Timestamp); c != 0 {
			return c < 0
		}
		return compareLengths(group[i].FileLength, group[j].FileLength) < 0
	})
}

// compareTimestamps orders optional timestamps with nil as the maximum.
func compareTimestamps(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

// compareLengths orders optional lengths with nil as the maximum.
func compareLengths(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
