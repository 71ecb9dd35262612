// Package trackers defines the boundary between the dupe-decision engine
// and the tracker-specific collaborators that feed it: search clients
// producing candidate lists and naming implementations producing a
// tracker's canonical release name. The engine never performs network I/O
// itself; it only consumes these interfaces' output.
package trackers

import (
	"context"
	"sort"
	"strings"

	"tugboat/internal/release"
)

// Searcher produces the raw candidate list for a dupe check. Items are
// either bare name strings or partial mappings; release.ParseCandidates
// normalizes them.
type Searcher interface {
	SearchExisting(ctx context.Context, meta *release.Meta) ([]any, error)
}

// Namer builds the canonical release name a tracker would assign the
// upload, used by exclusion rules that compare computed names exactly.
type Namer interface {
	Name(meta *release.Meta) (string, error)
}

// frenchTrackers lists the trackers that apply the French language
// hierarchy pre-pass to their search results.
var frenchTrackers = map[string]struct{}{
	"C411":   {},
	"G3MINI": {},
	"GF":     {},
	"LACALE": {},
	"TORR9":  {},
	"TOS":    {},
}

// IsFrench reports whether a tracker applies the French language
// hierarchy to dupe checking.
func IsFrench(name string) bool {
	_, ok := frenchTrackers[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// FrenchTrackers returns the sorted list of French trackers, for help
// text and validation.
func FrenchTrackers() []string {
	names := make([]string, 0, len(frenchTrackers))
	for name := range frenchTrackers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
