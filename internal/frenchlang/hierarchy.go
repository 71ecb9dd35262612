package frenchlang

import (
	"regexp"
	"strings"
)

// Hierarchy levels, most desirable first. Levels at or above
// AudioThreshold indicate the release carries French audio; VOSTFR and VO
// are subtitle-only / original-audio idioms.
const (
	LevelNone       = 0
	LevelVO         = 1
	LevelVOSTFR     = 2
	LevelFrench     = 3
	LevelTrueFrench = 4
	LevelVOF        = 5
	LevelVF         = 6 // VFF / VFQ / VF2
	LevelMulti      = 7

	AudioThreshold = LevelFrench
)

type hierarchyTag struct {
	tag     string
	level   int
	pattern *regexp.Regexp
}

// Tags must be delimited by dots, spaces, hyphens, underscores, or string
// boundaries so VO never matches inside VOSTFR or VOF, and FRENCH never
// matches inside TRUEFRENCH.
var hierarchy = []hierarchyTag{
	{tag: "MULTI", level: LevelMulti},
	{tag: "VFF", level: LevelVF},
	{tag: "VFQ", level: LevelVF},
	{tag: "VF2", level: LevelVF},
	{tag: "VOF", level: LevelVOF},
	{tag: "TRUEFRENCH", level: LevelTrueFrench},
	{tag: "FRENCH", level: LevelFrench},
	{tag: "VOSTFR", level: LevelVOSTFR},
	{tag: "VO", level: LevelVO},
}

func init() {
	for i := range hierarchy {
		hierarchy[i].pattern = regexp.MustCompile(`(?:^|[.\s\-_])` + hierarchy[i].tag + `(?:[.\s\-_]|$)`)
	}
}

// ExtractTag scans a release name for the highest-level French language tag
// present and returns it with its hierarchy level. Matching is
// case-insensitive and word-boundary aware; ("", LevelNone) when no tag is
// found. MULTI co-occurring with a dub-precision suffix (MULTI.VFF) wins at
// LevelMulti.
func ExtractTag(name string) (string, int) {
	upper := strings.ToUpper(name)
	bestTag := ""
	bestLevel := LevelNone
	for _, h := range hierarchy {
		if h.level > bestLevel && h.pattern.MatchString(upper) {
			bestTag = h.tag
			bestLevel = h.level
		}
	}
	return bestTag, bestLevel
}

// HasFrenchAudio reports whether a hierarchy level implies French audio is
// present (as opposed to subtitles only, or no French at all).
func HasFrenchAudio(level int) bool { return level >= AudioThreshold }
