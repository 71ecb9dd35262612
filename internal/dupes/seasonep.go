package dupes

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	seasonTokenRe  = regexp.MustCompile(`[sS](\d+)`)
	digitRunRe     = regexp.MustCompile(`\d+`)
	episodeTokenRe = regexp.MustCompile(`(?i)e\d{2}`)
)

// SeasonEpisodeMatch checks a normalized candidate name against the
// upload's season/episode target. The season token is extracted from
// targetSeason ("S04" style); targetEpisode contributes every embedded
// digit run, so multi-episode targets like "E01E02" work. A candidate
// without any E-token is a season pack.
//
// With no target episode (the upload is itself a season pack), only
// same-season packs match. With a target episode, a same-season pack
// always matches (it contains the episode, seasonPack=true) and a
// same-season episode file matches only on an episode-number hit
// (seasonPack=false).
func SeasonEpisodeMatch(name, targetSeason, targetEpisode string) (matched, seasonPack bool) {
	var seasonRe *regexp.Regexp
	if m := seasonTokenRe.FindStringSubmatch(targetSeason); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			seasonRe = regexp.MustCompile(fmt.Sprintf(`(?i)s%02d`, n))
		}
	}

	var targetEpisodes []int
	for _, run := range digitRunRe.FindAllString(targetEpisode, -1) {
		if n, err := strconv.Atoi(run); err == nil {
			targetEpisodes = append(targetEpisodes, n)
		}
	}

	isSeasonPack := !episodeTokenRe.MatchString(name)

	if len(targetEpisodes) == 0 {
		seasonMatches := seasonRe != nil && seasonRe.MatchString(name)
		return seasonMatches && isSeasonPack, seasonMatches
	}

	if seasonRe != nil {
		if isSeasonPack {
			return seasonRe.MatchString(name), true
		}
		episodeHit := false
		for _, ep := range targetEpisodes {
			epRe := regexp.MustCompile(fmt.Sprintf(`(?i)e%02d`, ep))
			if epRe.MatchString(name) {
				episodeHit = true
				break
			}
		}
		return seasonRe.MatchString(name) && episodeHit, false
	}

	return false, false
}
