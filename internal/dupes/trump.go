package dupes

import (
	"strings"

	"tugboat/internal/release"
)

// ruleTVSeasonEpisode matches episodic content by season/episode tokens.
// A same-season season pack found while uploading a single episode is
// routed through the trump-target selector before the season-pack keep,
// since such a pack may be challengeable rather than merely blocking.
func ruleTVSeasonEpisode(ev *evaluation, c *candidate) verdict {
	if !ev.meta.IsTV() {
		return verdictNext
	}

	matched, isSeason := SeasonEpisodeMatch(c.normalized, ev.meta.Season, ev.meta.Episode)

	if isSeason && trumpableTrackers[ev.tracker] && ev.meta.TargetsEpisode() {
		if v := ev.selectTrumpTarget(c); v != verdictNext {
			return v
		}
	}

	if !matched {
		ev.logExclusion("tv_season_episode", "season/episode mismatch", c)
		return verdictExclude
	}

	if isSeason && ev.meta.TargetsEpisode() {
		// The upload's episode is contained in this existing season pack.
		ev.notes.Set(release.KeySeasonPackExists, true)
		ev.notes.Set(release.KeySeasonPackName, c.name)
		ev.notes.Set(release.KeySeasonPackLink, c.entry.Link)
		ev.notes.Set(release.KeySeasonPackID, c.entry.ID)
		ev.rememberMatch(c, "season_pack_contains_episode")
		return verdictKeep
	}

	return verdictNext
}

// selectTrumpTarget decides whether a same-season pack is an eligible
// trump target for the episode being uploaded. Eligibility requires the
// candidate's type/resolution codes to match the upload's source and
// resolution, and internal releases additionally require the uploader's
// own tag to be in the tracker's internal-groups list and present in the
// candidate name. Accepted targets accumulate de-duplicated by id,
// falling back to (link, tracker) when the id is absent.
func (ev *evaluation) selectTrumpTarget(c *candidate) verdict {
	typeID := strings.ToLower(c.entry.Type)
	resID := c.entry.Res
	if typeID == "" || resID == "" {
		return verdictNext
	}
	if !strings.Contains(typeID, strings.ToLower(ev.targetSource)) || ev.targetRes != resID {
		return verdictNext
	}

	if c.entry.Internal && !ev.isInternalUploader(c) {
		ev.logExclusion("trump_target", "internal release from another group", c)
		return verdictNext
	}

	key := release.MatchedEpisodeIDsKey(ev.tracker)
	existing, _ := ev.notes[key].([]release.TrumpTarget)
	entryID := c.entry.ID
	entryLink := c.entry.Link

	exists := false
	if entryID != "" || entryLink != "" {
		for _, t := range existing {
			if t.ID == entryID || (t.Link == entryLink && t.Tracker == ev.tracker) {
				exists = true
				break
			}
		}
	}

	if entryID != "" && !exists {
		ev.notes.Set(key, append(existing, release.TrumpTarget{
			ID:       entryID,
			Name:     c.name,
			Link:     entryLink,
			Tracker:  ev.tracker,
			Internal: c.entry.Internal,
		}))
		ev.rememberMatch(c, "season_pack_contains_episode")
		return verdictKeep
	}
	if exists {
		// Already recorded on an earlier pass; still a dupe.
		return verdictKeep
	}
	return verdictNext
}

// isInternalUploader reports whether the operator may trump an internal
// release: their configured group tag must appear both in the tracker's
// internal-groups list and in the candidate's name.
func (ev *evaluation) isInternalUploader(c *candidate) bool {
	settings := ev.checker.cfg.TrackerSettings(ev.tracker)
	if !settings.Internal {
		return false
	}
	if ev.tagSpaced == "" {
		return false
	}
	tagWithoutPrefix := ev.tagSpaced[1:]
	if tagWithoutPrefix == "" {
		return false
	}
	for _, group := range settings.InternalGroups {
		if strings.EqualFold(group, tagWithoutPrefix) && strings.Contains(c.normalized, strings.ToLower(tagWithoutPrefix)) {
			return true
		}
	}
	return false
}
