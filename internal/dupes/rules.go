package dupes

import (
	"regexp"
	"strings"

	"tugboat/internal/frenchlang"
	"tugboat/internal/naming"
	"tugboat/internal/release"
)

type verdict int

const (
	verdictNext    verdict = iota // rule does not decide; try the next one
	verdictKeep                   // terminal: candidate stays a dupe
	verdictExclude                // terminal: candidate is not a dupe
)

type rule struct {
	name  string
	apply func(*evaluation, *candidate) verdict
}

// ruleChain is evaluated in order for every candidate; the first terminal
// verdict wins. Several rules are order-dependent: the french supersede
// short-circuit must precede everything, and season-pack trump selection
// must precede the generic season/episode exclusion.
var ruleChain = []rule{
	{"french_supersede", ruleFrenchSupersede},
	{"trumpable_bookkeeping", ruleTrumpableBookkeeping},
	{"file_and_size_shortcuts", ruleFileAndSizeShortcuts},
	{"disc_file_count", ruleDiscFileCount},
	{"repack_stale", ruleRepackStale},
	{"mtv_exact_name", ruleMTVExactName},
	{"bhd_exact_name", ruleBHDExactName},
	{"computed_name", ruleComputedName},
	{"framestor_uhd", ruleFramestorUHD},
	{"disc_m2ts", ruleDiscM2TS},
	{"disc_extension", ruleDiscExtension},
	{"sd_bypass", ruleSDBypass},
	{"hdr_split_catalog", ruleHDRSplitCatalog},
	{"dvd_tag", ruleDVDTag},
	{"source_mismatch", ruleSourceMismatch},
	{"resolution_hdr", ruleResolutionHDR},
	{"dvd_resolution", ruleDVDResolution},
	{"remux_bidirectional", ruleRemuxBidirectional},
	{"tv_season_episode", ruleTVSeasonEpisode},
	{"hdtv_web_catalog", ruleHDTVWebCatalog},
	{"outlier_size", ruleOutlierSize},
	{"rf_tag_presence", ruleRFTagPresence},
}

var (
	// Normalization turns "WEB-DL" into "web -dl", so both spellings appear here.
	webTerms    = []string{"web-dl", "web -dl", "webdl", "web dl"}
	blurayTerms = []string{"blu-ray", "blu ray", "bluray", "blu -ray"}

	// Bare numbers: SD categories list HD releases without the trailing "p".
	resolutionMarkers = []string{"1080", "720", "2160"}

	substringMatchTrackers = map[string]bool{"MTV": true, "AR": true, "RTF": true}
	framestorTrackers      = map[string]bool{"BHD": true, "MTV": true, "RTF": true, "AR": true}
	sdBypassTrackers       = map[string]bool{"BHD": true, "AITHER": true}
	trumpableTrackers      = map[string]bool{"AITHER": true, "LST": true}
	outlierSizeTrackers    = map[string]bool{"AITHER": true, "BHD": true, "HUNO": true, "OE": true, "ULCX": true}

	fileExtRe = regexp.MustCompile(`\.\w{2,4}$`)
)

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func (ev *evaluation) skipResolutionCheck() bool {
	return ev.isDVD || strings.Contains(ev.targetSource, "DVD") || ev.isDVDRip
}

// ruleFrenchSupersede keeps candidates the French hierarchy pre-pass
// flagged as linguistically superior, but only when season (TV) and
// resolution still line up: series searches return every release of a
// show, and a MULTI S01 1080p must never block a VOSTFR S04 2160p.
func ruleFrenchSupersede(ev *evaluation, c *candidate) verdict {
	if !c.entry.HasFlag(frenchlang.FlagSupersede) {
		return verdictNext
	}

	dominated := false
	if !ev.skipResolutionCheck() && ev.targetRes != "" && !strings.Contains(c.name, ev.targetRes) {
		ev.logExclusion("french_supersede", "resolution mismatch, falling through", c)
		dominated = true
	}
	if !dominated && ev.meta.IsTV() {
		matched, _ := SeasonEpisodeMatch(c.normalized, ev.meta.Season, ev.meta.Episode)
		if !matched {
			ev.logExclusion("french_supersede", "season/episode mismatch, falling through", c)
			dominated = true
		}
	}

	if !dominated {
		ev.rememberMatch(c, frenchlang.FlagSupersede)
		return verdictKeep
	}
	return verdictNext
}

// ruleTrumpableBookkeeping records the id of a same-resolution release the
// tracker itself marked trumpable. Never excludes on its own.
func ruleTrumpableBookkeeping(ev *evaluation, c *candidate) verdict {
	if trumpableTrackers[ev.tracker] && c.entry.Trumpable && c.entry.Res != "" && ev.targetRes == c.entry.Res {
		ev.notes.Set(release.KeyTrumpableID, c.entry.ID)
		ev.rememberMatch(c, "trumpable_id")
	}
	return verdictNext
}

// ruleFileAndSizeShortcuts matches on concrete file evidence: shared
// filenames (substring for the MTV family, exact elsewhere), file counts,
// and byte-exact sizes. A hit is the strongest possible dupe signal.
func ruleFileAndSizeShortcuts(ev *evaluation, c *candidate) verdict {
	linkNote := c.entry.Name + " = " + c.entry.Link

	sizeEqual := func() bool {
		return c.entry.Size != nil && ev.meta.SourceSize != 0 && *c.entry.Size == ev.meta.SourceSize
	}

	if !ev.meta.IsDiscUpload() {
		for _, file := range ev.filenames {
			if substringMatchTrackers[ev.tracker] {
				for _, f := range c.files {
					if f == "" {
						continue
					}
					if strings.Contains(strings.ToLower(file), strings.ToLower(f)) {
						ev.notes.Set(release.KeyFilenameMatch, linkNote)
						ev.rememberMatch(c, "filename")
						if c.fileCount != 0 && c.fileCount == len(ev.meta.FileList) {
							ev.notes.Set(release.KeyFileCountMatch, c.fileCount)
							ev.rememberMatch(c, "file_count")
							return verdictKeep
						}
						break
					}
				}
				if sizeEqual() {
					ev.notes.Set(release.KeySizeMatch, linkNote)
					ev.rememberMatch(c, "size")
					return verdictKeep
				}
			} else {
				for _, f := range c.files {
					if strings.EqualFold(file, f) {
						ev.notes.Set(release.KeyFilenameMatch, linkNote)
						ev.rememberMatch(c, "filename")
						ev.rememberMatch(c, "id")
						if c.fileCount != 0 && c.fileCount == len(ev.meta.FileList) {
							ev.notes.Set(release.KeyFileCountMatch, c.fileCount)
							ev.rememberMatch(c, "file_count")
							return verdictKeep
						}
						break
					}
				}
			}
		}
		if ev.tracker == "BHD" && sizeEqual() {
			ev.notes.Set(release.KeySizeMatch, linkNote)
			ev.rememberMatch(c, "size")
			return verdictKeep
		}
		return verdictNext
	}

	if sizeEqual() {
		ev.notes.Set(release.KeySizeMatch, linkNote)
		ev.rememberMatch(c, "size")
		return verdictKeep
	}
	return verdictNext
}

// ruleDiscFileCount: a disc upload cannot duplicate a single-file release.
func ruleDiscFileCount(ev *evaluation, c *candidate) verdict {
	if ev.meta.IsDiscUpload() && c.fileCount != 0 && c.fileCount < 2 {
		ev.logExclusion("disc_file_count", "file count less than 2 for disc upload", c)
		return verdictExclude
	}
	return verdictNext
}

// ruleRepackStale: when uploading a repack, the group's original
// (non-repack) release is stale, not a dupe of the repack.
func ruleRepackStale(ev *evaluation, c *candidate) verdict {
	if ev.repackUpload && !strings.Contains(c.normalized, "repack") && strings.Contains(c.normalized, ev.tagRaw) {
		ev.logExclusion("repack_stale", "candidate predates repack", c)
		return verdictExclude
	}
	return verdictNext
}

func ruleMTVExactName(ev *evaluation, c *candidate) verdict {
	if ev.tracker != "MTV" {
		return verdictNext
	}
	target := strings.ReplaceAll(strings.ReplaceAll(ev.meta.Name, " ", "."), "DD+", "DDP")
	if naming.NormalizeAudioTokens(target) == c.entry.Name {
		ev.notes.Set(release.KeyFilenameMatch, c.entry.Name+" = "+c.entry.Link)
		return verdictKeep
	}
	return verdictNext
}

func ruleBHDExactName(ev *evaluation, c *candidate) verdict {
	if ev.tracker != "BHD" {
		return verdictNext
	}
	if c.entry.Name == strings.ReplaceAll(ev.meta.Name, "DD+", "DDP") {
		ev.notes.Set(release.KeyFilenameMatch, c.entry.Name+" = "+c.entry.Link)
		return verdictKeep
	}
	return verdictNext
}

// ruleComputedName compares against the canonical name the tracker itself
// would generate for this upload, for trackers with a registered Namer.
func ruleComputedName(ev *evaluation, c *candidate) verdict {
	namer, ok := ev.checker.namers[ev.tracker]
	if !ok {
		return verdictNext
	}
	name, err := namer.Name(ev.meta)
	if err != nil || name == "" {
		return verdictNext
	}
	if c.entry.Name == name {
		ev.notes.Set(release.KeyFilenameMatch, c.entry.Name+" = "+c.entry.Link)
		return verdictKeep
	}
	return verdictNext
}

// ruleFramestorUHD handles a disc-numbering quirk in one group's 2160p
// releases that otherwise trips resolution comparison.
func ruleFramestorUHD(ev *evaluation, c *candidate) verdict {
	if !framestorTrackers[ev.tracker] {
		return verdictNext
	}
	if strings.Contains(ev.targetRes, "2160p") && strings.Contains(c.name, "2160p") &&
		(strings.Contains(strings.ToLower(c.name), "framestor") || strings.Contains(strings.ToLower(ev.meta.UUID), "framestor")) {
		return verdictKeep
	}
	return verdictNext
}

func ruleDiscM2TS(ev *evaluation, c *candidate) verdict {
	if ev.meta.IsDiscUpload() && strings.HasSuffix(strings.ToLower(c.name), ".m2ts") {
		return verdictKeep
	}
	return verdictNext
}

// ruleDiscExtension: a disc upload against a candidate that is plainly a
// single file of some other type is not a dupe.
func ruleDiscExtension(ev *evaluation, c *candidate) verdict {
	if ev.meta.IsDiscUpload() && fileExtRe.MatchString(c.name) {
		ev.logExclusion("disc_extension", "file extension on disc candidate", c)
		return verdictExclude
	}
	return verdictNext
}

// ruleSDBypass: some trackers list SD and HD cuts of a release under one
// SD category, so an HD resolution marker in the candidate still counts.
func ruleSDBypass(ev *evaluation, c *candidate) verdict {
	if ev.meta.SD && sdBypassTrackers[ev.tracker] && containsAny(c.name, resolutionMarkers) {
		return verdictKeep
	}
	return verdictNext
}

// ruleHDRSplitCatalog: a 1080p HDR upload is not blocked by the 4K entry
// alone; trackers catalog those separately.
func ruleHDRSplitCatalog(ev *evaluation, c *candidate) verdict {
	if !ev.targetHDR.Empty() && strings.Contains(ev.targetRes, "1080p") && strings.Contains(c.name, "2160p") {
		ev.logExclusion("hdr_split_catalog", "4K release does not block 1080p HDR", c)
		return verdictKeep
	}
	return verdictNext
}

// ruleDVDTag: DVD uploads on Aither/LST are matched on the release tag
// alone, since DVD names carry no comparable resolution information.
func ruleDVDTag(ev *evaluation, c *candidate) verdict {
	if !trumpableTrackers[ev.tracker] || !ev.isDVD {
		return verdictNext
	}
	if len(c.name) >= 1 && ev.tagSpaced == "" {
		return verdictKeep
	}
	tag := strings.TrimSpace(ev.tagSpaced)
	if tag != "" && strings.Contains(c.normalized, tag) {
		return verdictKeep
	}
	ev.logExclusion("dvd_tag", "tag not found in candidate", c)
	return verdictExclude
}

// ruleSourceMismatch: WEB-DL, HDTV, and BluRay markers are mutually
// exclusive in both directions.
func ruleSourceMismatch(ev *evaluation, c *candidate) verdict {
	if ev.isWebDL {
		if strings.Contains(c.normalized, "hdtv") && !containsAny(c.normalized, webTerms) {
			ev.logExclusion("source_mismatch", "WEB-DL vs HDTV", c)
			return verdictExclude
		}
		if containsAny(c.normalized, blurayTerms) && !containsAny(c.normalized, webTerms) {
			ev.logExclusion("source_mismatch", "WEB-DL vs BluRay", c)
			return verdictExclude
		}
	}
	if !ev.isWebDL && containsAny(c.normalized, webTerms) {
		ev.logExclusion("source_mismatch", "non-WEB-DL vs WEB-DL", c)
		return verdictExclude
	}
	return verdictNext
}

// ruleResolutionHDR enforces resolution and HDR equality, except for DVD
// material whose names carry no comparable resolution tags.
func ruleResolutionHDR(ev *evaluation, c *candidate) verdict {
	if ev.skipResolutionCheck() {
		return verdictNext
	}
	if ev.targetRes != "" && !strings.Contains(c.name, ev.targetRes) {
		ev.logExclusion("resolution_hdr", "resolution mismatch", c)
		return verdictExclude
	}
	if !MatchesHDR(c.fileHDR, ev.targetHDR, ev.meta, ev.tracker) {
		ev.logExclusion("resolution_hdr", "HDR terms mismatch", c)
		return verdictExclude
	}
	return verdictNext
}

// ruleDVDResolution: an HD-marked candidate cannot dupe a DVD upload, but
// stays in the list as a non-blocking sibling entry.
func ruleDVDResolution(ev *evaluation, c *candidate) verdict {
	if ev.isDVD && ev.tracker != "BHD" && containsAny(c.name, resolutionMarkers) {
		ev.logExclusion("dvd_resolution", "HD resolution marker against DVD upload", c)
		return verdictKeep
	}
	return verdictNext
}

// ruleRemuxBidirectional: a remux only dupes a remux, an encode only an
// encode.
func ruleRemuxBidirectional(ev *evaluation, c *candidate) verdict {
	uploadRemux := strings.Contains(strings.ToLower(ev.meta.Name), "remux")
	dupeRemux := strings.Contains(c.normalized, "remux")
	if uploadRemux && !dupeRemux {
		ev.logExclusion("remux_bidirectional", "upload is remux, candidate is not", c)
		return verdictExclude
	}
	if !uploadRemux && dupeRemux {
		ev.logExclusion("remux_bidirectional", "candidate is remux, upload is not", c)
		return verdictExclude
	}
	return verdictNext
}

func ruleHDTVWebCatalog(ev *evaluation, c *candidate) verdict {
	if ev.isHDTV && containsAny(c.normalized, webTerms) {
		return verdictKeep
	}
	return verdictNext
}

// ruleOutlierSize: with exactly one known comparison point, a 1080p x264
// upload at least 20% larger than it is likely bloated, so the candidate
// wins and the upload is the odd one out.
func ruleOutlierSize(ev *evaluation, c *candidate) verdict {
	if ev.total != 1 || ev.meta.IsDisc == "BDMV" || !outlierSizeTrackers[ev.tracker] {
		return verdictNext
	}
	if ev.meta.FileSize <= 0 || !strings.Contains(ev.targetRes, "1080") || !strings.Contains(ev.videoEncode, "x264") {
		return verdictNext
	}
	if c.entry.Size == nil || *c.entry.Size == 0 {
		return verdictNext
	}
	difference := float64(ev.meta.FileSize-*c.entry.Size) / float64(*c.entry.Size)
	if difference >= 0.20 {
		ev.logExclusion("outlier_size", "upload significantly larger than only candidate", c)
		return verdictExclude
	}
	return verdictNext
}

// ruleRFTagPresence: RF matches single candidates on the release tag.
func ruleRFTagPresence(ev *evaluation, c *candidate) verdict {
	if ev.total != 1 || ev.meta.IsDisc == "BDMV" || ev.tracker != "RF" {
		return verdictNext
	}
	tag := strings.TrimSpace(ev.tagSpaced)
	if tag == "" {
		return verdictNext
	}
	if strings.Contains(c.normalized, tag) {
		return verdictKeep
	}
	ev.logExclusion("rf_tag_presence", "tag not found in candidate", c)
	return verdictExclude
}
