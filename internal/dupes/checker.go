package dupes

import (
	"log/slog"
	"path/filepath"
	"strings"

	"tugboat/internal/config"
	"tugboat/internal/logging"
	"tugboat/internal/release"
	"tugboat/internal/trackers"
)

// Checker filters tracker search results down to genuine duplicates of the
// release being uploaded. It holds no per-invocation state; Filter may be
// called concurrently for different trackers.
type Checker struct {
	cfg    *config.Config
	namers map[string]trackers.Namer
	logger *slog.Logger
}

// NewChecker constructs a dupe checker. cfg supplies per-tracker internal
// uploader settings; a nil logger disables decision logging.
func NewChecker(cfg *config.Config, logger *slog.Logger) *Checker {
	return &Checker{
		cfg:    cfg,
		namers: make(map[string]trackers.Namer),
		logger: logging.NewComponentLogger(logger, "dupes"),
	}
}

// RegisterNamer installs the canonical-name builder for a tracker whose
// dupe check compares exact computed names.
func (c *Checker) RegisterNamer(tracker string, namer trackers.Namer) {
	c.namers[tracker] = namer
}

// evaluation carries the upload-side values every rule needs, computed
// once per Filter call.
type evaluation struct {
	checker *Checker
	meta    *release.Meta
	tracker string
	notes   release.Annotations
	total   int // candidate count at call time; two rules depend on it

	targetHDR    HDRTerms
	targetRes    string
	targetSource string
	tagSpaced    string // lower-cased tag with "-" replaced by " "
	tagRaw       string // lower-cased tag as-is
	videoEncode  string // lower-cased
	repackUpload bool   // working name carries "repack"
	isDVD        bool
	isDVDRip     bool
	isWebDL      bool
	isHDTV       bool
	filenames    []string // basenames of the upload's files
}

// candidate is the per-entry evaluation view shared by the rule chain.
type candidate struct {
	entry      release.Entry
	name       string // raw name
	normalized string
	files      []string
	fileCount  int
	fileHDR    HDRTerms
}

func (c *Checker) newEvaluation(meta *release.Meta, tracker string, notes release.Annotations, total int) *evaluation {
	ev := &evaluation{
		checker:      c,
		meta:         meta,
		tracker:      tracker,
		notes:        notes,
		total:        total,
		targetHDR:    RefineHDRTerms(meta.HDR),
		targetRes:    meta.Resolution,
		targetSource: meta.Source,
		tagSpaced:    strings.ReplaceAll(strings.ToLower(meta.Tag), "-", " "),
		tagRaw:       strings.ToLower(meta.Tag),
		videoEncode:  strings.ToLower(meta.VideoEncode),
		repackUpload: strings.Contains(strings.ToLower(meta.UUID), "repack"),
		isDVD:        meta.IsDisc == "DVD",
		isDVDRip:     meta.Type == "DVDRIP",
		isWebDL:      meta.Type == "WEBDL",
		isHDTV:       meta.Type == "HDTV",
	}
	if !meta.IsDiscUpload() {
		for _, path := range meta.FileList {
			ev.filenames = append(ev.filenames, filepath.Base(path))
		}
	}
	return ev
}

func newCandidate(entry release.Entry) candidate {
	normalized, _ := NormalizeName(entry.Name)

	files := entry.Files
	// Some trackers return the file list as one comma-joined string.
	if len(files) == 1 && strings.Contains(files[0], ",") {
		parts := strings.Split(files[0], ",")
		files = make([]string, 0, len(parts))
		for _, p := range parts {
			files = append(files, strings.TrimSpace(p))
		}
	}

	fileHDR, fromFlags := hdrFromFlags(entry.Flags)
	if !fromFlags {
		fileHDR = RefineHDRTerms(normalized)
	}

	return candidate{
		entry:      entry,
		name:       entry.Name,
		normalized: normalized,
		files:      files,
		fileCount:  entry.FileCount,
		fileHDR:    fileHDR,
	}
}

// rememberMatch persists details about the dupe that triggered a keep
// decision, namespaced by tracker for later reporting and trump filing.
func (ev *evaluation) rememberMatch(c *candidate, reason string) {
	ev.notes.Set(release.MatchedNameKey(ev.tracker), c.entry.Name)
	if c.entry.Link != "" {
		ev.notes.Set(release.MatchedLinkKey(ev.tracker), c.entry.Link)
	}
	if c.entry.Download != "" {
		ev.notes.Set(release.MatchedDownloadKey(ev.tracker), c.entry.Download)
	}
	ev.notes.Set(release.MatchedReasonKey(ev.tracker), reason)
	if c.fileCount != 0 {
		ev.notes.Set(release.MatchedFileCountKey(ev.tracker), c.fileCount)
	}
	if c.entry.ID != "" {
		ev.notes.Set(release.MatchedIDKey(ev.tracker), c.entry.ID)
	}
}

func (ev *evaluation) logExclusion(rule, reason string, c *candidate) {
	ev.checker.logger.Debug("excluding candidate",
		logging.String("tracker", ev.tracker),
		logging.String("rule", rule),
		logging.String("reason", reason),
		logging.String("candidate", c.name),
	)
}

// Filter runs the exclusion rule chain over already-parsed candidates and
// returns the outcome with fresh annotations.
func (c *Checker) Filter(candidates []release.Entry, meta *release.Meta, tracker string) release.Outcome {
	return c.FilterInto(candidates, meta, tracker, nil)
}

// FilterInto is Filter with caller-provided annotations, letting repeated
// checks for the same tracker accumulate trump targets without
// duplication. notes may be nil.
func (c *Checker) FilterInto(candidates []release.Entry, meta *release.Meta, tracker string, notes release.Annotations) release.Outcome {
	if notes == nil {
		notes = release.Annotations{}
	}
	// The trumpable marker is per call; a value left by an earlier tracker
	// sharing these notes must not carry over.
	delete(notes, release.KeyTrumpableID)
	ev := c.newEvaluation(meta, tracker, notes, len(candidates))

	survivors := make([]release.Entry, 0, len(candidates))
	for _, entry := range candidates {
		cand := newCandidate(entry)
		if !ev.exclude(&cand) {
			survivors = append(survivors, entry)
		}
	}

	return release.Outcome{Tracker: tracker, Survivors: survivors, Notes: notes}
}

// FilterInputs parses raw candidates (bare strings or mappings) and then
// filters them. The parse step is the engine's only hard failure mode.
func (c *Checker) FilterInputs(raw []any, meta *release.Meta, tracker string) (release.Outcome, error) {
	entries, err := release.ParseCandidates(raw)
	if err != nil {
		return release.Outcome{}, err
	}
	return c.Filter(entries, meta, tracker), nil
}

// exclude evaluates the rule chain. Everything is a dupe until a rule
// excludes it; the first terminal verdict wins.
func (ev *evaluation) exclude(c *candidate) bool {
	for _, r := range ruleChain {
		switch r.apply(ev, c) {
		case verdictKeep:
			return false
		case verdictExclude:
			return true
		}
	}
	ev.checker.logger.Debug("candidate passed all checks",
		logging.String("tracker", ev.tracker),
		logging.String("candidate", c.name),
	)
	return false
}
