package dupes

import (
	"testing"

	"tugboat/internal/config"
	"tugboat/internal/release"
)

func episodeMeta() *release.Meta {
	return &release.Meta{
		Title:      "Example Show",
		Category:   "TV",
		Season:     "S02",
		Episode:    "E05",
		Type:       "WEBDL",
		Source:     "WEB",
		Resolution: "1080p",
		Name:       "Example Show S02E05 1080p WEB-DL H264-GRP",
		UUID:       "Example.Show.S02E05.1080p.WEB-DL.H264-GRP",
		Tag:        "-GRP",
	}
}

func packEntry(id string) release.Entry {
	return release.Entry{
		Name: "Example.Show.S02.1080p.WEB-DL.H264-OTHER",
		ID:   id,
		Link: "https://tracker.example/t/" + id,
		Type: "WEB-DL",
		Res:  "1080p",
	}
}

func TestTrumpTargetSelection(t *testing.T) {
	checker := newTestChecker(t)
	meta := episodeMeta()

	outcome := checker.Filter([]release.Entry{packEntry("77")}, meta, "AITHER")

	targets := outcome.Notes.TrumpTargets("AITHER")
	if len(targets) != 1 {
		t.Fatalf("trump targets = %v, want one", targets)
	}
	if targets[0].ID != "77" || targets[0].Tracker != "AITHER" {
		t.Errorf("target = %+v, want id 77 on AITHER", targets[0])
	}
	if len(outcome.Survivors) != 1 {
		t.Errorf("survivors = %v, want the pack kept as a dupe", entryNames(outcome.Survivors))
	}
	if outcome.MatchedReason() != "season_pack_contains_episode" {
		t.Errorf("matched reason = %q, want season_pack_contains_episode", outcome.MatchedReason())
	}
}

func TestTrumpTargetEligibility(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*release.Entry)
		wantTargets int
	}{
		{
			name:        "matching type and resolution",
			mutate:      func(e *release.Entry) {},
			wantTargets: 1,
		},
		{
			name:        "missing type code",
			mutate:      func(e *release.Entry) { e.Type = "" },
			wantTargets: 0,
		},
		{
			name:        "resolution code mismatch",
			mutate:      func(e *release.Entry) { e.Res = "2160p" },
			wantTargets: 0,
		},
		{
			name:        "source code mismatch",
			mutate:      func(e *release.Entry) { e.Type = "Encode" },
			wantTargets: 0,
		},
		{
			name:        "missing id",
			mutate:      func(e *release.Entry) { e.ID = "" },
			wantTargets: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := packEntry("31")
			tt.mutate(&entry)

			outcome := newTestChecker(t).Filter([]release.Entry{entry}, episodeMeta(), "AITHER")
			if got := len(outcome.Notes.TrumpTargets("AITHER")); got != tt.wantTargets {
				t.Errorf("trump targets = %d, want %d", got, tt.wantTargets)
			}
			// Ineligible packs still block as season-pack dupes; resolution
			// in the pack name itself matches throughout.
			if len(outcome.Survivors) != 1 {
				t.Errorf("survivors = %v, want the pack kept", entryNames(outcome.Survivors))
			}
		})
	}
}

func TestTrumpTargetInternalGating(t *testing.T) {
	internalCfg := &config.Config{
		Trackers: map[string]config.Tracker{
			"AITHER": {Internal: true, InternalGroups: []string{"GRP"}},
		},
	}

	tests := []struct {
		name        string
		cfg         *config.Config
		entryName   string
		wantTargets int
	}{
		{
			name:        "internal release from own group",
			cfg:         internalCfg,
			entryName:   "Example.Show.S02.1080p.WEB-DL.H264-GRP",
			wantTargets: 1,
		},
		{
			name:        "internal release from another group",
			cfg:         internalCfg,
			entryName:   "Example.Show.S02.1080p.WEB-DL.H264-OTHER",
			wantTargets: 0,
		},
		{
			name:        "operator not internal on tracker",
			cfg:         &config.Config{},
			entryName:   "Example.Show.S02.1080p.WEB-DL.H264-GRP",
			wantTargets: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := packEntry("12")
			entry.Name = tt.entryName
			entry.Internal = true

			checker := NewChecker(tt.cfg, nil)
			outcome := checker.Filter([]release.Entry{entry}, episodeMeta(), "AITHER")
			if got := len(outcome.Notes.TrumpTargets("AITHER")); got != tt.wantTargets {
				t.Errorf("trump targets = %d, want %d", got, tt.wantTargets)
			}
		})
	}
}

func TestTrumpTargetDeduplication(t *testing.T) {
	checker := newTestChecker(t)
	meta := episodeMeta()
	notes := release.Annotations{}

	first := checker.FilterInto([]release.Entry{packEntry("77")}, meta, "AITHER", notes)
	second := checker.FilterInto([]release.Entry{packEntry("77")}, meta, "AITHER", notes)

	if got := len(second.Notes.TrumpTargets("AITHER")); got != 1 {
		t.Errorf("trump targets after rerun = %d, want 1", got)
	}
	if len(first.Survivors) != 1 || len(second.Survivors) != 1 {
		t.Error("pack must stay a blocking dupe on both passes")
	}

	// A distinct pack accumulates alongside the first.
	third := checker.FilterInto([]release.Entry{packEntry("78")}, meta, "AITHER", notes)
	if got := len(third.Notes.TrumpTargets("AITHER")); got != 2 {
		t.Errorf("trump targets after distinct pack = %d, want 2", got)
	}
}

func TestTrumpableIDResetBetweenTrackers(t *testing.T) {
	checker := newTestChecker(t)
	meta := movieMeta()
	notes := release.Annotations{}

	first := checker.FilterInto([]release.Entry{{
		Name:      "Example.Film.2023.1080p.BluRay.x264-OTHER",
		ID:        "42",
		Trumpable: true,
		Res:       "1080p",
	}}, meta, "AITHER", notes)
	if got := first.Notes.String(release.KeyTrumpableID); got != "42" {
		t.Fatalf("trumpable id on AITHER = %q, want 42", got)
	}

	second := checker.FilterInto([]release.Entry{{
		Name: "Example.Film.2023.1080p.BluRay.x264-OTHER",
	}}, meta, "LST", notes)
	if got := second.Notes.String(release.KeyTrumpableID); got != "" {
		t.Errorf("trumpable id on LST = %q, want none carried over", got)
	}
	// Tracker-namespaced match notes from the first pass are untouched.
	if got := second.Notes.String(release.MatchedIDKey("AITHER")); got != "42" {
		t.Errorf("AITHER matched id = %q, want 42 preserved", got)
	}
}

func TestTrumpTargetOnlyOnTrumpableTrackers(t *testing.T) {
	outcome := newTestChecker(t).Filter([]release.Entry{packEntry("77")}, episodeMeta(), "BLU")
	if got := len(outcome.Notes.TrumpTargets("BLU")); got != 0 {
		t.Errorf("trump targets = %d, want none on a tracker without trump reports", got)
	}
	if len(outcome.Survivors) != 1 {
		t.Error("season pack must still block the episode upload")
	}
}
