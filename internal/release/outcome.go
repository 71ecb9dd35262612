package release

import "fmt"

// Tracker-agnostic annotation keys.
const (
	KeyTrumpableID      = "trumpable_id"
	KeySeasonPackExists = "season_pack_exists"
	KeySeasonPackName   = "season_pack_name"
	KeySeasonPackLink   = "season_pack_link"
	KeySeasonPackID     = "season_pack_id"
	KeyFilenameMatch    = "filename_match"
	KeySizeMatch        = "size_match"
	KeyFileCountMatch   = "file_count_match"
)

// MatchedNameKey and friends build the tracker-namespaced annotation keys.
// Namespacing by tracker keeps concurrent dupe checks for different
// trackers from colliding when the caller merges their outcomes.
func MatchedNameKey(tracker string) string      { return tracker + "_matched_name" }
func MatchedLinkKey(tracker string) string      { return tracker + "_matched_link" }
func MatchedDownloadKey(tracker string) string  { return tracker + "_matched_download" }
func MatchedReasonKey(tracker string) string    { return tracker + "_matched_reason" }
func MatchedFileCountKey(tracker string) string { return tracker + "_matched_file_count" }
func MatchedIDKey(tracker string) string        { return tracker + "_matched_id" }

// MatchedEpisodeIDsKey names the annotation holding accumulated trump
// targets ([]TrumpTarget).
func MatchedEpisodeIDsKey(tracker string) string { return tracker + "_matched_episode_ids" }

// TrumpTarget describes one existing episode release eligible for a trump
// report against the season pack / episode being uploaded.
type TrumpTarget struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Link     string `json:"link,omitempty"`
	Tracker  string `json:"tracker"`
	Internal bool   `json:"internal"`
}

// Annotations collects the side-channel data a dupe check records for
// downstream reporting and trump filing. Keys follow the documented
// {tracker}_matched_* and tracker-agnostic names.
type Annotations map[string]any

// Set records a value, overwriting any previous one.
func (a Annotations) Set(key string, value any) { a[key] = value }

// String returns the value for key as a string, or "" when absent or not
// a string.
func (a Annotations) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// TrumpTargets returns the accumulated trump targets for a tracker.
func (a Annotations) TrumpTargets(tracker string) []TrumpTarget {
	targets, _ := a[MatchedEpisodeIDsKey(tracker)].([]TrumpTarget)
	return targets
}

// Merge copies every annotation from other, overwriting on conflict.
func (a Annotations) Merge(other Annotations) {
	for k, v := range other {
		a[k] = v
	}
}

// Outcome is the result of one tracker's dupe check: the candidates that
// survived filtering (still considered duplicates of the upload) plus the
// annotations recorded along the way. It is returned by value so callers
// compose results explicitly instead of sharing mutable state.
type Outcome struct {
	Tracker   string
	Survivors []Entry
	Notes     Annotations
}

// MatchedReason returns the recorded match reason for the outcome's
// tracker, or "" when no keep decision recorded one.
func (o *Outcome) MatchedReason() string {
	return o.Notes.String(MatchedReasonKey(o.Tracker))
}

// Blocked reports whether any duplicate survived, meaning the upload
// should be skipped (or trumped) on this tracker.
func (o *Outcome) Blocked() bool { return len(o.Survivors) > 0 }

// Summary renders a short operator-facing line for logs and history.
func (o *Outcome) Summary() string {
	if !o.Blocked() {
		return fmt.Sprintf("%s: no duplicates", o.Tracker)
	}
	reason := o.MatchedReason()
	if reason == "" {
		reason = "name/attribute match"
	}
	return fmt.Sprintf("%s: %d duplicate(s), reason %s", o.Tracker, len(o.Survivors), reason)
}
