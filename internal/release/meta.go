package release

import "strings"

// Track describes one audio or subtitle stream of the upload, as extracted
// by the media probe. Title carries the free-form stream title when present
// (used for dub-variant and commentary detection).
type Track struct {
	Language string `json:"language"`
	Title    string `json:"title,omitempty"`
}

// Meta describes the release about to be uploaded. It is owned by the
// calling orchestrator for the whole upload job; the dupe checker only
// reads it and returns its findings as an Outcome.
type Meta struct {
	Title      string `json:"title"`
	Year       string `json:"year,omitempty"`
	Category   string `json:"category"`          // "MOVIE" or "TV"
	Type       string `json:"type"`              // WEBDL, WEBRIP, ENCODE, REMUX, HDTV, DVDRIP, DISC
	Source     string `json:"source"`            // "Web", "Blu-ray", "HDTV", "DVD", ...
	Resolution string `json:"resolution"`        // "2160p", "1080p", ...
	Season     string `json:"season,omitempty"`  // "S04"
	Episode    string `json:"episode,omitempty"` // "E02"; empty for season packs
	Name       string `json:"name"`              // generated release name
	UUID       string `json:"uuid"`              // working file/folder name
	Path       string `json:"path,omitempty"`    // source path on disk
	Tag        string `json:"tag,omitempty"`     // release group tag, "-GRP"
	HDR        string `json:"hdr,omitempty"`     // raw HDR string, e.g. "DV HDR10+"
	IsDisc     string `json:"is_disc,omitempty"` // "", "BDMV", "DVD", "HDDVD"
	SD         bool   `json:"sd,omitempty"`

	VideoEncode string `json:"video_encode,omitempty"` // "x264", "x265", ...
	FileSize    int64  `json:"file_size,omitempty"`    // main video file size in bytes
	SourceSize  int64  `json:"source_size,omitempty"`  // total content size in bytes

	FileList []string `json:"filelist,omitempty"` // full paths of upload files

	AudioTracks      []Track `json:"audio_tracks,omitempty"`
	SubtitleTracks   []Track `json:"subtitle_tracks,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"` // ISO 639-1
	Probed           bool    `json:"probed,omitempty"`            // media probe ran
}

// IsTV reports whether the upload is episodic content.
func (m *Meta) IsTV() bool { return m.Category == "TV" }

// IsDiscUpload reports whether the upload is a full disc (BDMV/DVD/HDDVD).
func (m *Meta) IsDiscUpload() bool { return m.IsDisc != "" }

// TargetsEpisode reports whether the upload is a single episode rather
// than a season pack.
func (m *Meta) TargetsEpisode() bool { return strings.TrimSpace(m.Episode) != "" }
