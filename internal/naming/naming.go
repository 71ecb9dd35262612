// Package naming builds canonical release names for trackers whose dupe
// checks compare computed names exactly, and normalizes the audio-token
// spelling variations that otherwise defeat exact comparison.
package naming

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tugboat/internal/release"
)

var (
	ddpDotRe = regexp.MustCompile(`\.DDP\.(\d)`)
	ddDotRe  = regexp.MustCompile(`\.DD\.(\d)`)
	ac3DotRe = regexp.MustCompile(`\.AC3\.(\d)`)
	dtsDotRe = regexp.MustCompile(`\.DTS\.(\d)`)

	illegalTitleRe = regexp.MustCompile(`[^\w\s\-']`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
)

// NormalizeAudioTokens collapses dotted audio channel tokens (DDP.5.1,
// DD.5.1, AC3.5.1, DTS.5.1) into their joined forms so names that differ
// only in that spelling compare equal.
func NormalizeAudioTokens(name string) string {
	name = ddpDotRe.ReplaceAllString(name, ".DDP$1")
	name = ddDotRe.ReplaceAllString(name, ".DD$1")
	name = ac3DotRe.ReplaceAllString(name, ".AC3$1")
	name = dtsDotRe.ReplaceAllString(name, ".DTS$1")
	return name
}

// CleanTitle transliterates a title to ASCII and strips characters that
// never appear in release names, collapsing the remaining whitespace.
func CleanTitle(title string) string {
	cleaned := unidecode.Unidecode(title)
	cleaned = illegalTitleRe.ReplaceAllString(cleaned, "")
	cleaned = spaceRunRe.ReplaceAllString(strings.TrimSpace(cleaned), " ")
	return cleaned
}

// Builder assembles dot-separated release names in the common private
// tracker convention: Title.Year.SxxExx.Resolution.Source.HDR.Codec-TAG.
type Builder struct {
	titleCaser cases.Caser
}

// NewBuilder constructs a release name builder.
func NewBuilder() *Builder {
	return &Builder{titleCaser: cases.Title(language.English, cases.NoLower)}
}

// Name implements trackers.Namer.
func (b *Builder) Name(meta *release.Meta) (string, error) {
	parts := make([]string, 0, 8)

	title := CleanTitle(meta.Title)
	if title != "" {
		parts = append(parts, strings.ReplaceAll(b.titleCaser.String(title), " ", "."))
	}
	if meta.Year != "" && !meta.IsTV() {
		parts = append(parts, meta.Year)
	}
	if meta.IsTV() && meta.Season != "" {
		parts = append(parts, strings.ToUpper(meta.Season)+strings.ToUpper(meta.Episode))
	}
	if meta.Resolution != "" {
		parts = append(parts, meta.Resolution)
	}
	if source := sourceLabel(meta); source != "" {
		parts = append(parts, source)
	}
	if meta.HDR != "" {
		parts = append(parts, strings.ReplaceAll(meta.HDR, " ", "."))
	}
	if meta.VideoEncode != "" {
		parts = append(parts, meta.VideoEncode)
	}

	name := strings.Join(parts, ".")
	if tag := strings.TrimPrefix(meta.Tag, "-"); tag != "" {
		name += "-" + tag
	}
	return NormalizeAudioTokens(name), nil
}

func sourceLabel(meta *release.Meta) string {
	switch meta.Type {
	case "WEBDL":
		return "WEB-DL"
	case "WEBRIP":
		return "WEBRip"
	case "HDTV":
		return "HDTV"
	case "REMUX":
		return "REMUX"
	case "DVDRIP":
		return "DVDRip"
	default:
		return strings.ReplaceAll(meta.Source, " ", ".")
	}
}
