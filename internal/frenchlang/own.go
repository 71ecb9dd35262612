package frenchlang

import (
	"fmt"
	"regexp"
	"strings"

	"tugboat/internal/release"
)

var (
	caWordRe  = regexp.MustCompile(`\bCA\b`)
	vfiHintRe = regexp.MustCompile(`[.\-_]VFI[.\-_]`)
)

func wordHintRe(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[.\-_\s])` + tag + `(?:[.\-_\s]|$)`)
}

var (
	vfqHintRe = wordHintRe("VFQ")
	vffHintRe = wordHintRe("VFF")
	vf2HintRe = wordHintRe("VF2")
)

// audioTracks returns the upload's audio tracks minus commentary tracks.
func audioTracks(meta *release.Meta) []release.Track {
	tracks := make([]release.Track, 0, len(meta.AudioTracks))
	for _, t := range meta.AudioTracks {
		title := strings.ToLower(t.Title)
		if strings.Contains(title, "commentary") || strings.Contains(title, "comment") {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func audioLanguages(tracks []release.Track) []string {
	langs := make([]string, 0, len(tracks))
	seen := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		raw := strings.ToLower(strings.TrimSpace(t.Language))
		if raw == "" {
			// Infer from track title when the language tag is missing.
			title := strings.ToLower(t.Title)
			switch {
			case strings.Contains(title, "french"), strings.Contains(title, "français"), strings.Contains(title, "francais"):
				raw = "french"
			case strings.Contains(title, "english"), strings.Contains(title, "anglais"):
				raw = "english"
			}
		}
		code := normalizeLang(raw)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		langs = append(langs, code)
	}
	return langs
}

// frenchDubSuffix determines the French dub variant from the audio tracks'
// language region codes and titles. Returns "VFF", "VFQ", "VF2", "VF<n>"
// for n>2 distinct variants, or "" when no variant can be inferred.
func frenchDubSuffix(tracks []release.Track) string {
	var variants []string
	add := func(v string) {
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	for _, t := range tracks {
		ll := strings.ToLower(strings.TrimSpace(t.Language))
		switch ll {
		case "fr-fr":
			add("fr-fr")
		case "fr-ca", "fr-qc":
			add("fr-ca")
		case "fr-be", "fr-ch":
			// Belgium/Switzerland use the France dub.
			add("fr-fr")
		case "fr", "fre", "fra", "french", "français", "francais":
			title := strings.ToUpper(t.Title)
			isCanadian := strings.Contains(title, "VFQ") ||
				strings.Contains(title, "CANADA") ||
				strings.Contains(title, "CANADIEN") ||
				strings.Contains(title, "QUÉB") ||
				strings.Contains(title, "QUEB") ||
				strings.Contains(title, "(CA)") ||
				caWordRe.MatchString(title)
			switch {
			case isCanadian:
				add("fr-ca")
			case strings.Contains(title, "VFF"), strings.Contains(title, "(FR)"), strings.Contains(title, "FRANCE"):
				add("fr-fr")
			case strings.Contains(title, "VF2"):
				return "VF2"
			default:
				add("fr")
			}
		}
	}

	n := len(variants)
	if n == 0 {
		return ""
	}
	if n > 2 {
		return fmt.Sprintf("VF%d", n)
	}

	hasVFF := false
	hasVFQ := false
	hasGeneric := false
	for _, v := range variants {
		switch v {
		case "fr-fr":
			hasVFF = true
		case "fr-ca":
			hasVFQ = true
		case "fr":
			hasGeneric = true
		}
	}
	switch {
	case hasVFF && hasVFQ:
		return "VF2"
	case hasGeneric && hasVFQ:
		// Generic French + Canadian counts as two distinct versions.
		return "VF2"
	case hasVFQ:
		return "VFQ"
	case hasVFF:
		return "VFF"
	}
	return "" // generic fr only, no region to name
}

func hasFrenchSubs(meta *release.Meta) bool {
	for _, t := range meta.SubtitleTracks {
		if isFrenchLang(t.Language) {
			return true
		}
		title := strings.ToLower(t.Title)
		if strings.Contains(title, "french") || strings.Contains(title, "français") || strings.Contains(title, "francais") {
			return true
		}
	}
	return false
}

func hintFields(meta *release.Meta) [3]string {
	return [3]string{meta.UUID, meta.Name, meta.Path}
}

func detectTrueFrench(meta *release.Meta) bool {
	for _, f := range hintFields(meta) {
		if strings.Contains(strings.ToUpper(f), "TRUEFRENCH") {
			return true
		}
	}
	return false
}

func detectVFI(meta *release.Meta) bool {
	for _, f := range hintFields(meta) {
		upper := strings.ToUpper(f)
		if vfiHintRe.MatchString(upper) || strings.HasSuffix(upper, ".VFI") || strings.HasSuffix(upper, "-VFI") {
			return true
		}
	}
	return false
}

func detectHint(meta *release.Meta, re *regexp.Regexp) bool {
	for _, f := range hintFields(meta) {
		if re.MatchString(strings.ToUpper(f)) {
			return true
		}
	}
	return false
}

// AudioString builds the upload's French language tag from its audio and
// subtitle tracks plus filename hints. Results:
//
//	Single dub:  VOF, VFF, VFI, VFQ
//	Multi audio: MULTI.VOF, MULTI.VFF, MULTI.VFQ, MULTI.VF2
//	Subs only:   VOSTFR
//	Silent:      MUET (or MUET.VOSTFR)
//	Other VO:    "" (no French at all)
//
// TRUEFRENCH filename hints map to VFF, its modern equivalent.
func AudioString(meta *release.Meta) string {
	if !meta.Probed {
		return ""
	}

	tracks := audioTracks(meta)
	if len(tracks) == 0 {
		// MUET: media probed but no audio streams at all.
		if hasFrenchSubs(meta) {
			return "MUET.VOSTFR"
		}
		return "MUET"
	}

	langs := audioLanguages(tracks)
	if len(langs) == 0 {
		return ""
	}

	hasFrench := false
	nonFrench := false
	for _, l := range langs {
		if l == "FRA" {
			hasFrench = true
		} else {
			nonFrench = true
		}
	}

	suffix := frenchDubSuffix(tracks)
	originalFrench := strings.EqualFold(meta.OriginalLanguage, "fr")

	precision := func() string {
		switch {
		case suffix == "VF2", detectHint(meta, vf2HintRe):
			return "VF2"
		case originalFrench:
			return "VOF"
		case detectVFI(meta):
			return "VFI"
		case suffix == "VFQ":
			return "VFQ"
		case suffix == "VFF":
			return "VFF"
		case detectHint(meta, vfqHintRe):
			return "VFQ"
		case detectHint(meta, vffHintRe), detectTrueFrench(meta):
			return "VFF"
		default:
			// Generic fr with no region information.
			return "VFF"
		}
	}

	if !hasFrench {
		if hasFrenchSubs(meta) {
			return "VOSTFR"
		}
		return ""
	}

	if nonFrench || len(tracks) > 1 {
		return "MULTI." + precision()
	}

	if originalFrench {
		return "VOF"
	}
	return precision()
}

// OwnLevel derives the upload's own position on the hierarchy from its
// audio string. The bool result is false for silent (MUET) releases, which
// are exempt from the hierarchy entirely.
func OwnLevel(meta *release.Meta) (tag string, level int, subject bool) {
	audio := AudioString(meta)
	if strings.HasPrefix(audio, "MUET") {
		return "", LevelNone, false
	}
	tag, level = ExtractTag(audio)
	if tag == "" {
		// Compound strings like MULTI.VFF: take the best-ranked part.
		for _, part := range strings.Split(audio, ".") {
			t, lv := ExtractTag(part)
			if lv > level {
				tag, level = t, lv
			}
		}
	}
	return tag, level, true
}
