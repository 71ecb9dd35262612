package dupes

import (
	"fmt"
	"strings"

	"tugboat/internal/release"
)

// NormalizeName canonicalizes a release name for comparison: lower-cased,
// dot separators become spaces, a hyphen keeps itself but gains a leading
// space (so group tags like "-grp" stay findable), and whitespace runs
// collapse. Accepts a bare string or anything carrying a name; anything
// else fails with release.ErrInvalidEntry.
func NormalizeName(v any) (string, error) {
	var name string
	switch n := v.(type) {
	case string:
		name = n
	case release.Entry:
		name = n.Name
	case *release.Entry:
		if n == nil {
			return "", fmt.Errorf("%w: nil entry", release.ErrInvalidEntry)
		}
		name = n.Name
	case map[string]any:
		name = release.CoerceString(n["name"])
	default:
		return "", fmt.Errorf("%w: cannot normalize %T", release.ErrInvalidEntry, v)
	}

	normalized := strings.ToLower(name)
	normalized = strings.ReplaceAll(normalized, "-", " -")
	normalized = strings.ReplaceAll(normalized, ".", " ")
	return strings.Join(strings.Fields(normalized), " "), nil
}

// HDRTerms is the two-element lattice of high-dynamic-range markers: any of
// HDR/HDR10/HDR10+ collapses to HDR, DV/DoVi collapses to DV. Both may be
// present at once.
type HDRTerms struct {
	HDR bool
	DV  bool
}

// Empty reports whether no HDR marker is present (plain SDR).
func (t HDRTerms) Empty() bool { return !t.HDR && !t.DV }

func (t HDRTerms) String() string {
	switch {
	case t.HDR && t.DV:
		return "HDR+DV"
	case t.HDR:
		return "HDR"
	case t.DV:
		return "DV"
	default:
		return "SDR"
	}
}

// RefineHDRTerms extracts HDR terms from a raw string (an hdr metadata
// field or a normalized release name), case-insensitively.
func RefineHDRTerms(raw string) HDRTerms {
	upper := strings.ToUpper(raw)
	return HDRTerms{
		HDR: strings.Contains(upper, "HDR"),
		DV:  strings.Contains(upper, "DV") || strings.Contains(upper, "DOVI"),
	}
}

// hdrFromFlags builds HDR terms from tracker-supplied hint flags. The
// second result reports whether any HDR-relevant flag was present; flag
// lists carry unrelated markers too, and those must not suppress the
// fallback to parsing the release name.
func hdrFromFlags(flags []string) (HDRTerms, bool) {
	var terms HDRTerms
	seen := false
	for _, flag := range flags {
		switch strings.ToUpper(flag) {
		case "DV", "DOVI":
			terms.DV = true
			seen = true
		case "HDR", "HDR10", "HDR10+":
			terms.HDR = true
			seen = true
		}
	}
	return terms, seen
}

// MatchesHDR reports whether a candidate's HDR terms are equivalent to the
// upload's. DV implies a baked-in HDR10 layer except for WEB sources,
// which may ship DV-only; tracker ANT treats DV as implying HDR
// regardless. Once both sets carry HDR the DV distinction is redundant and
// is dropped before the final equality check.
func MatchesHDR(file, target HDRTerms, meta *release.Meta, tracker string) bool {
	simplify := func(t HDRTerms) HDRTerms {
		out := t
		if t.DV {
			if !strings.Contains(strings.ToLower(meta.Type), "web") {
				out.HDR = true
			}
			if tracker == "ANT" {
				out.HDR = true
			}
		}
		return out
	}

	fileSimple := simplify(file)
	targetSimple := simplify(target)

	if fileSimple.HDR && fileSimple.DV {
		fileSimple = HDRTerms{HDR: true}
		if targetSimple.HDR && targetSimple.DV {
			targetSimple = HDRTerms{HDR: true}
		}
	}

	return fileSimple == targetSimple
}
