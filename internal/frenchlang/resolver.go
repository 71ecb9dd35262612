package frenchlang

import (
	"log/slog"

	"tugboat/internal/release"
)

// FlagSupersede marks a candidate whose French audio posture is superior
// to the upload's. The exclusion pipeline keeps flagged candidates as
// blocking dupes once season and resolution are confirmed to match.
const FlagSupersede = "french_lang_supersede"

// Apply runs the hierarchy pre-pass over a candidate list:
//
//   - Upload has French audio: candidates ranked strictly lower (VOSTFR,
//     VO) are dropped outright; untagged candidates are kept since their
//     posture is unknown.
//   - Upload lacks French audio: candidates with French audio ranked above
//     the upload are flagged with FlagSupersede and kept. The flag does not
//     bypass season/resolution checks downstream.
//
// Silent (MUET) uploads are exempt and pass through unchanged. Re-applying
// never duplicates the flag.
func Apply(candidates []release.Entry, meta *release.Meta, logger *slog.Logger) []release.Entry {
	_, ownLevel, subject := OwnLevel(meta)
	if !subject {
		return candidates
	}

	if HasFrenchAudio(ownLevel) {
		filtered := make([]release.Entry, 0, len(candidates))
		for _, c := range candidates {
			_, level := ExtractTag(c.Name)
			if HasFrenchAudio(level) || level == LevelNone {
				filtered = append(filtered, c)
				continue
			}
			if logger != nil {
				logger.Debug("dropping inferior french candidate",
					slog.String("candidate", c.Name),
					slog.Int("candidate_level", level),
					slog.Int("upload_level", ownLevel),
				)
			}
		}
		return filtered
	}

	for i := range candidates {
		_, level := ExtractTag(candidates[i].Name)
		if HasFrenchAudio(level) && level > ownLevel {
			candidates[i].AddFlag(FlagSupersede)
			if logger != nil {
				logger.Debug("flagging superior french candidate",
					slog.String("candidate", candidates[i].Name),
					slog.Int("candidate_level", level),
					slog.Int("upload_level", ownLevel),
				)
			}
		}
	}
	return candidates
}
