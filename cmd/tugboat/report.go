package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/moistari/rls"

	"tugboat/internal/release"
)

// renderOutcome formats a single tracker's filter result as a short
// status line plus a survivor table and, when present, a trump target
// table.
func renderOutcome(outcome *release.Outcome, meta *release.Meta) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", outcome.Summary())
	if reason := outcome.MatchedReason(); reason != "" {
		fmt.Fprintf(&b, "  matched: %s (%s)\n",
			outcome.Notes.String(release.MatchedNameKey(outcome.Tracker)), reason)
	}
	if pack := outcome.Notes.String(release.KeySeasonPackName); pack != "" {
		fmt.Fprintf(&b, "  season pack: %s\n", pack)
	}

	if len(outcome.Survivors) > 0 {
		rows := make([][]string, 0, len(outcome.Survivors))
		for _, entry := range outcome.Survivors {
			rows = append(rows, survivorRow(entry))
		}
		b.WriteString(renderTable(
			[]string{"Name", "Resolution", "Source", "Codec", "Group", "Size"},
			rows, 5))
		b.WriteByte('\n')
	}

	if targets := outcome.Notes.TrumpTargets(outcome.Tracker); len(targets) > 0 {
		rows := make([][]string, 0, len(targets))
		for _, t := range targets {
			uploader := "external"
			if t.Internal {
				uploader = "internal"
			}
			rows = append(rows, []string{t.ID, t.Name, uploader})
		}
		fmt.Fprintf(&b, "trump targets for %s %s%s:\n", meta.Title, meta.Season, meta.Episode)
		b.WriteString(renderTable([]string{"ID", "Name", "Uploader"}, rows))
		b.WriteByte('\n')
	}

	return b.String()
}

func survivorRow(entry release.Entry) []string {
	parsed := rls.ParseString(entry.Name)
	size := ""
	if entry.Size != nil && *entry.Size > 0 {
		size = humanize.IBytes(uint64(*entry.Size))
	}
	return []string{
		entry.Name,
		parsed.Resolution,
		parsed.Source,
		strings.Join(parsed.Codec, " "),
		parsed.Group,
		size,
	}
}
