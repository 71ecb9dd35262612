package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tugboat/internal/dupes"
	"tugboat/internal/frenchlang"
	"tugboat/internal/history"
	"tugboat/internal/logging"
	"tugboat/internal/naming"
	"tugboat/internal/release"
	"tugboat/internal/trackers"
)

func newDupecheckCommand(ctx *commandContext) *cobra.Command {
	var metaPath string
	var candidatesPath string
	var trackerFlags []string
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "dupecheck",
		Short: "Filter tracker search results down to genuine duplicates",
		Long: `Dupecheck runs the exclusion rule chain over the candidate releases a
tracker search returned and reports which of them block the upload, plus
any season packs eligible as trump-report targets.

The candidates file holds either a JSON array (one tracker, named with
--tracker) or an object mapping tracker names to arrays. Array items may
be bare name strings or objects with the usual search-result fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			meta, err := loadMeta(metaPath)
			if err != nil {
				return err
			}
			byTracker, err := loadCandidates(candidatesPath, trackerFlags)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger := ctx.logger.With(logging.String(logging.FieldRunID, runID))

			checker := dupes.NewChecker(cfg, logger)
			checker.RegisterNamer("HUNO", naming.NewBuilder())

			var store *history.Store
			if !noHistory {
				store, err = history.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			// Annotations are shared across trackers so trump targets
			// and season-pack notes accumulate over the whole run.
			notes := release.Annotations{}
			blocked := false
			for _, tracker := range sortedKeys(byTracker) {
				entries, err := release.ParseCandidates(byTracker[tracker])
				if err != nil {
					return fmt.Errorf("%s candidates: %w", tracker, err)
				}
				if trackers.IsFrench(tracker) {
					entries = frenchlang.Apply(entries, meta, logger)
				}

				outcome := checker.FilterInto(entries, meta, tracker, notes)
				if outcome.Blocked() {
					blocked = true
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderOutcome(&outcome, meta))

				if store != nil {
					rec := history.Record{
						RunID:         runID,
						Tracker:       tracker,
						UploadName:    meta.Name,
						Candidates:    len(entries),
						Survivors:     len(outcome.Survivors),
						MatchedName:   outcome.Notes.String(release.MatchedNameKey(tracker)),
						MatchedReason: outcome.MatchedReason(),
						TrumpableID:   outcome.Notes.String(release.KeyTrumpableID),
						TrumpTargets:  len(outcome.Notes.TrumpTargets(tracker)),
					}
					if err := store.Append(cmd.Context(), rec); err != nil {
						return err
					}
				}
			}

			if blocked {
				logger.Info("upload blocked by existing duplicates")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&metaPath, "meta", "m", "", "Upload metadata JSON file")
	cmd.Flags().StringVarP(&candidatesPath, "candidates", "d", "", "Candidate list JSON file")
	cmd.Flags().StringArrayVarP(&trackerFlags, "tracker", "t", nil, "Tracker name (repeatable; required for array-form candidate files)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording outcomes to the history database")
	_ = cmd.MarkFlagRequired("meta")
	_ = cmd.MarkFlagRequired("candidates")

	return cmd
}

func loadMeta(path string) (*release.Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	var meta release.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}
	return &meta, nil
}

// loadCandidates accepts both candidate file shapes and returns raw
// candidates grouped by tracker name.
func loadCandidates(path string, trackerFlags []string) (map[string][]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var grouped map[string][]any
	if err := json.Unmarshal(data, &grouped); err == nil {
		byTracker := upperKeys(grouped)
		if len(trackerFlags) == 0 {
			return byTracker, nil
		}
		selected := make(map[string][]any, len(trackerFlags))
		for _, tracker := range trackerFlags {
			tracker = strings.ToUpper(strings.TrimSpace(tracker))
			if raw, ok := byTracker[tracker]; ok {
				selected[tracker] = raw
			} else {
				return nil, fmt.Errorf("candidates file has no entry for tracker %s", tracker)
			}
		}
		return selected, nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	if len(trackerFlags) != 1 {
		return nil, fmt.Errorf("array-form candidate files require exactly one --tracker")
	}
	tracker := strings.ToUpper(strings.TrimSpace(trackerFlags[0]))
	return map[string][]any{tracker: list}, nil
}

func sortedKeys(in map[string][]any) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func upperKeys(in map[string][]any) map[string][]any {
	out := make(map[string][]any, len(in))
	for k, v := range in {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}
