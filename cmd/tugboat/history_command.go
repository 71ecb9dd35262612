package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tugboat/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent dupe-check outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dupe checks recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				verdict := "clear"
				if rec.Survivors > 0 {
					verdict = "blocked"
				}
				rows = append(rows, []string{
					rec.CheckedAt.Local().Format("2006-01-02 15:04"),
					rec.Tracker,
					rec.UploadName,
					strconv.Itoa(rec.Candidates),
					strconv.Itoa(rec.Survivors),
					verdict,
					rec.MatchedReason,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Checked", "Tracker", "Upload", "Candidates", "Survivors", "Verdict", "Reason"},
				rows, 3, 4))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")

	return cmd
}
