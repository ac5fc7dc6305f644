package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vitrine/internal/lineage"
	"vitrine/internal/record"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var creator string
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a creator's records grouped into version chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(func(e *env) error {
				who := strings.TrimSpace(creator)
				if who == "" {
					who = e.cfg.Identity.Creator
				}
				records, err := e.session.RecordsByCreator(cmd.Context(), who)
				if err != nil {
					return err
				}
				if kindFilter != "" {
					kind, ok := record.ParseKind(kindFilter)
					if !ok {
						return fmt.Errorf("unknown kind %q", kindFilter)
					}
					records = filterByKind(records, kind)
				}
				if len(records) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No records for %s\n", who)
					return nil
				}

				chains := lineage.Reconstruct(records)
				out := cmd.OutOrStdout()
				headers, rows, aligns := chainRows(chains)
				if shouldColorize(out) {
					fmt.Fprintln(out, renderTable(headers, rows, aligns))
				} else {
					fmt.Fprintln(out, renderPlainTable(headers, rows))
				}
				fmt.Fprintf(out, "%d records in %d chains\n", len(records), len(chains))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "List records for another creator identity")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "Only list records of this kind (object or chamber)")
	return cmd
}

func filterByKind(records []record.Record, kind record.Kind) []record.Record {
	filtered := records[:0:0]
	for _, rec := range records {
		if rec.Kind == kind {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func chainRows(chains []lineage.Chain) ([]string, [][]string, []columnAlignment) {
	headers := []string{"Name", "Kind", "Versions", "Latest", "Holder", "Grouping"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(chains))
	for _, chain := range chains {
		latest := chain.Latest()
		rows = append(rows, []string{
			chain.Root.DisplayLabel(),
			chain.Root.Kind.Label(),
			fmt.Sprintf("%d", chain.Len()),
			fmt.Sprintf("#%d v%d", latest.ID, latest.Version),
			latest.CurrentHolder,
			string(chain.Resolution),
		})
	}
	return headers, rows, aligns
}
