package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vitrine/internal/record"
	"vitrine/internal/workspace"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <record-id>",
		Short: "Open an existing chamber so saves create new versions of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			return ctx.withEnv(func(e *env) error {
				rec, err := e.session.Record(cmd.Context(), id)
				if err != nil {
					return describeLookupError(err, id)
				}
				if rec.Kind != record.KindChamber {
					return fmt.Errorf("record #%d is not a chamber (kind %s)", id, rec.Kind)
				}
				if err := e.tracker.Open(rec.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s (#%d, version %d)\n", rec.DisplayLabel(), rec.ID, rec.Version)
				return nil
			})
		},
	}
}

func newNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh scene, clearing the open chamber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tracker := workspace.NewTracker(cfg.Paths.DataDir)
			if err := tracker.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workspace cleared; the next chamber publish starts a new lineage")
			return nil
		},
	}
}
