package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vitrine/internal/record"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one record's details",
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
				printRecord(cmd, rec)
				return nil
			})
		},
	}
}

func printRecord(cmd *cobra.Command, rec record.Record) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s #%d\n", rec.Kind.Label(), rec.ID)

	lines := []struct {
		label string
		value string
	}{
		{"Name", rec.DisplayLabel()},
		{"Version", fmt.Sprintf("%d", rec.Version)},
		{"Parent", parentLabel(rec)},
		{"Creator", rec.OriginalCreator},
		{"Holder", rec.CurrentHolder},
		{"Created", rec.CreatedAt.UTC().Format(time.RFC3339)},
		{"Payload", rec.PayloadRef},
		{"Metadata", rec.MetadataRef},
	}
	if rec.ThumbnailRef != "" {
		lines = append(lines, struct{ label, value string }{"Thumbnail", rec.ThumbnailRef})
	}
	switch rec.Kind {
	case record.KindChamber:
		lines = append(lines,
			struct{ label, value string }{"Remixable", yesNo(rec.Remixable)},
			struct{ label, value string }{"Objects", objectRefsLabel(rec.ObjectRefs)},
		)
	case record.KindObject:
		lines = append(lines, struct{ label, value string }{"Type", rec.ObjectType})
		if rec.Category != "" {
			lines = append(lines, struct{ label, value string }{"Category", rec.Category})
		}
	}

	for _, line := range lines {
		fmt.Fprintf(out, "  %-10s %s\n", line.label+":", line.value)
	}
}

func parentLabel(rec record.Record) string {
	if rec.IsRoot() {
		return "none (root)"
	}
	return fmt.Sprintf("#%d", rec.ParentID)
}

func objectRefsLabel(refs []int64) string {
	if len(refs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, fmt.Sprintf("#%d", ref))
	}
	return strings.Join(parts, ", ")
}
