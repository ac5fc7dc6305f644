package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vitrine/internal/ledger"
	"vitrine/internal/publish"
	"vitrine/internal/record"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish an object or chamber as a new lineage",
	}

	publishCmd.AddCommand(newPublishObjectCommand(ctx))
	publishCmd.AddCommand(newPublishChamberCommand(ctx))

	return publishCmd
}

func newPublishObjectCommand(ctx *commandContext) *cobra.Command {
	var name string
	var objectType string
	var category string

	cmd := &cobra.Command{
		Use:   "object <payload-file>",
		Short: "Publish a single object as a new record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadFile(args[0])
			if err != nil {
				return err
			}
			return ctx.withEnv(func(e *env) error {
				result, err := e.pipeline.Publish(cmd.Context(), publish.Request{
					Kind:       publish.KindObject,
					ObjectData: data,
					ObjectName: name,
					ObjectType: objectType,
					Category:   category,
					OnProgress: progressPrinter(cmd.OutOrStdout()),
				})
				if err != nil {
					return err
				}
				printPublishResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the object")
	cmd.Flags().StringVar(&objectType, "type", "model", "Object type")
	cmd.Flags().StringVar(&category, "category", "", "Optional category")
	return cmd
}

func newPublishChamberCommand(ctx *commandContext) *cobra.Command {
	var name string
	var thumbnailPath string
	var remixable bool
	var objectRefs []int64

	cmd := &cobra.Command{
		Use:   "chamber <scene-file>",
		Short: "Publish the scene as a new chamber lineage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadScene(args[0])
			if err != nil {
				return err
			}
			thumbnail, err := loadFile(thumbnailPath)
			if err != nil {
				return err
			}
			request := publish.Request{
				Kind:       publish.KindChamber,
				Name:       name,
				Objects:    payload.Objects,
				RoomConfig: payload.RoomConfig,
				ObjectRefs: objectRefs,
				Thumbnail:  thumbnail,
				OnProgress: progressPrinter(cmd.OutOrStdout()),
			}
			if cmd.Flags().Changed("remixable") {
				request.Remixable = &remixable
			}
			return ctx.withEnv(func(e *env) error {
				result, err := e.pipeline.Publish(cmd.Context(), request)
				if err != nil {
					return err
				}
				printPublishResult(cmd.OutOrStdout(), result)
				return trackOpened(cmd, e, result.RecordID)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Chamber display name (required)")
	cmd.Flags().StringVar(&thumbnailPath, "thumbnail", "", "Path to a rendered snapshot of the scene")
	cmd.Flags().BoolVar(&remixable, "remixable", false, "Allow other creators to remix this chamber")
	cmd.Flags().Int64SliceVar(&objectRefs, "object-ref", nil, "Record IDs of objects placed in the scene")
	return cmd
}

func newSaveCommand(ctx *commandContext) *cobra.Command {
	var thumbnailPath string
	var objectRefs []int64

	cmd := &cobra.Command{
		Use:   "save <scene-file>",
		Short: "Save the scene as a new version of the open chamber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadScene(args[0])
			if err != nil {
				return err
			}
			thumbnail, err := loadFile(thumbnailPath)
			if err != nil {
				return err
			}
			return ctx.withEnv(func(e *env) error {
				parent, err := openChamber(cmd, e)
				if err != nil {
					return err
				}
				result, err := e.pipeline.Publish(cmd.Context(), publish.Request{
					Kind:       publish.KindVersion,
					Objects:    payload.Objects,
					RoomConfig: payload.RoomConfig,
					ObjectRefs: objectRefs,
					Thumbnail:  thumbnail,
					Parent:     parent,
					OnProgress: progressPrinter(cmd.OutOrStdout()),
				})
				if err != nil {
					return err
				}
				printPublishResult(cmd.OutOrStdout(), result)
				return trackOpened(cmd, e, result.RecordID)
			})
		},
	}

	cmd.Flags().StringVar(&thumbnailPath, "thumbnail", "", "Path to a rendered snapshot of the scene")
	cmd.Flags().Int64SliceVar(&objectRefs, "object-ref", nil, "Record IDs of objects placed in the scene")
	return cmd
}

func newRemixCommand(ctx *commandContext) *cobra.Command {
	var name string
	var thumbnailPath string
	var remixable bool
	var objectRefs []int64

	cmd := &cobra.Command{
		Use:   "remix <source-id> <scene-file>",
		Short: "Publish the scene as a remix of another creator's chamber",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			payload, err := loadScene(args[1])
			if err != nil {
				return err
			}
			thumbnail, err := loadFile(thumbnailPath)
			if err != nil {
				return err
			}
			return ctx.withEnv(func(e *env) error {
				source, err := e.session.Record(cmd.Context(), sourceID)
				if err != nil {
					return describeLookupError(err, sourceID)
				}
				request := publish.Request{
					Kind:       publish.KindRemix,
					Name:       name,
					Objects:    payload.Objects,
					RoomConfig: payload.RoomConfig,
					ObjectRefs: objectRefs,
					Thumbnail:  thumbnail,
					Source:     &source,
					OnProgress: progressPrinter(cmd.OutOrStdout()),
				}
				if cmd.Flags().Changed("remixable") {
					request.Remixable = &remixable
				}
				result, err := e.pipeline.Publish(cmd.Context(), request)
				if err != nil {
					return err
				}
				printPublishResult(cmd.OutOrStdout(), result)
				return trackOpened(cmd, e, result.RecordID)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the remix")
	cmd.Flags().StringVar(&thumbnailPath, "thumbnail", "", "Path to a rendered snapshot of the scene")
	cmd.Flags().BoolVar(&remixable, "remixable", false, "Allow further remixes of the new chamber")
	cmd.Flags().Int64SliceVar(&objectRefs, "object-ref", nil, "Record IDs of objects placed in the scene")
	return cmd
}

// openChamber resolves the tracked open chamber to its current record. A
// missing tracker entry surfaces as a normal error; the pipeline reports the
// equivalent precondition when handed a nil parent, but resolving here lets
// the message name the fix.
func openChamber(cmd *cobra.Command, e *env) (*record.Record, error) {
	id, ok, err := e.tracker.Current()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no chamber loaded; publish one or run `vitrine open <id>` first")
	}
	rec, err := e.session.Record(cmd.Context(), id)
	if err != nil {
		return nil, describeLookupError(err, id)
	}
	return &rec, nil
}

// trackOpened moves the open-chamber pointer to the freshly committed record
// so the next save creates a further child rather than a duplicate root.
func trackOpened(cmd *cobra.Command, e *env, recordID int64) error {
	if err := e.tracker.Open(recordID); err != nil {
		return fmt.Errorf("record #%d published but open-chamber tracking failed: %w", recordID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Chamber #%d is now open\n", recordID)
	return nil
}

func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func describeLookupError(err error, id int64) error {
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Errorf("record #%d not found", id)
	}
	return err
}
