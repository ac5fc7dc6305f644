package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"vitrine/internal/publish"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var stageLabels = map[publish.Stage]string{
	publish.StagePreparing:          "Preparing",
	publish.StageUploadingPayload:   "Uploading payload",
	publish.StageUploadingThumbnail: "Uploading thumbnail",
	publish.StageUploadingMetadata:  "Uploading metadata",
	publish.StageCommitting:         "Committing",
	publish.StageSucceeded:          "Done",
	publish.StageFailed:             "Failed",
}

// progressPrinter renders stage transitions as they happen. Intermediate
// upload percentages are shown only at completion to keep output line-based.
func progressPrinter(out io.Writer) publish.ProgressFunc {
	var lastStage publish.Stage
	colorize := shouldColorize(out)
	return func(p publish.Progress) {
		if p.Stage == lastStage {
			return
		}
		lastStage = p.Stage
		label, ok := stageLabels[p.Stage]
		if !ok {
			label = string(p.Stage)
		}
		kind := statusInfo
		switch p.Stage {
		case publish.StageSucceeded:
			kind = statusOK
		case publish.StageFailed:
			kind = statusError
		}
		fmt.Fprintln(out, renderStatusLine(label, kind, p.Message, colorize))
	}
}

func printPublishResult(out io.Writer, result *publish.Result) {
	fmt.Fprintf(out, "Published %s record #%d\n", result.Kind, result.RecordID)
	fmt.Fprintf(out, "  payload:  %s\n", result.PayloadRef)
	if result.ThumbnailRef != "" {
		fmt.Fprintf(out, "  thumbnail: %s\n", result.ThumbnailRef)
	}
	fmt.Fprintf(out, "  metadata: %s\n", result.MetadataRef)
	fmt.Fprintf(out, "  receipt:  %s\n", result.Receipt)
	if result.Fee != nil {
		printFeeOutcome(out, result.Fee)
	}
}

func printFeeOutcome(out io.Writer, fee *publish.FeeOutcome) {
	switch fee.Status {
	case publish.FeePaid:
		fmt.Fprintf(out, "  fee:      paid %d to %s\n", fee.Amount, fee.Recipient)
	default:
		reason := strings.TrimSpace(fee.Reason)
		if reason == "" {
			reason = "skipped"
		}
		fmt.Fprintf(out, "  fee:      skipped (%s)\n", reason)
	}
}
