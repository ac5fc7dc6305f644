package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrecondition marks failures detected before any network call is made:
	// nothing selected to publish, missing name, no tracked parent chamber.
	ErrPrecondition = errors.New("precondition error")
	// ErrPermission marks failures where the acting identity is not entitled
	// to the operation: not the current holder, or remix disallowed.
	ErrPermission = errors.New("permission error")
	// ErrUpload marks content store failures at any upload stage.
	ErrUpload = errors.New("upload error")
	// ErrCommit marks ledger commit failures, including NotOwner and
	// NotRemixable surfaced by the ledger.
	ErrCommit = errors.New("commit error")
	// ErrNotFound marks lookups of records that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks failures with no more specific classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Category names the taxonomy bucket for a pipeline error. It is used for
// terminal session reporting and log fields.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrUpload):
		return "upload"
	case errors.Is(err, ErrCommit):
		return "commit"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "transient"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
