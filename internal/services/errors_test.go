package services_test

import (
	"errors"
	"strings"
	"testing"

	"vitrine/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("gateway returned 502")
	err := services.Wrap(services.ErrUpload, "uploading_payload", "upload scene", "gateway rejected payload", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"uploading_payload", "upload scene", "gateway rejected payload", "502"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "committing", "create record", "", errors.New("timeout"))
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestCategory(t *testing.T) {
	cases := []struct {
		marker error
		want   string
	}{
		{services.ErrPrecondition, "precondition"},
		{services.ErrPermission, "permission"},
		{services.ErrUpload, "upload"},
		{services.ErrCommit, "commit"},
		{services.ErrNotFound, "not_found"},
		{errors.New("anything else"), "transient"},
	}
	for _, tc := range cases {
		err := services.Wrap(tc.marker, "stage", "op", "msg", nil)
		if got := services.Category(err); got != tc.want {
			t.Fatalf("Category(%v) = %q, want %q", tc.marker, got, tc.want)
		}
	}
	if got := services.Category(nil); got != "" {
		t.Fatalf("Category(nil) = %q, want empty", got)
	}
}
