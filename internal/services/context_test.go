package services_test

import (
	"context"
	"testing"

	"vitrine/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-42")
	ctx = services.WithStage(ctx, "committing")
	ctx = services.WithKind(ctx, "remix")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-42" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "committing" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if kind, ok := services.KindFromContext(ctx); !ok || kind != "remix" {
		t.Fatalf("unexpected kind: %v %v", kind, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithKind(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.KindFromContext(ctx); ok {
		t.Fatal("expected no kind value")
	}
}
