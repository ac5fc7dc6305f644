package scene_test

import (
	"encoding/json"
	"testing"
	"time"

	"vitrine/internal/scene"
)

func TestSerializeProducesCanonicalEnvelope(t *testing.T) {
	objects := []scene.Object{
		{
			ID:       "obj-1",
			Type:     "cube",
			Position: scene.Vec3{1, 2, 3},
			Rotation: scene.Vec3{0, 90, 0},
			Scale:    scene.Vec3{1, 1, 1},
			Color:    "#ff0000",
			Data:     map[string]any{"label": "crate"},
		},
	}
	timestamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	data, err := scene.Serialize(objects, json.RawMessage(`{"floor":"wood"}`), timestamp)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	for _, key := range []string{"version", "timestamp", "objects", "roomConfig"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("payload missing %q field", key)
		}
	}

	payload, err := scene.Deserialize(data)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if payload.Version != scene.PayloadVersion {
		t.Fatalf("unexpected version %q", payload.Version)
	}
	if !payload.Timestamp.Equal(timestamp) {
		t.Fatalf("unexpected timestamp %v", payload.Timestamp)
	}
	if len(payload.Objects) != 1 || payload.Objects[0].Color != "#ff0000" {
		t.Fatalf("unexpected objects: %+v", payload.Objects)
	}
}

func TestSerializeNilObjectsAndRoomConfig(t *testing.T) {
	data, err := scene.Serialize(nil, nil, time.Now())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	payload, err := scene.Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if payload.Objects == nil || len(payload.Objects) != 0 {
		t.Fatalf("expected empty objects slice, got %v", payload.Objects)
	}
	if payload.RoomConfig != nil {
		t.Fatalf("expected nil room config, got %s", payload.RoomConfig)
	}
}

func TestDeserializeDefaultsMissingFields(t *testing.T) {
	doc := `{
		"version": "1.0.0",
		"timestamp": "2026-08-30T12:00:00Z",
		"objects": [
			{"id": "a", "type": "lamp"},
			{"id": "b", "type": "chair", "position": "not-a-vector", "color": 12},
			"completely malformed entry"
		],
		"roomConfig": null
	}`

	payload, err := scene.Deserialize([]byte(doc))
	if err != nil {
		t.Fatalf("deserialize should tolerate malformed entries: %v", err)
	}
	if len(payload.Objects) != 3 {
		t.Fatalf("expected all 3 entries kept, got %d", len(payload.Objects))
	}

	first := payload.Objects[0]
	if first.Position != scene.DefaultPosition {
		t.Fatalf("expected default position, got %v", first.Position)
	}
	if first.Scale != scene.DefaultScale || first.Rotation != scene.DefaultRotation {
		t.Fatalf("expected default transform, got %+v", first)
	}
	if first.Color != scene.DefaultColor {
		t.Fatalf("expected default color, got %q", first.Color)
	}
	if first.Data == nil || len(first.Data) != 0 {
		t.Fatalf("expected empty data map, got %v", first.Data)
	}

	second := payload.Objects[1]
	if second.Position != scene.DefaultPosition || second.Color != scene.DefaultColor {
		t.Fatalf("malformed fields should fall back to defaults: %+v", second)
	}
	if second.Type != "chair" {
		t.Fatalf("well-formed fields should survive: %+v", second)
	}

	third := payload.Objects[2]
	if third.Position != scene.DefaultPosition || third.ID != "" {
		t.Fatalf("fully malformed entry should decode to pure defaults: %+v", third)
	}
}

func TestDeserializeRejectsInvalidDocument(t *testing.T) {
	if _, err := scene.Deserialize([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid document")
	}
}
