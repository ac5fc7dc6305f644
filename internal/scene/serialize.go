package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Serialize produces the canonical JSON payload for a set of placed objects
// and an optional room configuration. The timestamp records when the snapshot
// was taken; callers pass time.Now() outside of tests.
func Serialize(objects []Object, roomConfig json.RawMessage, timestamp time.Time) ([]byte, error) {
	payload := Payload{
		Version:    PayloadVersion,
		Timestamp:  timestamp.UTC(),
		Objects:    objects,
		RoomConfig: normalizeRoomConfig(roomConfig),
	}
	if payload.Objects == nil {
		payload.Objects = []Object{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chamber payload: %w", err)
	}
	return data, nil
}

// Deserialize parses a chamber payload document. Missing or malformed
// per-object fields are replaced with defaults instead of failing the whole
// document: a listing or editor must always get something renderable back for
// every entry the payload carries.
func Deserialize(data []byte) (Payload, error) {
	var envelope struct {
		Version    string            `json:"version"`
		Timestamp  time.Time         `json:"timestamp"`
		Objects    []json.RawMessage `json:"objects"`
		RoomConfig json.RawMessage   `json:"roomConfig"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Payload{}, fmt.Errorf("parse chamber payload: %w", err)
	}

	payload := Payload{
		Version:    envelope.Version,
		Timestamp:  envelope.Timestamp,
		Objects:    make([]Object, 0, len(envelope.Objects)),
		RoomConfig: normalizeRoomConfig(envelope.RoomConfig),
	}
	if payload.Version == "" {
		payload.Version = PayloadVersion
	}
	for _, raw := range envelope.Objects {
		payload.Objects = append(payload.Objects, decodeObject(raw))
	}
	return payload, nil
}

func decodeObject(raw json.RawMessage) Object {
	obj := Object{
		Position: DefaultPosition,
		Rotation: DefaultRotation,
		Scale:    DefaultScale,
		Color:    DefaultColor,
		Data:     map[string]any{},
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return obj
	}

	decodeString(fields["id"], &obj.ID)
	decodeString(fields["type"], &obj.Type)
	decodeVec3(fields["position"], &obj.Position)
	decodeVec3(fields["rotation"], &obj.Rotation)
	decodeVec3(fields["scale"], &obj.Scale)
	decodeString(fields["color"], &obj.Color)
	if raw, ok := fields["data"]; ok {
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err == nil && data != nil {
			obj.Data = data
		}
	}
	return obj
}

func decodeString(raw json.RawMessage, dst *string) {
	if len(raw) == 0 {
		return
	}
	var value string
	if err := json.Unmarshal(raw, &value); err == nil && value != "" {
		*dst = value
	}
}

func decodeVec3(raw json.RawMessage, dst *Vec3) {
	if len(raw) == 0 {
		return
	}
	var value Vec3
	if err := json.Unmarshal(raw, &value); err == nil {
		*dst = value
	}
}

func normalizeRoomConfig(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}
