package scene

import (
	"encoding/json"
	"time"
)

// PayloadVersion is the canonical chamber payload format version. Bump when
// the wire shape changes; Deserialize keeps accepting older documents.
const PayloadVersion = "1.0.0"

// Vec3 is an [x, y, z] triple serialized as a JSON array.
type Vec3 [3]float64

// Object is one placed object inside a chamber payload.
type Object struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position Vec3           `json:"position"`
	Rotation Vec3           `json:"rotation"`
	Scale    Vec3           `json:"scale"`
	Color    string         `json:"color"`
	Data     map[string]any `json:"data"`
}

// Payload is the canonical serialized form of a chamber. It is uploaded to
// content storage verbatim and never mutated afterwards; any change yields a
// new content identifier.
type Payload struct {
	Version    string          `json:"version"`
	Timestamp  time.Time       `json:"timestamp"`
	Objects    []Object        `json:"objects"`
	RoomConfig json.RawMessage `json:"roomConfig"`
}

// Defaults applied to missing or malformed per-object fields during
// deserialization. A placed object with no recorded position sits at eye
// height rather than inside the floor.
var (
	DefaultPosition = Vec3{0, 1, 0}
	DefaultRotation = Vec3{0, 0, 0}
	DefaultScale    = Vec3{1, 1, 1}
)

// DefaultColor is the color assigned to objects with no recorded color.
const DefaultColor = "#ffffff"
