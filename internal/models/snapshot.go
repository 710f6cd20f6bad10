package models

import (
	"encoding/json"
	"time"
)

// Keys stamped by the server on every snapshot read. The gateway cannot set
// them; they are stripped from pushed payloads.
const (
	SnapshotKeyTimestamp = "timestamp"
	SnapshotKeyConnected = "gatewayConnected"
)

// SnapshotFields is the schema-agnostic machine-state mapping pushed by the
// gateway (e.g. forward, reverse, jam, LOWLEVEL, autoMode, manualMode). The
// cache stores whatever the gateway last sent, so new gateway firmware can add
// fields without a server change.
type SnapshotFields map[string]any

// Sanitized returns a copy of the fields with server-reserved keys removed.
func (f SnapshotFields) Sanitized() SnapshotFields {
	out := make(SnapshotFields, len(f))
	for k, v := range f {
		if k == SnapshotKeyTimestamp || k == SnapshotKeyConnected {
			continue
		}
		out[k] = v
	}
	return out
}

// DeviceSnapshot is the latest known machine state plus the server receipt
// time and the liveness flag derived at read time.
type DeviceSnapshot struct {
	Fields     SnapshotFields
	ReceivedAt *time.Time
	Connected  bool
}

// MarshalJSON flattens the field map and overlays the server-stamped keys,
// matching the dashboard's expected wire shape.
func (s DeviceSnapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Fields)+2)
	for k, v := range s.Fields {
		out[k] = v
	}
	if s.ReceivedAt != nil {
		out[SnapshotKeyTimestamp] = s.ReceivedAt.UTC().Format(time.RFC3339)
	} else {
		out[SnapshotKeyTimestamp] = nil
	}
	out[SnapshotKeyConnected] = s.Connected
	return json.Marshal(out)
}
