package web

import (
	"encoding/json"
	"time"

	"github.com/12dit152/solarsim/core/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SnapshotPayload is broadcast once per tick.
type SnapshotPayload struct {
	SessionID string         `json:"session_id"`
	Time      time.Time      `json:"time"`
	Snapshot  model.Snapshot `json:"snapshot"`
}

// EncodeSnapshot builds the wire form of a snapshot broadcast.
func EncodeSnapshot(p SnapshotPayload) ([]byte, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: "snapshot", Payload: payload})
}

// controlsRequest is a partial update of the simulation controls. A slider
// angle, when present, overrides intensity and time of day through the sun
// mapping.
type controlsRequest struct {
	Angle        *float64 `json:"angle"`
	SunIntensity *float64 `json:"sun_intensity"`
	TimeOfDay    *float64 `json:"time_of_day"`
	ACLoadW      *float64 `json:"ac_load_w"`
	Mode         *string  `json:"mode"`
}

// sizingRequest is the body of POST /api/v1/sizing.
type sizingRequest struct {
	Appliances []applianceBody `json:"appliances" binding:"required"`
	Options    *optionsBody    `json:"options"`
}

type applianceBody struct {
	Name        string  `json:"name"`
	Watts       float64 `json:"watts"`
	Quantity    int     `json:"quantity"`
	HoursPerDay float64 `json:"hours_per_day"`
}

type optionsBody struct {
	SystemVoltage    *float64 `json:"system_voltage"`
	DepthOfDischarge *float64 `json:"depth_of_discharge"`
	AutonomyDays     *float64 `json:"autonomy_days"`
	PeakSunHours     *float64 `json:"peak_sun_hours"`
	PanelWattage     *float64 `json:"panel_wattage"`
	SystemDerate     *float64 `json:"system_derate"`
	InverterMargin   *float64 `json:"inverter_margin"`
}

type errorResponse struct {
	Error string `json:"error"`
}
