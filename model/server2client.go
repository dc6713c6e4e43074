package model

type EventKind string

const (
	EventStart       EventKind = "START"
	EventMove        EventKind = "MOVE"
	EventPickup      EventKind = "PICKUP"
	EventPortalOpen  EventKind = "PORTAL_OPEN"
	EventPortalUse   EventKind = "PORTAL_USE"
	EventPortalClose EventKind = "PORTAL_CLOSE"
	EventShoot       EventKind = "SHOOT"
	EventStun        EventKind = "STUN"
	EventWarning     EventKind = "WARNING"
	EventWin         EventKind = "WIN"
	EventLose        EventKind = "LOSE"
)

// Event is a discrete notification for audio and UI overlays.
type Event struct {
	Kind  EventKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Cause Cause     `json:"cause,omitempty"`
	Item  Item      `json:"item,omitempty"`
	Enemy int       `json:"enemy,omitempty"`
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Status         Status       `json:"status"`
	Level          int          `json:"level"`
	Unlocked       int          `json:"unlocked"`
	Skin           string       `json:"skin"`
	Grid           Grid         `json:"grid,omitempty"`
	Start          Position     `json:"start"`
	End            Position     `json:"end"`
	Player         Player       `json:"player"`
	Enemies        []Enemy      `json:"enemies"`
	Flowers        []Flower     `json:"flowers"`
	Portal         *Portal      `json:"portal,omitempty"`
	Projectiles    []Projectile `json:"projectiles"`
	StuckWarning   bool         `json:"stuckWarning"`
	StuckRemaining int          `json:"stuckRemaining"`
	Cause          Cause        `json:"cause,omitempty"`
}

const (
	MessageState = "state"
	MessageError = "error"
	MessageSave  = "save"
)

type ServerMessage struct {
	Type   string    `json:"type"`
	State  *Snapshot `json:"state,omitempty"`
	Events []Event   `json:"events,omitempty"`
	Error  string    `json:"error,omitempty"`
	Code   string    `json:"code,omitempty"`
}
