/*
Package player contains the core data structure for a connected participant's session state.

A Player is created when a connection creates or joins a room and lives until that
connection leaves or disconnects. All mutation happens under the owning registry's lock;
the player itself carries no synchronization.
*/
package player

// Camp is the team label assigned to a player at game start.
type Camp string

const (
	// CampUnassigned is the camp value before any game has started.
	CampUnassigned Camp = ""

	// CampRed is the first camp in the alternating assignment order.
	CampRed Camp = "RED"

	// CampBlue is the second camp in the alternating assignment order.
	CampBlue Camp = "BLUE"
)

// DefaultHealth is the health value every player starts with.
const DefaultHealth = 100

// Player represents one connected participant inside a room.
// Fields use JSON tags for serialization in WebSocket messages.
type Player struct {
	// ID is the unique identifier for the player, equal to the owning connection's id.
	ID string `json:"id"`

	// Room is the name of the room the player joined. Set at creation and never
	// updated afterwards; membership is tracked by the room's collection.
	Room string `json:"room"`

	// X, Y, Z are the player's last reported coordinates.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Camp is the player's team, unassigned until game start.
	Camp Camp `json:"camp,omitempty"`

	// Health is the player's current health.
	Health int `json:"health"`
}

// New constructs a Player bound to the given connection id and room name.
func New(id, room string) *Player {
	return &Player{
		ID:     id,
		Room:   room,
		Health: DefaultHealth,
	}
}

// UpdatePosition records the player's reported coordinates.
func (p *Player) UpdatePosition(x, y, z float64) {
	p.X = x
	p.Y = y
	p.Z = z
}

// SetHealth overwrites the player's health. Not wired to any inbound event;
// exposed for the damage resolution layer that will consume it.
func (p *Player) SetHealth(health int) {
	p.Health = health
}
