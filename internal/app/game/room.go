/*
Package game contains the core logic for the multiplayer session server: room and
player lifecycle, the inbound event state machine, and the broadcast fan-out contract.

This file defines the Room entity, a named, ordered collection of players. Rooms carry
no synchronization of their own: every method below is called with the owning
registry's lock held.
*/
package game

import "arena/internal/app/player"

// Room groups the players sharing a session. The name is immutable after creation;
// the player slice preserves insertion order, which drives camp alternation at
// game start.
type Room struct {
	name    string
	players []*player.Player
}

func newRoom(name string) *Room {
	return &Room{
		name:    name,
		players: make([]*player.Player, 0, 4),
	}
}

// Name returns the room's immutable identifier.
func (r *Room) Name() string {
	return r.name
}

func (r *Room) size() int {
	return len(r.players)
}

func (r *Room) addPlayer(p *player.Player) {
	r.players = append(r.players, p)
}

// removePlayer deletes the player with the given id while preserving the order of
// the remaining players. Returns true if a player was removed.
func (r *Room) removePlayer(id string) bool {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) findPlayer(id string) *player.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// snapshotPlayers returns value copies of the room's players, safe to hand to
// the emission layer after the lock is released.
func (r *Room) snapshotPlayers() []player.Player {
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}
