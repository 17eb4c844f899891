/*
Package game contains the core logic for the multiplayer session server.

This file defines the Registry, the sole owner of all active rooms. Every
membership mutation goes through the Registry, which serializes access with a
single mutex; callers never touch a room's player collection directly.
*/
package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"arena/internal/app/player"
	"arena/internal/pkg/errs"
	"arena/internal/pkg/logx"
)

// Registry owns the set of all active rooms and enforces name uniqueness and
// membership consistency: at any instant a connection id appears in at most one
// room's player collection.
type Registry struct {
	// mu serializes all reads and writes of the room set and of every room's
	// player collection. A single exclusive section is enough at the expected
	// scale; per-room locking is an optimization, not part of the contract.
	mu sync.Mutex

	// rooms preserves creation order, which drives camp alternation at game start.
	rooms []*Room

	// byName indexes rooms for name lookup.
	byName map[string]*Room

	logger zerolog.Logger
}

// RoomInfo is a read-only snapshot of one room, used by the listing endpoint.
type RoomInfo struct {
	Name    string `json:"name"`
	Players int    `json:"players"`
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Room),
		logger: logx.Logger().With().Str("component", "Registry").Logger(),
	}
}

// CreateRoom allocates a new empty room with the given name and inserts it.
// The generated naming scheme makes collisions practically unreachable, but the
// uniqueness check is still required.
func (g *Registry) CreateRoom(name string) (*Room, *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byName[name]; ok {
		g.logger.Warn().Str("room", name).Msg("Attempted to create existing room.")
		return nil, errs.NewError(errs.ErrDuplicateRoom)
	}

	room := newRoom(name)
	g.rooms = append(g.rooms, room)
	g.byName[name] = room

	g.logger.Info().Str("room", name).Msg("New room created.")
	return room, nil
}

// FindRoom reports whether a room with the given name exists and, if so, its
// current player count.
func (g *Registry) FindRoom(name string) (players int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[name]
	if !ok {
		return 0, false
	}
	return room.size(), true
}

// AddPlayer constructs a player bound to the given room and appends it to the
// room's collection, returning the room's new player count. If the connection
// already occupies a room it is removed from there first, so the membership
// uniqueness invariant holds even across repeated joins.
func (g *Registry) AddPlayer(connID, roomName string) (players int, cerr *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[roomName]
	if !ok {
		return 0, errs.NewError(errs.ErrRoomNotFound)
	}

	for _, r := range g.rooms {
		if r.removePlayer(connID) {
			g.logger.Info().
				Str("conn_id", connID).
				Str("previous_room", r.name).
				Msg("Connection re-joined; removed from previous room.")
			break
		}
	}

	room.addPlayer(player.New(connID, roomName))

	g.logger.Info().
		Str("conn_id", connID).
		Str("room", roomName).
		Int("players", room.size()).
		Msg("Player joined room.")

	return room.size(), nil
}

// RemovePlayer scans all rooms for the one holding the given connection,
// removes the player from its collection, and returns the room's name and new
// player count. ok is false if no room currently holds this connection; calling
// RemovePlayer again for the same id is a safe no-op.
func (g *Registry) RemovePlayer(connID string) (roomName string, players int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, room := range g.rooms {
		if room.removePlayer(connID) {
			g.logger.Info().
				Str("conn_id", connID).
				Str("room", room.name).
				Int("players", room.size()).
				Msg("Player left room.")
			return room.name, room.size(), true
		}
	}

	return "", 0, false
}

// MovePlayer updates the position of the given connection's player inside the
// identified room. Returns false if the connection is not a current member of
// that room, in which case nothing is written.
func (g *Registry) MovePlayer(roomName, connID string, x, y, z float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[roomName]
	if !ok {
		return false
	}

	p := room.findPlayer(connID)
	if p == nil {
		return false
	}

	p.UpdatePosition(x, y, z)
	return true
}

// RoomPlayers returns value copies of the players currently in the named room,
// or ok=false if the room does not exist.
func (g *Registry) RoomPlayers(roomName string) (players []player.Player, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[roomName]
	if !ok {
		return nil, false
	}
	return room.snapshotPlayers(), true
}

// RoomMemberIDs returns the connection ids of the named room's players in
// membership order.
func (g *Registry) RoomMemberIDs(roomName string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[roomName]
	if !ok {
		return nil
	}

	ids := make([]string, 0, room.size())
	for _, p := range room.players {
		ids = append(ids, p.ID)
	}
	return ids
}

// StartGame validates the named room for a game start and, on success, resets
// positions and assigns camps across the entire registry. The registry-wide
// reset mirrors the behavior clients already depend on: every room's players
// are re-initialized, not only the named room's. Validation and reset happen
// under one lock acquisition, so a concurrent leave cannot slip between the
// player-count check and the reset.
func (g *Registry) StartGame(roomName string) *errs.CustomError {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[roomName]
	if !ok {
		return errs.NewError(errs.ErrRoomNotFound)
	}

	if room.size() < 2 {
		return errs.NewError(errs.ErrNotEnoughPlayers)
	}

	g.resetAllLocked()

	g.logger.Info().Str("room", roomName).Msg("Game started; registry reset.")
	return nil
}

// ResetAllForGameStart resets every player's position to the origin and assigns
// camps by alternating RED/BLUE in a single pass over all rooms in creation
// order and all players in membership order. The alternation counter is global
// across the whole registry: the n-th player visited overall gets RED when n
// is even, BLUE when odd.
func (g *Registry) ResetAllForGameStart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.resetAllLocked()
}

func (g *Registry) resetAllLocked() {
	red := true
	for _, room := range g.rooms {
		for _, p := range room.players {
			p.UpdatePosition(0, 0, 0)
			if red {
				p.Camp = player.CampRed
			} else {
				p.Camp = player.CampBlue
			}
			red = !red
		}
	}
}

// Rooms returns a snapshot of all rooms with their player counts, in creation order.
func (g *Registry) Rooms() []RoomInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	infos := make([]RoomInfo, 0, len(g.rooms))
	for _, room := range g.rooms {
		infos = append(infos, RoomInfo{Name: room.name, Players: room.size()})
	}
	return infos
}

// RemoveRoom deletes the named room from the registry. Returns true if the room existed.
func (g *Registry) RemoveRoom(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.byName[name]
	if !ok {
		return false
	}

	delete(g.byName, name)
	for i, r := range g.rooms {
		if r == room {
			g.rooms = append(g.rooms[:i], g.rooms[i+1:]...)
			break
		}
	}

	g.logger.Info().Str("room", name).Msg("Room removed.")
	return true
}

// ReapEmpty removes every room with no players and returns how many were removed.
func (g *Registry) ReapEmpty() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.rooms[:0]
	count := 0
	for _, room := range g.rooms {
		if room.size() == 0 {
			delete(g.byName, room.name)
			count++
			continue
		}
		kept = append(kept, room)
	}
	g.rooms = kept

	if count > 0 {
		g.logger.Info().Int("removed", count).Msg("Reaped empty rooms.")
	}
	return count
}

// RunReaper periodically removes empty rooms until the context is canceled.
// Deployments that want the literal accumulate-forever behavior simply never
// start it.
func (g *Registry) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	g.logger.Info().Dur("interval", interval).Msg("Room reaper started.")

	for {
		select {
		case <-ticker.C:
			g.ReapEmpty()
		case <-ctx.Done():
			g.logger.Info().Msg("Room reaper stopped.")
			return
		}
	}
}
