package game

// Gateway delivers outbound events to connections. In a multi-process
// deployment the implementation also forwards every emission through the
// pub/sub backend so rooms spanning processes receive consistent broadcasts.
//
// Delivery is fire-and-forget: implementations must never block the caller,
// and a failed delivery never rolls back the state mutation that preceded it.
type Gateway interface {
	// ToConn delivers an event to a single connection.
	ToConn(connID string, ev Event)

	// ToRoom delivers an event to every current member of the named room,
	// including the sender if the sender is a member.
	ToRoom(roomName string, ev Event)

	// BroadcastExcept delivers an event to every connected client except the
	// named sender, regardless of room.
	BroadcastExcept(senderID string, ev Event)
}
