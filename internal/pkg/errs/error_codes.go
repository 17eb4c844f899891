/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request or event parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1002
)

// 2xxx: Room and Session Business Logic Errors
const (
	// ErrDuplicateRoom indicates that a room with the requested name already exists.
	ErrDuplicateRoom = 2101

	// ErrRoomNotFound indicates that the named room does not exist in the registry.
	ErrRoomNotFound = 2102

	// ErrMissingRoomName indicates that a join request carried no room name.
	ErrMissingRoomName = 2103

	// ErrNotEnoughPlayers indicates a game-start request on a room with fewer than two players.
	ErrNotEnoughPlayers = 2104
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
