/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and WebSocket error events.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room and Session Business Logic Errors
	ErrDuplicateRoom:    {Code: ErrDuplicateRoom, Message: "Room already exists"},
	ErrRoomNotFound:     {Code: ErrRoomNotFound, Message: "Room not found"},
	ErrMissingRoomName:  {Code: ErrMissingRoomName, Message: "Room name is required."},
	ErrNotEnoughPlayers: {Code: ErrNotEnoughPlayers, Message: "Not enough players"},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
