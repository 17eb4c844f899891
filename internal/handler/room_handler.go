/*
Package handler provides HTTP handler functions for room status checks.
*/
package handler

import (
	"net/http"

	"arena/internal/pkg/resp"
)

// HandleListRooms returns the active rooms and their player counts, in creation
// order. Read-only; intended for dashboards and manual room sharing.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"rooms":       deps.Registry.Rooms(),
			"connections": deps.Hub.Len(),
		}
		resp.RespondSuccess(w, r, data)
	}
}
