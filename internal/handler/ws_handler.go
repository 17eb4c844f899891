/*
Package handler provides the HTTP handler function for WebSocket connection upgrading
and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
upgrading the HTTP connection to WebSocket, and starting the client's pumps. A fresh
connection belongs to no room; rooms are created and joined through events on the
established connection.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"arena/internal/app/game"
	"arena/internal/pkg/errs"
	"arena/internal/pkg/limiter"
	"arena/internal/pkg/logx"
	"arena/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := game.NewClient(conn, deps.Controller, deps.Hub)
		deps.Hub.Register(client)

		logx.Info("WebSocket connection established", "conn_id", client.ID())

		go client.WritePump()

		client.ReadPump()
	}
}
