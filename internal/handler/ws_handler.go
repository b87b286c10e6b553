/*
Package handler provides the HTTP handlers and routing setup for the Pulse server.

This file upgrades event-stream requests to WebSocket and hands the
connection over to the stream hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/codydotio/pulse/internal/app/stream"
	"github.com/codydotio/pulse/internal/pkg/errs"
	"github.com/codydotio/pulse/internal/pkg/limiter"
	"github.com/codydotio/pulse/internal/pkg/logx"
	"github.com/codydotio/pulse/internal/pkg/resp"
)

// HandleEventStream upgrades the connection and attaches it to the hub as a
// live event-stream consumer.
func HandleEventStream(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("Event stream connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := stream.NewClient(deps.Hub, conn)

		go client.WritePump()

		deps.Hub.Register(client)

		client.ReadPump()
	}
}
