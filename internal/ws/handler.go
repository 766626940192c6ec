package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/room"
	"github.com/lol-team-randomizer/backend/internal/types"
)

// Handler serves the room change stream: an immediate snapshot on
// connect, then one message per remote mutation until the client hangs
// up. It replaces the document store's own push channel.
func Handler(svc *room.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		current, err := svc.Join(r.Context(), code)
		if errors.Is(err, room.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "backend unavailable", http.StatusBadGateway)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out, unsubscribe := svc.Subscribe(code)
		defer unsubscribe()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()

		// Writer goroutine: initial snapshot, then everything the
		// registry fans out until the outbox closes.
		go func() {
			send := func(rm room.Room) bool {
				payload, err := json.Marshal(types.ServerMessage{Type: types.MsgRoomSnapshot, Room: &rm})
				if err != nil {
					log.Warn("snapshot encode failed", zap.String("room", rm.ID), zap.Error(err))
					return false
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				err = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				return err == nil
			}

			if !send(current) {
				return
			}
			for rm := range out {
				if !send(rm) {
					return
				}
			}
		}()

		// Reader loop: clients never send commands over this socket;
		// reads only detect the close handshake.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}
		}
	}
}
