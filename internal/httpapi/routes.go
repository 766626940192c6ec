package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/history"
	"github.com/lol-team-randomizer/backend/internal/prefs"
	"github.com/lol-team-randomizer/backend/internal/room"
	"github.com/lol-team-randomizer/backend/internal/ws"
)

func SetupRoutes(rooms *room.Service, hist *history.Service, p *prefs.Service, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(rooms, log))

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", CreateRoom(rooms))
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", GetRoom(rooms))
			r.Post("/players", AddPlayer(rooms))
			r.Put("/roster", ReplaceRoster(rooms))
			r.Post("/team", GenerateRoomTeam(rooms))
			r.Put("/options", SetOptions(rooms))
		})
	})

	r.Post("/teams/generate", GenerateTeam(hist, log))

	r.Get("/history", ListHistory(hist))
	r.Delete("/history", ClearHistory(hist))
	r.Delete("/history/{id}", DeleteHistoryEntry(hist))

	r.Get("/preferences", GetPreferences(p))
	r.Put("/preferences", SavePreferences(p))

	return r
}
