package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/champion"
	"github.com/lol-team-randomizer/backend/internal/engine"
	"github.com/lol-team-randomizer/backend/internal/history"
	"github.com/lol-team-randomizer/backend/internal/prefs"
	"github.com/lol-team-randomizer/backend/internal/room"
)

const msgBackendError = "Une erreur est survenue. Veuillez réessayer."
const msgRoomNotFound = "Room introuvable"
const msgRoomFull = "La room est complète"

type createRoomRequest struct {
	OwnerName  string `json:"owner_name"`
	MaxPlayers int    `json:"max_players"`
}

type createRoomResponse struct {
	Code string `json:"code"`
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type rosterRequest struct {
	Players []engine.Player `json:"players"`
}

type optionsRequest struct {
	IncludeChampions bool `json:"include_champions"`
}

type generateRequest struct {
	Players          []engine.Player `json:"players"`
	IncludeChampions bool            `json:"include_champions"`
}

type teamResponse struct {
	Team []engine.Player `json:"team"`
}

func CreateRoom(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.MaxPlayers == 0 {
			req.MaxPlayers = len(engine.RoleOrder)
		}

		code, err := svc.Create(r.Context(), req.OwnerName, req.MaxPlayers)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, createRoomResponse{Code: code})
	}
}

func GetRoom(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, err := svc.Join(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rm)
	}
}

func AddPlayer(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		err := svc.AddPlayer(r.Context(), chi.URLParam(r, "code"), req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReplaceRoster(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rosterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		err := svc.ReplaceRoster(r.Context(), chi.URLParam(r, "code"), req.Players)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GenerateRoomTeam runs a generation pass over the room's current
// roster and publishes the result so every subscriber sees it.
func GenerateRoomTeam(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		rm, err := svc.Join(r.Context(), code)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		team, err := generateTeam(rm.Players, rm.IncludeChampions)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if err := svc.PublishTeam(r.Context(), code, team); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teamResponse{Team: team})
	}
}

func SetOptions(svc *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req optionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		err := svc.SetIncludeChampions(r.Context(), chi.URLParam(r, "code"), req.IncludeChampions)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GenerateTeam is solo mode: validate, assign, record in history.
func GenerateTeam(hist *history.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}

		team, err := generateTeam(req.Players, req.IncludeChampions)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		// History is a cache; losing one entry is not worth failing
		// a successful generation.
		if _, err := hist.Add(r.Context(), team, req.IncludeChampions); err != nil {
			log.Warn("history write failed", zap.Error(err))
		}
		writeJSON(w, http.StatusOK, teamResponse{Team: team})
	}
}

func ListHistory(hist *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := hist.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func ClearHistory(hist *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := hist.Clear(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteHistoryEntry(hist *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := hist.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetPreferences(p *prefs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded, err := p.Load(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loaded)
	}
}

func SavePreferences(p *prefs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prefs.Preferences
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := p.Save(r.Context(), req); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func generateTeam(players []engine.Player, includeChampions bool) ([]engine.Player, error) {
	if err := engine.ValidateRoster(players); err != nil {
		return nil, err
	}
	team, err := engine.AssignRoles(players)
	if err != nil {
		return nil, err
	}
	if includeChampions {
		team = champion.AssignAll(team)
	}
	return team, nil
}

// writeServiceError maps every error a façade call can surface onto a
// status and a user-facing message; nothing propagates uncaught.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.Is(err, engine.ErrInvalidRosterSize):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, room.ErrNotFound):
		writeError(w, http.StatusNotFound, msgRoomNotFound)
	case errors.Is(err, room.ErrRoomFull):
		writeError(w, http.StatusConflict, msgRoomFull)
	case errors.Is(err, room.ErrCodeSpaceBusy):
		writeError(w, http.StatusServiceUnavailable, msgBackendError)
	default:
		writeError(w, http.StatusInternalServerError, msgBackendError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
