package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/champion"
	"github.com/lol-team-randomizer/backend/internal/engine"
	"github.com/lol-team-randomizer/backend/internal/history"
	"github.com/lol-team-randomizer/backend/internal/kv"
	"github.com/lol-team-randomizer/backend/internal/prefs"
	"github.com/lol-team-randomizer/backend/internal/room"
	"github.com/lol-team-randomizer/backend/internal/store"
	"github.com/lol-team-randomizer/backend/internal/watch"
)

type testEnv struct {
	handler http.Handler
	rooms   *room.Service
	history *history.Service
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	values := kv.NewMemory()
	rooms := room.NewService(store.NewMemory(), watch.NewRegistry(ctx, zap.NewNop()))
	hist := history.NewService(values)
	p := prefs.NewService(values)

	return &testEnv{
		handler: SetupRoutes(rooms, hist, p, zap.NewNop()),
		rooms:   rooms,
		history: hist,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func roster(names ...string) []engine.Player {
	players := make([]engine.Player, len(names))
	for i, name := range names {
		players[i] = engine.Player{ID: name, Name: name}
	}
	return players
}

func TestGenerateTeam_EndToEndWithChampions(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/teams/generate", generateRequest{
		Players:          roster("Justin", "Cass", "Lolo"),
		IncludeChampions: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp teamResponse
	decodeInto(t, rec, &resp)
	require.Len(t, resp.Team, 3)

	seenRoles := make(map[engine.Role]bool)
	seenChamps := make(map[string]bool)
	for _, p := range resp.Team {
		require.Contains(t, engine.RoleOrder, p.Role)
		require.False(t, seenRoles[p.Role], "role %s repeated", p.Role)
		seenRoles[p.Role] = true

		require.NotEmpty(t, p.Champion, "player %s has no champion", p.Name)
		require.False(t, seenChamps[p.Champion], "champion %s repeated", p.Champion)
		seenChamps[p.Champion] = true
		require.Contains(t, champion.PoolByRole[p.Role], p.Champion)
	}

	// generation lands in history
	entries, err := env.history.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].IncludesChampions)
	require.Equal(t, resp.Team, entries[0].Team)
}

func TestGenerateTeam_RejectsDuplicateNames(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/teams/generate", generateRequest{
		Players: roster("Justin", "Justin", "Lolo"),
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	decodeInto(t, rec, &resp)
	require.Equal(t, "Tous les noms des joueurs doivent être uniques", resp["error"])

	entries, err := env.history.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries, "rejected roster must not reach history")
}

func TestGenerateTeam_RejectsBlankNames(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/teams/generate", generateRequest{
		Players: roster("Justin", "", "Lolo"),
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	decodeInto(t, rec, &resp)
	require.Equal(t, "Veuillez entrer tous les noms des joueurs", resp["error"])
}

func TestGenerateTeam_RejectsOversizedRoster(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/teams/generate", generateRequest{
		Players: roster("a", "b", "c", "d", "e", "f"),
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRooms_CreateGetFlow(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/rooms", createRoomRequest{OwnerName: "Justin", MaxPlayers: 3})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created createRoomResponse
	decodeInto(t, rec, &created)
	require.Len(t, created.Code, 6)

	rec = env.do(t, http.MethodGet, "/rooms/"+created.Code, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rm room.Room
	decodeInto(t, rec, &rm)
	require.Equal(t, "Justin", rm.Owner)
	require.Equal(t, 3, rm.MaxPlayers)
	require.Equal(t, []string{"Justin"}, rm.ConnectedPlayers)
}

func TestRooms_GetMissingReturns404(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/rooms/NOPE00", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	decodeInto(t, rec, &resp)
	require.Equal(t, msgRoomNotFound, resp["error"])
}

func TestRooms_JoinUntilFull(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/rooms", createRoomRequest{OwnerName: "Justin", MaxPlayers: 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createRoomResponse
	decodeInto(t, rec, &created)

	for _, name := range []string{"Cass", "Lolo"} {
		rec = env.do(t, http.MethodPost, "/rooms/"+created.Code+"/players", addPlayerRequest{Name: name})
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/rooms/"+created.Code+"/players", addPlayerRequest{Name: "Max"})
	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	decodeInto(t, rec, &resp)
	require.Equal(t, msgRoomFull, resp["error"])

	// connectedPlayers untouched by the rejected join
	rec = env.do(t, http.MethodGet, "/rooms/"+created.Code, nil)
	var rm room.Room
	decodeInto(t, rec, &rm)
	require.Equal(t, []string{"Justin", "Cass", "Lolo"}, rm.ConnectedPlayers)
}

func TestRooms_TeamGenerationUsesRoomOptions(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/rooms", createRoomRequest{OwnerName: "Justin"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createRoomResponse
	decodeInto(t, rec, &created)

	rec = env.do(t, http.MethodPut, "/rooms/"+created.Code+"/roster", rosterRequest{
		Players: roster("Justin", "Cass", "Lolo"),
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPut, "/rooms/"+created.Code+"/options", optionsRequest{IncludeChampions: true})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/rooms/"+created.Code+"/team", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp teamResponse
	decodeInto(t, rec, &resp)
	require.Len(t, resp.Team, 3)
	for _, p := range resp.Team {
		require.NotEmpty(t, p.Role)
		require.NotEmpty(t, p.Champion)
	}

	// the generated team is persisted on the room
	rec = env.do(t, http.MethodGet, "/rooms/"+created.Code, nil)
	var rm room.Room
	decodeInto(t, rec, &rm)
	require.Equal(t, resp.Team, rm.GeneratedTeam)
	require.True(t, rm.IncludeChampions)
}

func TestRooms_TeamGenerationRejectsInvalidRoster(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/rooms", createRoomRequest{OwnerName: "Justin"})
	var created createRoomResponse
	decodeInto(t, rec, &created)

	rec = env.do(t, http.MethodPut, "/rooms/"+created.Code+"/roster", rosterRequest{
		Players: roster("Justin", "Justin"),
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodPost, "/rooms/"+created.Code+"/team", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHistory_ListDeleteClear(t *testing.T) {
	env := newEnv(t)

	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/teams/generate", generateRequest{
			Players: roster(fmt.Sprintf("solo-%d", i)),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []history.Entry
	decodeInto(t, rec, &entries)
	require.Len(t, entries, 3)
	require.Equal(t, "solo-2", entries[0].Team[0].Name)

	rec = env.do(t, http.MethodDelete, "/history/"+entries[0].ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/history", nil)
	decodeInto(t, rec, &entries)
	require.Len(t, entries, 2)

	rec = env.do(t, http.MethodDelete, "/history", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/history", nil)
	decodeInto(t, rec, &entries)
	require.Empty(t, entries)
}

func TestPreferences_RoundTrip(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded prefs.Preferences
	decodeInto(t, rec, &loaded)
	require.Equal(t, 5, loaded.PlayerCount)

	saved := prefs.Preferences{
		Players:          roster("Justin", "Cass"),
		IncludeChampions: true,
		PlayerCount:      2,
		Username:         "Justin",
	}
	rec = env.do(t, http.MethodPut, "/preferences", saved)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/preferences", nil)
	decodeInto(t, rec, &loaded)
	require.Equal(t, saved, loaded)
}

func TestHealthz(t *testing.T) {
	env := newEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
