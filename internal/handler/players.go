package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stumpsai/stumpsai/internal/cache"
	"github.com/stumpsai/stumpsai/internal/models"
	"github.com/stumpsai/stumpsai/internal/store"
	"github.com/stumpsai/stumpsai/internal/valuation"
)

// PlayerFinder looks up a player profile by approximate name.
type PlayerFinder interface {
	FindPlayer(ctx context.Context, name string) (*store.Player, error)
}

// PopularSource reports the most-searched player names.
type PopularSource interface {
	PopularPlayers(ctx context.Context, limit int) []cache.PopularSearch
}

// PlayersHandler serves the player REST endpoints.
type PlayersHandler struct {
	players PlayerFinder
	model   *valuation.Model
	popular PopularSource
}

func NewPlayersHandler(players PlayerFinder, model *valuation.Model, popular PopularSource) *PlayersHandler {
	return &PlayersHandler{players: players, model: model, popular: popular}
}

// Get handles GET /api/v1/players/{name}
func (h *PlayersHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.find(w, r)
	if !ok {
		return
	}
	models.WriteJSON(w, http.StatusOK, p)
}

// Valuation handles GET /api/v1/players/{name}/valuation
func (h *PlayersHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	p, ok := h.find(w, r)
	if !ok {
		return
	}
	models.WriteJSON(w, http.StatusOK, h.model.Valuate(p))
}

// Popular handles GET /api/v1/players/popular
func (h *PlayersHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			models.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	searches := h.popular.PopularPlayers(r.Context(), limit)
	players := make([]models.PopularPlayer, 0, len(searches))
	for _, s := range searches {
		players = append(players, models.PopularPlayer{Name: s.Name, Searches: s.Count})
	}
	models.WriteJSON(w, http.StatusOK, players)
}

func (h *PlayersHandler) find(w http.ResponseWriter, r *http.Request) (*store.Player, bool) {
	name := chi.URLParam(r, "name")
	if name == "" {
		models.WriteError(w, http.StatusBadRequest, "player name is required")
		return nil, false
	}

	p, err := h.players.FindPlayer(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			models.WriteError(w, http.StatusNotFound, "player not found")
		} else {
			models.WriteError(w, http.StatusInternalServerError, "player lookup failed")
		}
		return nil, false
	}
	return p, true
}
