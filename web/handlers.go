package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hexapawn/game"
)

type handlers struct {
	svc *Service
}

type createRequest struct {
	HumanSide string `json:"human_side"`
}

type playRequest struct {
	Move string `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	// An empty body means the default side; anything else must decode.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	humanSide := game.White
	switch strings.ToLower(req.HumanSide) {
	case "", "white":
	case "black":
		humanSide = game.Black
	default:
		writeError(w, http.StatusBadRequest, "human_side must be white or black")
		return
	}

	view, err := h.svc.Create(humanSide)
	if err != nil {
		log.Error().Err(err).Msg("failed to create game")
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	mv, err := game.ParseMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.Play(chi.URLParam(r, "id"), mv)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, ErrGameOver):
		writeError(w, http.StatusConflict, "game is already over")
	case errors.Is(err, game.ErrIllegalMove):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		log.Error().Err(err).Msg("failed to play move")
		writeError(w, http.StatusInternalServerError, "failed to play move")
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
