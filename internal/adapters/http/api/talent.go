// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/marquee/internal/adapters/repository"
)

// TalentHandler handles star-power ranking requests.
type TalentHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewTalentHandler creates a new talent handler.
func NewTalentHandler(deps Dependencies, maxLimit int) *TalentHandler {
	return &TalentHandler{deps: deps, maxLimit: maxLimit}
}

// HandleLeaderboard handles GET /talent/leaderboard?kind=director&limit=N.
func (h *TalentHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind != repository.KindDirector && kind != repository.KindActor {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadKind)
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadLimit)
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadLimit)
		return
	}
	entries, err := h.deps.TopTalent(r.Context(), kind, n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleRank handles GET /talent/rank/{kind}/{name}. Names may contain
// spaces; they arrive URL-escaped and are matched exactly, no fuzzing.
func (h *TalentHandler) HandleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/talent/rank/")
	kind, name, ok := strings.Cut(rest, "/")
	if !ok || name == "" || (kind != repository.KindDirector && kind != repository.KindActor) {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadKind)
		return
	}
	entry, err := h.deps.TalentRank(r.Context(), kind, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
