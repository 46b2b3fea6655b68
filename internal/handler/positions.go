package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.repository.GetAllPositions()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "positions listed", positions)
}

func (h *Handler) GetPositionTemplates(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid position id")
		return
	}

	if _, err := h.repository.GetPositionByID(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "position not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	templates, err := h.repository.GetTemplatesForPosition(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift templates listed", templates)
}
