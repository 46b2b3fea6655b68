package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/utils"
)

func (h *Handler) GetAllRotationPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.repository.GetAllActivePatterns()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rotation patterns listed", patterns)
}

func (h *Handler) CreateRotationPattern(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RotationIndex  int       `json:"rotationIndex" validate:"required,gte=1"`
		Days           [7]string `json:"days"`
		MorningStart   string    `json:"morningStart" validate:"required"`
		MorningEnd     string    `json:"morningEnd" validate:"required"`
		AfternoonStart string    `json:"afternoonStart" validate:"required"`
		AfternoonEnd   string    `json:"afternoonEnd" validate:"required"`
		NightStart     string    `json:"nightStart" validate:"required"`
		NightEnd       string    `json:"nightEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pattern := &domain.RotationPattern{
		RotationIndex:  req.RotationIndex,
		Days:           req.Days,
		MorningStart:   req.MorningStart,
		MorningEnd:     req.MorningEnd,
		AfternoonStart: req.AfternoonStart,
		AfternoonEnd:   req.AfternoonEnd,
		NightStart:     req.NightStart,
		NightEnd:       req.NightEnd,
	}

	if err := utils.ValidateRotationPattern(pattern, h.config.Rotation.CycleLength); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateRotationPattern(pattern); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "rotation_patterns_rotation_index_check":
			h.errorResponse(w, r, "rotation index outside the rotation cycle")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "rotation pattern created", pattern)
}

func (h *Handler) ActivateRotationPattern(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid pattern id")
		return
	}

	if err := h.repository.ActivateRotationPattern(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "pattern not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "rotation pattern activated", nil)
}
