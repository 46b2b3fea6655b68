package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

func (h *Handler) GetMyAssignment(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	assignment, err := h.repository.GetActiveAssignment(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no active assignment")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "assignment", assignment)
}

func (h *Handler) SetUserAssignment(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		PositionID     int64  `json:"positionId" validate:"required"`
		ReferenceDate  string `json:"referenceDate" validate:"required"`
		ReferenceIndex int    `json:"referenceIndex" validate:"required,gte=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ReferenceIndex > h.config.Rotation.CycleLength {
		h.errorResponse(w, r, "reference index outside the rotation cycle")
		return
	}

	referenceDate, err := time.Parse("2006-01-02", req.ReferenceDate)
	if err != nil {
		h.errorResponse(w, r, "invalid reference date, expected YYYY-MM-DD")
		return
	}

	if _, err := h.repository.GetPositionByID(req.PositionID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "position not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignment := &domain.WorkerAssignment{
		UserID:         user.ID,
		PositionID:     req.PositionID,
		ReferenceDate:  referenceDate,
		ReferenceIndex: req.ReferenceIndex,
	}

	if err := h.repository.ReplaceAssignment(assignment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignment replaced", assignment)
}
