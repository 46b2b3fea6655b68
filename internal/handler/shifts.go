package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/ical"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/rota"
)

func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "invalid end date, expected YYYY-MM-DD")
		return
	}

	if end.Before(start) {
		h.errorResponse(w, r, "end date before start date")
		return
	}
	// The engine has no internal bound on the loop, capping the range is
	// the caller's job.
	if int(end.Sub(start).Hours()/24)+1 > h.config.Rotation.MaxRangeDays {
		h.errorResponse(w, r, fmt.Sprintf("date range exceeds %d days", h.config.Rotation.MaxRangeDays))
		return
	}

	shifts, err := h.generateForUser(myInfo.ID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), errors.Is(err, rota.ErrNoAssignment):
			h.errorResponse(w, r, "no active assignment, ask your administrator to set one")
		case errors.Is(err, rota.ErrNoActivePattern):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, fmt.Sprintf("%d shifts generated", len(shifts)), shifts)
}

// generateForUser resolves the user's assignment, runs the engine over the
// range and persists the outcome as one batched upsert. Nothing partial is
// ever written: resolution happens fully in memory first.
func (h *Handler) generateForUser(userID int64, start, end time.Time) ([]*domain.GeneratedShift, error) {
	assignment, err := h.repository.GetActiveAssignment(userID)
	if err != nil {
		return nil, err
	}

	position, err := h.repository.GetPositionByID(assignment.PositionID)
	if err != nil {
		return nil, err
	}

	shifts, err := h.generator.Generate(assignment, position, start, end)
	if err != nil {
		return nil, err
	}

	if err := h.repository.UpsertGeneratedShifts(shifts); err != nil {
		return nil, err
	}

	h.bumpShiftVersion(userID)

	return shifts, nil
}

func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseRangeQuery(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	shifts, err := h.repository.GetGeneratedShifts(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts listed", shifts)
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseRangeQuery(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	document, err := h.renderICS(r.Context(), myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schichtplan.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

func (h *Handler) GoogleCalendarLink(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	dateParam := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "invalid date, expected YYYY-MM-DD")
		return
	}

	shift, err := h.repository.GetGeneratedShift(myInfo.ID, date)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no shift on this date")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "calendar link", map[string]string{
		"url": ical.GoogleCalendarLink(shift),
	})
}

// renderICS serves the document from redis when the user's shifts have not
// changed since it was cached. The cache key carries a per-user generation
// counter, so invalidation is just bumping the counter.
func (h *Handler) renderICS(ctx context.Context, userID int64, from, to time.Time) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	// An absent counter means no generation happened yet; the empty version
	// still forms a usable cache key.
	version, _ := h.redisClient.Get(opCtx, fmt.Sprintf("shift_version_%d", userID)).Result()

	cacheKey := fmt.Sprintf("ics_%d_%s_%s_v%s", userID, from.Format("20060102"), to.Format("20060102"), version)

	if document, err := h.redisClient.Get(opCtx, cacheKey).Result(); err == nil {
		return document, nil
	}

	shifts, err := h.repository.GetGeneratedShifts(userID, from, to)
	if err != nil {
		return "", err
	}

	document := ical.Document(h.config.Export.CalendarName, shifts)

	// Failing to cache is not failing to export.
	_ = h.redisClient.Set(opCtx, cacheKey, document, time.Duration(h.config.Export.FeedCacheTTL)*time.Second).Err()

	return document, nil
}

func (h *Handler) bumpShiftVersion(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	_ = h.redisClient.Incr(ctx, fmt.Sprintf("shift_version_%d", userID)).Err()
}

func parseRangeQuery(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing from parameter, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing to parameter, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to parameter before from parameter")
	}
	return from, to, nil
}
