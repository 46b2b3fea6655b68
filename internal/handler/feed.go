package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/utils"
)

// The subscription feed always serves a rolling window around today.
const (
	feedLookbackDays  = 7
	feedLookaheadDays = 60
)

func (h *Handler) CreateFeedToken(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	token := utils.GenerateFeedToken()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, "feed_token_"+token, myInfo.ID, 0).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "feed token created", map[string]string{
		"token": token,
		"path":  fmt.Sprintf("/calendar/feed/%s.ics", token),
	})
}

// CalendarFeed serves the ICS document for calendar clients polling the
// tokenized URL. No session is involved, the token is the credential.
func (h *Handler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSuffix(chi.URLParam(r, "token"), ".ics")

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	userIDString, err := h.redisClient.Get(ctx, "feed_token_"+token).Result()
	if err != nil {
		h.errorResponse(w, r, "unknown feed token")
		return
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -feedLookbackDays)
	to := now.AddDate(0, 0, feedLookaheadDays)

	document, err := h.renderICS(r.Context(), userID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}
