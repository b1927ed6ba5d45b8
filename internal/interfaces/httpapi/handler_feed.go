package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/radiogagalight/f1-together/internal/usecase"
)

type activityItemDTO struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Label       string    `json:"label"`
	Timestamp   time.Time `json:"timestamp"`
	Round       int       `json:"round,omitempty"`
}

type notificationDTO struct {
	ID              string    `json:"id"`
	FromUserID      string    `json:"from_user_id"`
	FromDisplayName string    `json:"from_display_name"`
	Round           int       `json:"round"`
	RaceName        string    `json:"race_name"`
	CommentID       string    `json:"comment_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) GetActivityFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActivityFeed")
	defer span.End()

	items, err := h.feedService.Activity(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get activity feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]activityItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, activityItemDTO{
			UserID:      item.UserID,
			DisplayName: item.DisplayName,
			Label:       item.Label,
			Timestamp:   item.Timestamp,
			Round:       item.Round,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnreadNotifications")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	views, err := h.notificationService.UnreadAndMarkRead(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list unread notifications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]notificationDTO, 0, len(views))
	for _, v := range views {
		items = append(items, notificationDTO{
			ID:              v.Notification.ID,
			FromUserID:      v.Notification.FromUserID,
			FromDisplayName: v.FromDisplayName,
			Round:           v.Notification.Round,
			RaceName:        v.RaceName,
			CommentID:       v.Notification.CommentID,
			CreatedAt:       v.Notification.CreatedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetUnreadNotificationCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUnreadNotificationCount")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	count, err := h.notificationService.CountUnread(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "count unread notifications failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"count": count})
}
