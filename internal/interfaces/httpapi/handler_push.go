package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/radiogagalight/f1-together/internal/usecase"
)

// Push subscription payloads are stored opaquely; the body is the browser's
// PushSubscription JSON as-is, not a DTO.
const maxPushSubscriptionBody = 16 << 10

func (h *Handler) SubscribePush(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubscribePush")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPushSubscriptionBody))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read subscription payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.pushService.Subscribe(ctx, usecase.SubscribePushInput{
		UserID:  principal.UserID,
		Payload: payload,
	}); err != nil {
		h.logger.WarnContext(ctx, "subscribe push failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "subscribed"})
}

func (h *Handler) UnsubscribePush(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnsubscribePush")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.pushService.Unsubscribe(ctx, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "unsubscribe push failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}
