package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/radiogagalight/f1-together/internal/usecase"
)

type mentionSpanDTO struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	UserID string `json:"user_id"`
}

type commentDTO struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	AuthorDisplayName string           `json:"author_display_name"`
	Round             int              `json:"round"`
	Content           string           `json:"content"`
	Mentions          []mentionSpanDTO `json:"mentions"`
	CreatedAt         time.Time        `json:"created_at"`
}

type postCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

type postCommentResponseDTO struct {
	Comment    commentDTO `json:"comment"`
	Recipients []string   `json:"notified_user_ids"`
}

func commentViewToDTO(v usecase.CommentView) commentDTO {
	mentions := make([]mentionSpanDTO, 0, len(v.Mentions))
	for _, m := range v.Mentions {
		mentions = append(mentions, mentionSpanDTO{Start: m.Start, End: m.End, UserID: m.UserID})
	}
	return commentDTO{
		ID:                v.Comment.ID,
		UserID:            v.Comment.UserID,
		AuthorDisplayName: v.AuthorDisplayName,
		Round:             v.Comment.Round,
		Content:           v.Comment.Content,
		Mentions:          mentions,
		CreatedAt:         v.Comment.CreatedAt,
	}
}

func (h *Handler) ListRaceComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceComments")
	defer span.End()

	round, err := parseRound(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	thread, err := h.commentService.Thread(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list race comments failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]commentDTO, 0, len(thread))
	for _, view := range thread {
		items = append(items, commentViewToDTO(view))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PostRaceComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostRaceComment")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	round, err := parseRound(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req postCommentRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	posted, recipients, err := h.commentService.Post(ctx, usecase.PostCommentInput{
		UserID:  principal.UserID,
		Round:   round,
		Content: req.Content,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "post race comment failed", "user_id", principal.UserID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}
	if recipients == nil {
		recipients = []string{}
	}

	writeSuccess(ctx, w, http.StatusCreated, postCommentResponseDTO{
		Comment: commentDTO{
			ID:        posted.ID,
			UserID:    posted.UserID,
			Round:     posted.Round,
			Content:   posted.Content,
			Mentions:  []mentionSpanDTO{},
			CreatedAt: posted.CreatedAt,
		},
		Recipients: recipients,
	})
}
