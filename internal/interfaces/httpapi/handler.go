package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/radiogagalight/f1-together/internal/platform/logging"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

type Handler struct {
	profileService      *usecase.ProfileService
	seasonService       *usecase.SeasonService
	seasonPickService   *usecase.SeasonPickService
	racePickService     *usecase.RacePickService
	commentService      *usecase.CommentService
	feedService         *usecase.FeedService
	notificationService *usecase.NotificationService
	pushService         *usecase.PushService
	accountService      *usecase.AccountService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	profileService *usecase.ProfileService,
	seasonService *usecase.SeasonService,
	seasonPickService *usecase.SeasonPickService,
	racePickService *usecase.RacePickService,
	commentService *usecase.CommentService,
	feedService *usecase.FeedService,
	notificationService *usecase.NotificationService,
	pushService *usecase.PushService,
	accountService *usecase.AccountService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileService:      profileService,
		seasonService:       seasonService,
		seasonPickService:   seasonPickService,
		racePickService:     racePickService,
		commentService:      commentService,
		feedService:         feedService,
		notificationService: notificationService,
		pushService:         pushService,
		accountService:      accountService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseRound(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("round"))
	round, err := strconv.Atoi(raw)
	if err != nil || round < 1 {
		return 0, fmt.Errorf("%w: round must be a positive integer", usecase.ErrInvalidInput)
	}
	return round, nil
}
