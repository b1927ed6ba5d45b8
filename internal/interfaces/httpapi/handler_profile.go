package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

type profileDTO struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	Handle         string    `json:"handle"`
	FavTeams       []string  `json:"fav_teams"`
	FavDrivers     []string  `json:"fav_drivers"`
	TimezoneOffset int       `json:"timezone_offset"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type updateProfileRequest struct {
	DisplayName    string   `json:"display_name" validate:"required,max=60"`
	FavTeams       []string `json:"fav_teams" validate:"omitempty,max=3,dive,required"`
	FavDrivers     []string `json:"fav_drivers" validate:"omitempty,max=3,dive,required"`
	TimezoneOffset int      `json:"timezone_offset" validate:"min=-720,max=840"`
}

func profileToDTO(p profile.Profile) profileDTO {
	favTeams := p.FavTeams
	if favTeams == nil {
		favTeams = []string{}
	}
	favDrivers := p.FavDrivers
	if favDrivers == nil {
		favDrivers = []string{}
	}
	return profileDTO{
		ID:             p.ID,
		DisplayName:    p.DisplayName,
		Handle:         p.Handle(),
		FavTeams:       favTeams,
		FavDrivers:     favDrivers,
		TimezoneOffset: p.TimezoneOffset,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.profileService.GetOrCreate(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateProfileRequest
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

	item, err := h.profileService.Update(ctx, usecase.UpdateProfileInput{
		UserID:         principal.UserID,
		DisplayName:    req.DisplayName,
		FavTeams:       req.FavTeams,
		FavDrivers:     req.FavDrivers,
		TimezoneOffset: req.TimezoneOffset,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMembers")
	defer span.End()

	members, err := h.profileService.Members(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list members failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]profileDTO, 0, len(members))
	for _, m := range members {
		items = append(items, profileToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMyAccount")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.accountService.DeleteData(ctx, principal.UserID); err != nil {
		h.logger.ErrorContext(ctx, "delete account data failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
