package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

type seasonPicksDTO struct {
	WDCWinner           *string   `json:"wdc_winner"`
	WCCWinner           *string   `json:"wcc_winner"`
	MostWins            *string   `json:"most_wins"`
	MostPoles           *string   `json:"most_poles"`
	MostPodiums         *string   `json:"most_podiums"`
	FirstDNFDriver      *string   `json:"first_dnf_driver"`
	FirstDNFConstructor *string   `json:"first_dnf_constructor"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type midseasonPicksDTO struct {
	WDCWinner *string   `json:"wdc_winner"`
	WCCWinner *string   `json:"wcc_winner"`
	UpdatedAt time.Time `json:"updated_at"`
}

type setPickRequest struct {
	// Value is a driver or constructor id depending on the category; null or
	// blank clears the pick.
	Value *string `json:"value"`
}

type racePicksDTO struct {
	Round          int       `json:"round"`
	QualPole       *string   `json:"qual_pole"`
	QualP2         *string   `json:"qual_p2"`
	QualP3         *string   `json:"qual_p3"`
	RaceWinner     *string   `json:"race_winner"`
	RaceP2         *string   `json:"race_p2"`
	RaceP3         *string   `json:"race_p3"`
	FastestLap     *string   `json:"fastest_lap"`
	SafetyCar      *bool     `json:"safety_car"`
	SprintQualPole *string   `json:"sprint_qual_pole,omitempty"`
	SprintQualP2   *string   `json:"sprint_qual_p2,omitempty"`
	SprintQualP3   *string   `json:"sprint_qual_p3,omitempty"`
	SprintWinner   *string   `json:"sprint_winner,omitempty"`
	SprintP2       *string   `json:"sprint_p2,omitempty"`
	SprintP3       *string   `json:"sprint_p3,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type saveRacePicksRequest struct {
	QualPole       *string `json:"qual_pole"`
	QualP2         *string `json:"qual_p2"`
	QualP3         *string `json:"qual_p3"`
	RaceWinner     *string `json:"race_winner"`
	RaceP2         *string `json:"race_p2"`
	RaceP3         *string `json:"race_p3"`
	FastestLap     *string `json:"fastest_lap"`
	SafetyCar      *bool   `json:"safety_car"`
	SprintQualPole *string `json:"sprint_qual_pole"`
	SprintQualP2   *string `json:"sprint_qual_p2"`
	SprintQualP3   *string `json:"sprint_qual_p3"`
	SprintWinner   *string `json:"sprint_winner"`
	SprintP2       *string `json:"sprint_p2"`
	SprintP3       *string `json:"sprint_p3"`
}

type roundStatusDTO struct {
	Round       int  `json:"round"`
	Sprint      bool `json:"sprint"`
	FilledCount int  `json:"filled_count"`
	FieldCount  int  `json:"field_count"`
}

func seasonPicksToDTO(p seasonpick.Picks) seasonPicksDTO {
	return seasonPicksDTO{
		WDCWinner:           p.WDCWinner,
		WCCWinner:           p.WCCWinner,
		MostWins:            p.MostWins,
		MostPoles:           p.MostPoles,
		MostPodiums:         p.MostPodiums,
		FirstDNFDriver:      p.FirstDNFDriver,
		FirstDNFConstructor: p.FirstDNFConstructor,
		UpdatedAt:           p.UpdatedAt,
	}
}

func racePicksToDTO(p racepick.Picks) racePicksDTO {
	return racePicksDTO{
		Round:          p.Round,
		QualPole:       p.QualPole,
		QualP2:         p.QualP2,
		QualP3:         p.QualP3,
		RaceWinner:     p.RaceWinner,
		RaceP2:         p.RaceP2,
		RaceP3:         p.RaceP3,
		FastestLap:     p.FastestLap,
		SafetyCar:      p.SafetyCar,
		SprintQualPole: p.SprintQualPole,
		SprintQualP2:   p.SprintQualP2,
		SprintQualP3:   p.SprintQualP3,
		SprintWinner:   p.SprintWinner,
		SprintP2:       p.SprintP2,
		SprintP3:       p.SprintP3,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (h *Handler) GetMySeasonPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySeasonPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	picks, err := h.seasonPickService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season picks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonPicksToDTO(picks))
}

func (h *Handler) SetMySeasonPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMySeasonPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	category := seasonpick.Category(strings.TrimSpace(r.PathValue("category")))

	var req setPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	picks, err := h.seasonPickService.Set(ctx, principal.UserID, category, req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "set season pick failed", "user_id", principal.UserID, "category", string(category), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonPicksToDTO(picks))
}

func (h *Handler) GetMyMidseasonPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyMidseasonPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	picks, err := h.seasonPickService.GetMidseason(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get midseason picks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, midseasonPicksDTO{
		WDCWinner: picks.WDCWinner,
		WCCWinner: picks.WCCWinner,
		UpdatedAt: picks.UpdatedAt,
	})
}

func (h *Handler) SetMyMidseasonPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMyMidseasonPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	category := seasonpick.MidseasonCategory(strings.TrimSpace(r.PathValue("category")))

	var req setPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	picks, err := h.seasonPickService.SetMidseason(ctx, principal.UserID, category, req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "set midseason pick failed", "user_id", principal.UserID, "category", string(category), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, midseasonPicksDTO{
		WDCWinner: picks.WDCWinner,
		WCCWinner: picks.WCCWinner,
		UpdatedAt: picks.UpdatedAt,
	})
}

func (h *Handler) GetMyRacePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRacePicks")
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

	picks, err := h.racePickService.Get(ctx, principal.UserID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get race picks failed", "user_id", principal.UserID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, racePicksToDTO(picks))
}

func (h *Handler) SaveMyRacePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyRacePicks")
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

	var req saveRacePicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	picks, err := h.racePickService.Save(ctx, usecase.SaveRacePicksInput{
		UserID:         principal.UserID,
		Round:          round,
		QualPole:       req.QualPole,
		QualP2:         req.QualP2,
		QualP3:         req.QualP3,
		RaceWinner:     req.RaceWinner,
		RaceP2:         req.RaceP2,
		RaceP3:         req.RaceP3,
		FastestLap:     req.FastestLap,
		SafetyCar:      req.SafetyCar,
		SprintQualPole: req.SprintQualPole,
		SprintQualP2:   req.SprintQualP2,
		SprintQualP3:   req.SprintQualP3,
		SprintWinner:   req.SprintWinner,
		SprintP2:       req.SprintP2,
		SprintP3:       req.SprintP3,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save race picks failed", "user_id", principal.UserID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, racePicksToDTO(picks))
}

func (h *Handler) GetMyRacePicksStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRacePicksStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	statuses, err := h.racePickService.Status(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get race pick status failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundStatusDTO, 0, len(statuses))
	for _, st := range statuses {
		items = append(items, roundStatusDTO{
			Round:       st.Round,
			Sprint:      st.Sprint,
			FilledCount: st.FilledCount,
			FieldCount:  st.FieldCount,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
