package httpapi

import (
	"net/http"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/season"
)

type raceDTO struct {
	Round           int        `json:"round"`
	Name            string     `json:"name"`
	Circuit         string     `json:"circuit"`
	CountryCode     string     `json:"country_code"`
	RaceDate        string     `json:"race_date"`
	StartUTC        time.Time  `json:"start_utc"`
	WeekendStartUTC *time.Time `json:"weekend_start_utc,omitempty"`
	Sprint          bool       `json:"sprint"`
}

type driverDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

type constructorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func raceToDTO(r season.Race) raceDTO {
	return raceDTO{
		Round:           r.Round,
		Name:            r.Name,
		Circuit:         r.Circuit,
		CountryCode:     r.CountryCode,
		RaceDate:        r.RaceDate,
		StartUTC:        r.StartUTC,
		WeekendStartUTC: r.WeekendStartUTC,
		Sprint:          r.Sprint,
	}
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	races, err := h.seasonService.Races(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list races failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, race := range races {
		items = append(items, raceToDTO(race))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	drivers, err := h.seasonService.Drivers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list drivers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]driverDTO, 0, len(drivers))
	for _, d := range drivers {
		items = append(items, driverDTO{ID: d.ID, Name: d.Name, Team: d.Team})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListConstructors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConstructors")
	defer span.End()

	constructors, err := h.seasonService.Constructors(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list constructors failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]constructorDTO, 0, len(constructors))
	for _, c := range constructors {
		items = append(items, constructorDTO{ID: c.ID, Name: c.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
