package handler

import (
	"net/http"
	"strings"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// StationDirectory provides read access to station specs and progress.
// *station.Registry satisfies it.
type StationDirectory interface {
	Spec(kind domain.StationKind) domain.StationSpec
	Level(kind domain.StationKind) int
	Unlocked(kind domain.StationKind) bool
	SpeedMultiplier(kind domain.StationKind) float64
	QualityBonus(kind domain.StationKind) float64
}

// StationView is one station in the station listing
type StationView struct {
	Kind            string   `json:"kind"`
	DisplayName     string   `json:"display_name"`
	Level           int      `json:"level"`
	MaxLevel        int      `json:"max_level"`
	Unlocked        bool     `json:"unlocked"`
	SpeedMultiplier float64  `json:"speed_multiplier"`
	QualityBonus    float64  `json:"quality_bonus"`
	Specializations []string `json:"specializations,omitempty"`
}

// StationListResponse lists every station kind in unlock order
type StationListResponse struct {
	Stations []StationView `json:"stations"`
}

// StationRequest names the station a mutation applies to
type StationRequest struct {
	Station string `json:"station" validate:"required,station"`
}

// HandleListStations returns every station with its current progress
// @Summary List stations
// @Description Returns all station kinds with level, unlock state and current multipliers
// @Tags stations
// @Produce json
// @Success 200 {object} StationListResponse
// @Router /stations [get]
func HandleListStations(dir StationDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := make([]StationView, 0, domain.StationKindCount)
		for i := 0; i < domain.StationKindCount; i++ {
			kind := domain.StationKind(i)
			spec := dir.Spec(kind)
			views = append(views, StationView{
				Kind:            kind.String(),
				DisplayName:     spec.DisplayName,
				Level:           dir.Level(kind),
				MaxLevel:        spec.MaxLevel,
				Unlocked:        dir.Unlocked(kind),
				SpeedMultiplier: dir.SpeedMultiplier(kind),
				QualityBonus:    dir.QualityBonus(kind),
				Specializations: spec.Specializations,
			})
		}
		respondJSON(w, http.StatusOK, StationListResponse{Stations: views})
	}
}

// HandleUnlockStation unlocks a station when its prerequisite is met
// @Summary Unlock station
// @Description Unlocks the named station if the preceding station's mastery requirement is met
// @Tags stations
// @Accept json
// @Produce json
// @Param request body StationRequest true "Station to unlock"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Prerequisite not met"
// @Router /stations/unlock [post]
func HandleUnlockStation(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock station"); err != nil {
			return
		}

		kind, ok := domain.StationKindFromName(strings.ToLower(req.Station))
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgUnknownStationError)
			return
		}

		if err := svc.UnlockStation(r.Context(), kind); err != nil {
			respondServiceError(w, r, "Unlock station", err)
			return
		}

		log.Info("Station unlocked", "station", kind)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStationUnlocked})
	}
}

// HandleUpgradeStation raises a station one level, paying its upgrade cost
// @Summary Upgrade station
// @Description Debits the upgrade cost and raises the named station one level
// @Tags stations
// @Accept json
// @Produce json
// @Param request body StationRequest true "Station to upgrade"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Station locked"
// @Router /stations/upgrade [post]
func HandleUpgradeStation(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Upgrade station"); err != nil {
			return
		}

		kind, ok := domain.StationKindFromName(strings.ToLower(req.Station))
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgUnknownStationError)
			return
		}

		if err := svc.UpgradeStation(r.Context(), kind); err != nil {
			respondServiceError(w, r, "Upgrade station", err)
			return
		}

		log.Info("Station upgraded", "station", kind)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStationUpgraded})
	}
}
