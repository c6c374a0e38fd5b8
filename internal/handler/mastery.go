package handler

import (
	"net/http"
	"strings"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// MasteryView is mastery progress at one station
type MasteryView struct {
	Station string `json:"station"`
	Level   int    `json:"level"`
	XP      int64  `json:"xp"`
}

// MasteryResponse lists mastery progress per station
type MasteryResponse struct {
	Mastery []MasteryView `json:"mastery"`
}

// HandleGetMastery returns mastery progress, for one station or all of them
// @Summary Mastery query
// @Description Returns mastery level and banked XP. Filter with ?station=forge.
// @Tags mastery
// @Produce json
// @Param station query string false "Station kind to filter by"
// @Success 200 {object} MasteryResponse
// @Failure 400 {object} ErrorResponse
// @Router /mastery [get]
func HandleGetMastery(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationName := r.URL.Query().Get("station")

		var kinds []domain.StationKind
		if stationName != "" {
			kind, ok := domain.StationKindFromName(strings.ToLower(stationName))
			if !ok {
				respondError(w, http.StatusBadRequest, ErrMsgUnknownStationError)
				return
			}
			kinds = []domain.StationKind{kind}
		} else {
			for i := 0; i < domain.StationKindCount; i++ {
				kinds = append(kinds, domain.StationKind(i))
			}
		}

		views := make([]MasteryView, 0, len(kinds))
		for _, kind := range kinds {
			progress, err := svc.MasteryProgress(kind)
			if err != nil {
				respondServiceError(w, r, "Get mastery", err)
				return
			}
			views = append(views, MasteryView{
				Station: kind.String(),
				Level:   progress.Level,
				XP:      progress.XP,
			})
		}

		respondJSON(w, http.StatusOK, MasteryResponse{Mastery: views})
	}
}
