package handler

import (
	"net/http"

	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// CompleteQuestRequest names the quest flag to record
type CompleteQuestRequest struct {
	QuestKey string `json:"quest_key" validate:"required"`
}

// HandleCompleteQuest records a quest flag so quest-gated recipes can unlock
// @Summary Complete quest
// @Description Records an externally satisfied quest flag referenced by recipe unlock gates
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CompleteQuestRequest true "Quest flag"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/quest/complete [post]
func HandleCompleteQuest(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CompleteQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
			return
		}

		svc.CompleteQuest(req.QuestKey)

		log.Info("Quest flag recorded", "quest_key", req.QuestKey)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgQuestCompleted})
	}
}
