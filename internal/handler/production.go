package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// CraftRequest is the body for can-craft checks and craft starts
type CraftRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CanCraftResponse reports whether a craft request would be accepted
type CanCraftResponse struct {
	CanCraft bool   `json:"can_craft"`
	Reason   string `json:"reason,omitempty"`
}

// StartCraftResponse describes the queued job
type StartCraftResponse struct {
	Message     string    `json:"message"`
	JobID       uuid.UUID `json:"job_id"`
	RecipeID    string    `json:"recipe_id"`
	Station     string    `json:"station"`
	Quantity    int       `json:"quantity"`
	StartedAt   time.Time `json:"started_at"`
	CompletesAt time.Time `json:"completes_at"`
}

// CancelRequest identifies the job to cancel
type CancelRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

// HandleCanCraft checks whether a recipe could be crafted right now
// @Summary Can-craft check
// @Description Reports whether a craft request would currently be accepted, without mutating anything
// @Tags production
// @Accept json
// @Produce json
// @Param request body CraftRequest true "Craft request"
// @Success 200 {object} CanCraftResponse
// @Failure 400 {object} ErrorResponse
// @Router /craft/check [post]
func HandleCanCraft(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Can craft"); err != nil {
			return
		}

		if err := svc.CanCraft(r.Context(), req.RecipeID, req.Quantity); err != nil {
			_, reason := mapServiceErrorToUserMessage(err)
			respondJSON(w, http.StatusOK, CanCraftResponse{CanCraft: false, Reason: reason})
			return
		}

		respondJSON(w, http.StatusOK, CanCraftResponse{CanCraft: true})
	}
}

// HandleStartCrafting validates and queues a crafting job
// @Summary Start crafting
// @Description Debits ingredients and schedules a production job
// @Tags production
// @Accept json
// @Produce json
// @Param request body CraftRequest true "Craft request"
// @Success 201 {object} StartCraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Queue full"
// @Router /craft/start [post]
func HandleStartCrafting(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start crafting"); err != nil {
			return
		}

		job, err := svc.StartCrafting(r.Context(), req.RecipeID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Start crafting", err)
			return
		}

		log.Info("Crafting job queued",
			"job_id", job.ID,
			"recipe", job.RecipeID,
			"quantity", job.Quantity,
			"completes_at", job.CompletesAt)

		respondJSON(w, http.StatusCreated, StartCraftResponse{
			Message:     MsgCraftQueuedSuccess,
			JobID:       job.ID,
			RecipeID:    job.RecipeID,
			Station:     job.Station.String(),
			Quantity:    job.Quantity,
			StartedAt:   job.StartedAt,
			CompletesAt: job.CompletesAt,
		})
	}
}

// HandleCancelJob cancels a pending job and refunds its ingredients
// @Summary Cancel crafting job
// @Description Removes a pending job from the queue and refunds consumed ingredients in full
// @Tags production
// @Accept json
// @Produce json
// @Param request body CancelRequest true "Job to cancel"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already completed"
// @Router /craft/cancel [post]
func HandleCancelJob(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CancelRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Cancel job"); err != nil {
			return
		}

		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidJobID)
			return
		}

		if err := svc.Cancel(r.Context(), jobID); err != nil {
			respondServiceError(w, r, "Cancel job", err)
			return
		}

		log.Info("Crafting job cancelled", "job_id", jobID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCraftCancelledSuccess})
	}
}

// QueueResponse is an ordered snapshot of pending jobs
type QueueResponse struct {
	Jobs []domain.QueueSnapshotEntry `json:"jobs"`
}

// HandleGetQueue returns the pending production queue in scheduling order
// @Summary Queue snapshot
// @Description Lists pending jobs with completion progress fractions
// @Tags production
// @Produce json
// @Success 200 {object} QueueResponse
// @Router /queue [get]
func HandleGetQueue(svc production.Service, clock func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs := svc.QueueSnapshot(clock())
		if jobs == nil {
			jobs = []domain.QueueSnapshotEntry{}
		}
		respondJSON(w, http.StatusOK, QueueResponse{Jobs: jobs})
	}
}
