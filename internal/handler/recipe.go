package handler

import (
	"net/http"
	"strings"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/logger"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// RecipeSource provides read access to the recipe catalog.
// *catalog.Catalog satisfies it.
type RecipeSource interface {
	Recipes() []*domain.Recipe
	ForStation(kind domain.StationKind) []*domain.Recipe
}

// RecipeView is one catalog recipe with the caller's known flag
type RecipeView struct {
	*domain.Recipe
	Known bool `json:"known"`
}

// RecipeListResponse lists recipes in catalog file order
type RecipeListResponse struct {
	Recipes []RecipeView `json:"recipes"`
}

// UnlockRecipeRequest names the recipe to unlock
type UnlockRecipeRequest struct {
	RecipeID string `json:"recipe_id" validate:"required"`
}

// HandleGetRecipes returns catalog recipes, optionally filtered by station
// @Summary List recipes
// @Description Lists recipes in catalog order with their known flags. Filter with ?station=forge.
// @Tags recipes
// @Produce json
// @Param station query string false "Station kind to filter by"
// @Success 200 {object} RecipeListResponse
// @Failure 400 {object} ErrorResponse
// @Router /recipes [get]
func HandleGetRecipes(src RecipeSource, svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		stationName := r.URL.Query().Get("station")

		var recipes []*domain.Recipe
		if stationName != "" {
			kind, ok := domain.StationKindFromName(strings.ToLower(stationName))
			if !ok {
				respondError(w, http.StatusBadRequest, ErrMsgUnknownStationError)
				return
			}
			recipes = src.ForStation(kind)
		} else {
			recipes = src.Recipes()
		}

		known := make(map[string]bool)
		for _, id := range svc.KnownRecipes() {
			known[id] = true
		}

		views := make([]RecipeView, 0, len(recipes))
		for _, recipe := range recipes {
			views = append(views, RecipeView{Recipe: recipe, Known: known[recipe.ID]})
		}

		log.Debug("Recipes listed", "station", stationName, "count", len(views))
		respondJSON(w, http.StatusOK, RecipeListResponse{Recipes: views})
	}
}

// HandleUnlockRecipe unlocks a gated recipe when its gate is satisfied
// @Summary Unlock recipe
// @Description Marks a recipe as known if its mastery, prerequisite or quest gate is satisfied
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body UnlockRecipeRequest true "Recipe to unlock"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Gate not met"
// @Failure 404 {object} ErrorResponse
// @Router /recipes/unlock [post]
func HandleUnlockRecipe(svc production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlockRecipeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock recipe"); err != nil {
			return
		}

		if err := svc.UnlockRecipe(r.Context(), req.RecipeID); err != nil {
			respondServiceError(w, r, "Unlock recipe", err)
			return
		}

		log.Info("Recipe unlocked", "recipe", req.RecipeID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecipeUnlocked})
	}
}
