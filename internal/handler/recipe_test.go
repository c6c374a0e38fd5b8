package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

type stubRecipeSource struct {
	recipes []*domain.Recipe
}

func (s *stubRecipeSource) Recipes() []*domain.Recipe {
	return s.recipes
}

func (s *stubRecipeSource) ForStation(kind domain.StationKind) []*domain.Recipe {
	var out []*domain.Recipe
	for _, r := range s.recipes {
		if r.Station == kind {
			out = append(out, r)
		}
	}
	return out
}

func testRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		{
			ID:            "carve_figurine",
			DisplayName:   "Carve Figurine",
			Station:       domain.StationWorkbench,
			BaseCraftTime: 60 * time.Second,
		},
		{
			ID:            "smelt_iron_ingot",
			DisplayName:   "Smelt Iron Ingot",
			Station:       domain.StationForge,
			BaseCraftTime: 45 * time.Second,
			Gates:         domain.RecipeGates{Mastery: 3},
		},
	}
}

func TestHandleGetRecipes(t *testing.T) {
	t.Run("All Recipes With Known Flags", func(t *testing.T) {
		src := &stubRecipeSource{recipes: testRecipes()}
		svc := &MockProductionService{}
		svc.On("KnownRecipes").Return([]string{"carve_figurine"})

		req := httptest.NewRequest("GET", "/recipes", nil)
		w := httptest.NewRecorder()

		HandleGetRecipes(src, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"recipe_id":"carve_figurine"`)
		assert.Contains(t, body, `"recipe_id":"smelt_iron_ingot"`)
		assert.Contains(t, body, `"known":true`)
		assert.Contains(t, body, `"known":false`)
	})

	t.Run("Filtered By Station", func(t *testing.T) {
		src := &stubRecipeSource{recipes: testRecipes()}
		svc := &MockProductionService{}
		svc.On("KnownRecipes").Return([]string{})

		req := httptest.NewRequest("GET", "/recipes?station=forge", nil)
		w := httptest.NewRecorder()

		HandleGetRecipes(src, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "smelt_iron_ingot")
		assert.NotContains(t, body, "carve_figurine")
	})

	t.Run("Unknown Station Filter", func(t *testing.T) {
		src := &stubRecipeSource{recipes: testRecipes()}
		svc := &MockProductionService{}

		req := httptest.NewRequest("GET", "/recipes?station=smithy", nil)
		w := httptest.NewRecorder()

		HandleGetRecipes(src, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUnlockRecipe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockProductionService{}
		svc.On("UnlockRecipe", mock.Anything, "smelt_iron_ingot").Return(nil)

		req := httptest.NewRequest("POST", "/recipes/unlock",
			strings.NewReader(`{"recipe_id":"smelt_iron_ingot"}`))
		w := httptest.NewRecorder()

		HandleUnlockRecipe(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgRecipeUnlocked)
		svc.AssertExpectations(t)
	})

	t.Run("Gate Not Met", func(t *testing.T) {
		svc := &MockProductionService{}
		svc.On("UnlockRecipe", mock.Anything, "smelt_iron_ingot").
			Return(domain.ErrGateNotMet)

		req := httptest.NewRequest("POST", "/recipes/unlock",
			strings.NewReader(`{"recipe_id":"smelt_iron_ingot"}`))
		w := httptest.NewRecorder()

		HandleUnlockRecipe(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGateNotMetError)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := &MockProductionService{}
		svc.On("UnlockRecipe", mock.Anything, "no_such_recipe").
			Return(domain.ErrRecipeNotFound)

		req := httptest.NewRequest("POST", "/recipes/unlock",
			strings.NewReader(`{"recipe_id":"no_such_recipe"}`))
		w := httptest.NewRecorder()

		HandleUnlockRecipe(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
