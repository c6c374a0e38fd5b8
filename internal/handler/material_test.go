package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/ledger"
)

type stubMaterialCatalog struct {
	materials []domain.Material
}

func (s *stubMaterialCatalog) Materials() []domain.Material {
	return s.materials
}

func (s *stubMaterialCatalog) Material(id domain.MaterialID) (domain.Material, bool) {
	for _, m := range s.materials {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Material{}, false
}

type stubMaterialLedger struct {
	balances map[domain.MaterialID]int
}

func (s *stubMaterialLedger) Snapshot() map[domain.MaterialID]int {
	return s.balances
}

func (s *stubMaterialLedger) Add(ctx context.Context, material domain.MaterialID, amount int) (ledger.Change, error) {
	old := s.balances[material]
	s.balances[material] = old + amount
	return ledger.Change{Material: material, Old: old, New: old + amount}, nil
}

func testMaterialCatalog() *stubMaterialCatalog {
	return &stubMaterialCatalog{materials: []domain.Material{
		{ID: "iron_ore", DisplayName: "Iron Ore", Rarity: domain.RarityCommon, MaxStack: 999},
		{ID: "phoenix_feather", DisplayName: "Phoenix Feather", Rarity: domain.RarityLegendary, MaxStack: 10},
	}}
}

func TestHandleGetMaterials(t *testing.T) {
	cat := testMaterialCatalog()
	led := &stubMaterialLedger{balances: map[domain.MaterialID]int{"iron_ore": 12}}

	req := httptest.NewRequest("GET", "/materials", nil)
	w := httptest.NewRecorder()

	HandleGetMaterials(cat, led).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"material_id":"iron_ore"`)
	assert.Contains(t, body, `"quantity":12`)
	assert.Contains(t, body, `"material_id":"phoenix_feather"`)
	assert.Contains(t, body, `"quantity":0`)
}

func TestHandleGrantMaterials(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cat := testMaterialCatalog()
		led := &stubMaterialLedger{balances: map[domain.MaterialID]int{"iron_ore": 5}}

		req := httptest.NewRequest("POST", "/admin/materials/grant",
			strings.NewReader(`{"material":"iron_ore","quantity":10}`))
		w := httptest.NewRecorder()

		HandleGrantMaterials(cat, led).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"quantity":15`)
		assert.Equal(t, 15, led.balances["iron_ore"])
	})

	t.Run("UnknownMaterial", func(t *testing.T) {
		cat := testMaterialCatalog()
		led := &stubMaterialLedger{balances: map[domain.MaterialID]int{}}

		req := httptest.NewRequest("POST", "/admin/materials/grant",
			strings.NewReader(`{"material":"unobtanium","quantity":1}`))
		w := httptest.NewRecorder()

		HandleGrantMaterials(cat, led).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, led.balances)
	})

	t.Run("MissingQuantity", func(t *testing.T) {
		cat := testMaterialCatalog()
		led := &stubMaterialLedger{balances: map[domain.MaterialID]int{}}

		req := httptest.NewRequest("POST", "/admin/materials/grant",
			strings.NewReader(`{"material":"iron_ore"}`))
		w := httptest.NewRecorder()

		HandleGrantMaterials(cat, led).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, led.balances)
	})
}
