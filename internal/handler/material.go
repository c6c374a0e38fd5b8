package handler

import (
	"context"
	"net/http"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/ledger"
	"github.com/Yumichan48/foxrunner/internal/logger"
)

// MaterialLedger provides a point-in-time view of material balances and
// accepts external credits. *ledger.Ledger satisfies it.
type MaterialLedger interface {
	Snapshot() map[domain.MaterialID]int
	Add(ctx context.Context, material domain.MaterialID, amount int) (ledger.Change, error)
}

// MaterialCatalog provides the material definitions.
// *catalog.Catalog satisfies it.
type MaterialCatalog interface {
	Materials() []domain.Material
	Material(id domain.MaterialID) (domain.Material, bool)
}

// MaterialView is one material with its current held quantity
type MaterialView struct {
	domain.Material
	Quantity int `json:"quantity"`
}

// MaterialListResponse lists all catalog materials with held quantities
type MaterialListResponse struct {
	Materials []MaterialView `json:"materials"`
}

// HandleGetMaterials returns every catalog material with its ledger balance
// @Summary List materials
// @Description Lists catalog materials with the quantity currently held
// @Tags materials
// @Produce json
// @Success 200 {object} MaterialListResponse
// @Router /materials [get]
func HandleGetMaterials(cat MaterialCatalog, led MaterialLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances := led.Snapshot()

		materials := cat.Materials()
		views := make([]MaterialView, 0, len(materials))
		for _, material := range materials {
			views = append(views, MaterialView{
				Material: material,
				Quantity: balances[material.ID],
			})
		}

		respondJSON(w, http.StatusOK, MaterialListResponse{Materials: views})
	}
}

// GrantMaterialsRequest credits a material from an external source
type GrantMaterialsRequest struct {
	Material string `json:"material" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// GrantMaterialsResponse reports the balance after the credit
type GrantMaterialsResponse struct {
	Material string `json:"material"`
	Quantity int    `json:"quantity"`
}

// HandleGrantMaterials credits a catalog material to the ledger
// @Summary Grant materials
// @Description Credits a material quantity from an external source such as gathering or trade
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GrantMaterialsRequest true "Material credit"
// @Success 200 {object} GrantMaterialsResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/materials/grant [post]
func HandleGrantMaterials(cat MaterialCatalog, led MaterialLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantMaterialsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant materials"); err != nil {
			return
		}

		id := domain.MaterialID(req.Material)
		if _, ok := cat.Material(id); !ok {
			respondError(w, http.StatusBadRequest, ErrMsgUnknownMaterialError)
			return
		}

		change, err := led.Add(r.Context(), id, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Grant materials", err)
			return
		}

		log.Info("Material granted", "material", req.Material, "quantity", req.Quantity, "balance", change.New)
		respondJSON(w, http.StatusOK, GrantMaterialsResponse{
			Material: req.Material,
			Quantity: change.New,
		})
	}
}
