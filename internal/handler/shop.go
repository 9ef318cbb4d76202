package handler

import (
	"net/http"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/domain"
)

// SeedsResponse lists every seed for sale
type SeedsResponse struct {
	Seeds []domain.CropDefinition `json:"seeds"`
}

// HandleGetSeeds lists the crop catalog
// @Summary List seeds
// @Tags shop
// @Produce json
// @Success 200 {object} SeedsResponse
// @Router /shop/seeds [get]
func HandleGetSeeds(crops *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, SeedsResponse{Seeds: crops.List()})
	}
}
