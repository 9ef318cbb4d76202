package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/harvest"
	"github.com/osse101/StealFarm_Go/internal/plot"
	"github.com/osse101/StealFarm_Go/internal/theft"
	"github.com/osse101/StealFarm_Go/internal/user"
)

// PlantRequest is the body of POST /api/farm/plant
type PlantRequest struct {
	PlotIndex *int   `json:"plotIndex" validate:"required,min=0"`
	CropType  string `json:"cropType" validate:"required,notblank"`
}

// HarvestRequest is the body of POST /api/farm/harvest
type HarvestRequest struct {
	PlotIndex *int `json:"plotIndex" validate:"required,min=0"`
}

// StealRequest is the body of POST /api/farm/steal
type StealRequest struct {
	FriendID  string `json:"friendId" validate:"required,notblank"`
	PlotIndex *int   `json:"plotIndex" validate:"required,min=0"`
}

// PlantResponse is returned after planting
type PlantResponse struct {
	Message string           `json:"message"`
	User    *domain.Player   `json:"user"`
	Plot    *domain.PlotView `json:"plot"`
}

// HarvestResponse is returned after harvesting
type HarvestResponse struct {
	Message string             `json:"message"`
	Harvest int64              `json:"harvest"`
	Exp     int64              `json:"exp"`
	Stolen  int64              `json:"stolen"`
	Level   domain.LevelResult `json:"level"`
	User    *domain.Player     `json:"user"`
}

// StealResponse is returned after a successful theft
type StealResponse struct {
	Message string         `json:"message"`
	Amount  int64          `json:"amount"`
	User    *domain.Player `json:"user"`
}

// FarmHandler serves the farm endpoints
type FarmHandler struct {
	plotSvc    plot.Service
	harvestSvc harvest.Service
	theftSvc   theft.Service
	userSvc    user.Service
	crops      *catalog.Catalog
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(plotSvc plot.Service, harvestSvc harvest.Service, theftSvc theft.Service, userSvc user.Service, crops *catalog.Catalog) *FarmHandler {
	return &FarmHandler{
		plotSvc:    plotSvc,
		harvestSvc: harvestSvc,
		theftSvc:   theftSvc,
		userSvc:    userSvc,
		crops:      crops,
	}
}

// HandleGetFarm returns the caller's farm with the crop list
// @Summary Get own farm
// @Description Returns the caller's profile, every plot with its growth state, and the crop list
// @Tags farm
// @Produce json
// @Success 200 {object} domain.Farm
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farm [get]
// @Security BearerAuth
func (h *FarmHandler) HandleGetFarm(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	farm, err := h.plotSvc.GetFarm(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get farm", err)
		return
	}

	respondJSON(w, http.StatusOK, farm)
}

// HandleVisitFarm returns a friend's farm
// @Summary Visit a friend's farm
// @Tags farm
// @Produce json
// @Param userID path string true "Friend's player ID"
// @Success 200 {object} domain.Farm
// @Failure 403 {object} ErrorResponse "Not friends"
// @Failure 404 {object} ErrorResponse
// @Router /farm/visit/{userID} [get]
// @Security BearerAuth
func (h *FarmHandler) HandleVisitFarm(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}
	ownerID, ok := GetURLParam(r, w, "userID")
	if !ok {
		return
	}

	farm, err := h.plotSvc.VisitFarm(r.Context(), playerID, ownerID)
	if err != nil {
		respondServiceError(w, r, "Visit farm", err)
		return
	}

	respondJSON(w, http.StatusOK, farm)
}

// HandlePlant buys a seed and plants it
// @Summary Plant a crop
// @Description Debits the seed price and plants it on an empty plot
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plot and crop"
// @Success 200 {object} PlantResponse
// @Failure 400 {object} ErrorResponse "Unknown crop, not enough coins or plot occupied"
// @Failure 404 {object} ErrorResponse "Plot not found"
// @Failure 500 {object} ErrorResponse
// @Router /farm/plant [post]
// @Security BearerAuth
func (h *FarmHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
		return
	}

	result, err := h.plotSvc.Plant(r.Context(), playerID, *req.PlotIndex, req.CropType)
	if err != nil {
		respondServiceError(w, r, "Plant", err)
		return
	}

	view, err := h.plotSvc.GetPlot(r.Context(), playerID, result.PlotIndex)
	if err != nil {
		respondServiceError(w, r, "Plant", err)
		return
	}
	player, err := h.userSvc.GetProfile(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Plant", err)
		return
	}

	respondJSON(w, http.StatusOK, PlantResponse{
		Message: MsgPlantSuccess,
		User:    player,
		Plot:    view,
	})
}

// HandleHarvest harvests a ready crop on the caller's farm
// @Summary Harvest a crop
// @Description Empties a ready plot and pays its value minus what friends stole
// @Tags farm
// @Accept json
// @Produce json
// @Param request body HarvestRequest true "Plot to harvest"
// @Success 200 {object} HarvestResponse
// @Failure 400 {object} ErrorResponse "Nothing to harvest or not ready"
// @Failure 404 {object} ErrorResponse "Plot not found"
// @Failure 500 {object} ErrorResponse
// @Router /farm/harvest [post]
// @Security BearerAuth
func (h *FarmHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req HarvestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	result, err := h.harvestSvc.Harvest(r.Context(), playerID, *req.PlotIndex)
	if err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	player, err := h.userSvc.GetProfile(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	respondJSON(w, http.StatusOK, HarvestResponse{
		Message: MsgHarvestSuccess,
		Harvest: result.HarvestAmount,
		Exp:     result.ExpAmount,
		Stolen:  result.StolenAmount,
		Level:   result.Level,
		User:    player,
	})
}

// HandleSteal takes a share of a friend's ready crop
// @Summary Steal from a friend
// @Tags farm
// @Accept json
// @Produce json
// @Param request body StealRequest true "Friend and plot"
// @Success 200 {object} StealResponse
// @Failure 400 {object} ErrorResponse "No crop, not ready or already stolen"
// @Failure 403 {object} ErrorResponse "Not friends"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farm/steal [post]
// @Security BearerAuth
func (h *FarmHandler) HandleSteal(w http.ResponseWriter, r *http.Request) {
	playerID, ok := requirePlayerID(w, r)
	if !ok {
		return
	}

	var req StealRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Steal"); err != nil {
		return
	}

	result, err := h.theftSvc.Steal(r.Context(), playerID, req.FriendID, *req.PlotIndex)
	if err != nil {
		respondServiceError(w, r, "Steal", err)
		return
	}

	player, err := h.userSvc.GetProfile(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Steal", err)
		return
	}

	respondJSON(w, http.StatusOK, StealResponse{
		Message: fmt.Sprintf(MsgStealSuccessFormat, result.Amount, h.cropName(result.CropID)),
		Amount:  result.Amount,
		User:    player,
	})
}

func (h *FarmHandler) cropName(id string) string {
	if crop, ok := h.crops.Get(id); ok {
		return crop.Name
	}
	return id
}
