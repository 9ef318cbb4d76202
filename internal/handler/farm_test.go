package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/harvest"
	"github.com/osse101/StealFarm_Go/internal/plot"
	"github.com/osse101/StealFarm_Go/internal/theft"
)

var (
	_ plot.Service    = (*MockPlotService)(nil)
	_ harvest.Service = (*MockHarvestService)(nil)
	_ theft.Service   = (*MockTheftService)(nil)
)

type farmMocks struct {
	plots   *MockPlotService
	harvest *MockHarvestService
	theft   *MockTheftService
	users   *MockUserService
}

func newFarmHandler(t *testing.T) (*FarmHandler, *farmMocks) {
	t.Helper()
	crops, err := catalog.Load("")
	require.NoError(t, err)

	m := &farmMocks{
		plots:   &MockPlotService{},
		harvest: &MockHarvestService{},
		theft:   &MockTheftService{},
		users:   &MockUserService{},
	}
	return NewFarmHandler(m.plots, m.harvest, m.theft, m.users, crops), m
}

func (m *farmMocks) assertExpectations(t *testing.T) {
	m.plots.AssertExpectations(t)
	m.harvest.AssertExpectations(t)
	m.theft.AssertExpectations(t)
	m.users.AssertExpectations(t)
}

func TestFarmHandler_GetFarm(t *testing.T) {
	h, m := newFarmHandler(t)
	cabbage := "cabbage"
	m.plots.On("GetFarm", mock.Anything, "p1").Return(&domain.Farm{
		Player:  &domain.Player{ID: "p1", Username: "alice"},
		Plots:   []domain.PlotView{{Plot: domain.Plot{OwnerID: "p1", Index: 0, CropID: &cabbage}, Stage: 2, Progress: 50}},
		Crops:   []domain.CropDefinition{{ID: "cabbage", Price: 10}},
		IsOwner: true,
	}, nil)

	w := httptest.NewRecorder()
	h.HandleGetFarm(w, newRequest(t, http.MethodGet, "/api/farm", nil, "p1"))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]interface{}](t, w)
	assert.Equal(t, true, body["isOwner"])
	assert.Len(t, body["plots"], 1)
	assert.Len(t, body["crops"], 1)
	plot0 := body["plots"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "cabbage", plot0["cropType"])
	assert.Equal(t, float64(2), plot0["stage"])
	m.assertExpectations(t)
}

func TestFarmHandler_VisitFarm(t *testing.T) {
	t.Run("Friend", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.plots.On("VisitFarm", mock.Anything, "p1", "p2").Return(&domain.Farm{
			Player: &domain.Player{ID: "p2", Username: "bob"},
			Plots:  []domain.PlotView{},
		}, nil)

		req := withURLParam(newRequest(t, http.MethodGet, "/api/farm/visit/p2", nil, "p1"), "userID", "p2")
		w := httptest.NewRecorder()
		h.HandleVisitFarm(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[map[string]interface{}](t, w)
		assert.Equal(t, false, body["isOwner"])
		_, hasCrops := body["crops"]
		assert.False(t, hasCrops)
	})

	t.Run("Not friends", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.plots.On("VisitFarm", mock.Anything, "p1", "p3").Return(nil, fmt.Errorf("%w: cannot visit p3", domain.ErrNotFriends))

		req := withURLParam(newRequest(t, http.MethodGet, "/api/farm/visit/p3", nil, "p1"), "userID", "p3")
		w := httptest.NewRecorder()
		h.HandleVisitFarm(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, ErrMsgNotFriendsError, decodeBody[ErrorResponse](t, w).Error)
	})

	t.Run("Missing path param", func(t *testing.T) {
		h, m := newFarmHandler(t)

		w := httptest.NewRecorder()
		h.HandleVisitFarm(w, newRequest(t, http.MethodGet, "/api/farm/visit/", nil, "p1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.plots.AssertNotCalled(t, "VisitFarm", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFarmHandler_Plant(t *testing.T) {
	cabbage := "cabbage"

	tests := []struct {
		name           string
		playerID       string
		body           interface{}
		setupMock      func(*farmMocks)
		expectedStatus int
		expectedError  string
	}{
		{
			name:     "Success",
			playerID: "p1",
			body:     PlantRequest{PlotIndex: intPtr(0), CropType: "cabbage"},
			setupMock: func(m *farmMocks) {
				m.plots.On("Plant", mock.Anything, "p1", 0, "cabbage").
					Return(&domain.PlantResult{PlotIndex: 0, CropID: "cabbage", Coins: 90}, nil)
				m.plots.On("GetPlot", mock.Anything, "p1", 0).
					Return(&domain.PlotView{Plot: domain.Plot{OwnerID: "p1", Index: 0, CropID: &cabbage}, Stage: 1}, nil)
				m.users.On("GetProfile", mock.Anything, "p1").
					Return(&domain.Player{ID: "p1", Coins: 90}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unauthenticated",
			body:           PlantRequest{PlotIndex: intPtr(0), CropType: "cabbage"},
			setupMock:      func(m *farmMocks) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  ErrMsgMissingToken,
		},
		{
			name:           "Missing plot index",
			playerID:       "p1",
			body:           map[string]string{"cropType": "cabbage"},
			setupMock:      func(m *farmMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Negative plot index",
			playerID:       "p1",
			body:           PlantRequest{PlotIndex: intPtr(-1), CropType: "cabbage"},
			setupMock:      func(m *farmMocks) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  ErrMsgInvalidRequestSummary,
		},
		{
			name:     "Unknown crop",
			playerID: "p1",
			body:     PlantRequest{PlotIndex: intPtr(0), CropType: "durian"},
			setupMock: func(m *farmMocks) {
				m.plots.On("Plant", mock.Anything, "p1", 0, "durian").
					Return(nil, fmt.Errorf("%w: durian", domain.ErrUnknownCrop))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  ErrMsgUnknownCropError,
		},
		{
			name:     "Not enough coins",
			playerID: "p1",
			body:     PlantRequest{PlotIndex: intPtr(0), CropType: "watermelon"},
			setupMock: func(m *farmMocks) {
				m.plots.On("Plant", mock.Anything, "p1", 0, "watermelon").
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  ErrMsgNotEnoughCoinsError,
		},
		{
			name:     "Plot out of range",
			playerID: "p1",
			body:     PlantRequest{PlotIndex: intPtr(6), CropType: "cabbage"},
			setupMock: func(m *farmMocks) {
				m.plots.On("Plant", mock.Anything, "p1", 6, "cabbage").
					Return(nil, domain.ErrPlotNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  ErrMsgPlotNotFoundError,
		},
		{
			name:     "Database failure",
			playerID: "p1",
			body:     PlantRequest{PlotIndex: intPtr(0), CropType: "cabbage"},
			setupMock: func(m *farmMocks) {
				m.plots.On("Plant", mock.Anything, "p1", 0, "cabbage").
					Return(nil, fmt.Errorf("failed to plant: %w", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newFarmHandler(t)
			tt.setupMock(m)

			w := httptest.NewRecorder()
			h.HandlePlant(w, newRequest(t, http.MethodPost, "/api/farm/plant", tt.body, tt.playerID))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeBody[ErrorResponse](t, w).Error)
			} else {
				resp := decodeBody[PlantResponse](t, w)
				assert.Equal(t, MsgPlantSuccess, resp.Message)
				assert.Equal(t, int64(90), resp.User.Coins)
				assert.Equal(t, domain.StageSeedling, resp.Plot.Stage)
			}
			m.assertExpectations(t)
		})
	}
}

func TestFarmHandler_Harvest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.harvest.On("Harvest", mock.Anything, "p1", 2).Return(&domain.HarvestResult{
			PlotIndex:  2,
			CropID:     "corn",
			Settlement: domain.Settlement{HarvestAmount: 32, StolenAmount: 48, ExpAmount: 15},
			Coins:      122,
			Level:      domain.LevelResult{PlayerID: "p1", OldLevel: 1, NewLevel: 1, Exp: 15},
		}, nil)
		m.users.On("GetProfile", mock.Anything, "p1").Return(&domain.Player{ID: "p1", Coins: 122, Exp: 15}, nil)

		w := httptest.NewRecorder()
		h.HandleHarvest(w, newRequest(t, http.MethodPost, "/api/farm/harvest", HarvestRequest{PlotIndex: intPtr(2)}, "p1"))

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[HarvestResponse](t, w)
		assert.Equal(t, MsgHarvestSuccess, resp.Message)
		assert.Equal(t, int64(32), resp.Harvest)
		assert.Equal(t, int64(48), resp.Stolen)
		assert.Equal(t, int64(15), resp.Exp)
		assert.Equal(t, int64(122), resp.User.Coins)
		m.assertExpectations(t)
	})

	t.Run("Not ready", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.harvest.On("Harvest", mock.Anything, "p1", 0).Return(nil, domain.ErrNotReady)

		w := httptest.NewRecorder()
		h.HandleHarvest(w, newRequest(t, http.MethodPost, "/api/farm/harvest", HarvestRequest{PlotIndex: intPtr(0)}, "p1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgNotReadyError, decodeBody[ErrorResponse](t, w).Error)
		m.users.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("Empty plot", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.harvest.On("Harvest", mock.Anything, "p1", 1).Return(nil, domain.ErrNothingToHarvest)

		w := httptest.NewRecorder()
		h.HandleHarvest(w, newRequest(t, http.MethodPost, "/api/farm/harvest", HarvestRequest{PlotIndex: intPtr(1)}, "p1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgNothingToHarvestError, decodeBody[ErrorResponse](t, w).Error)
	})
}

func TestFarmHandler_Steal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, m := newFarmHandler(t)
		m.theft.On("Steal", mock.Anything, "thief", "owner", 2).Return(&domain.StealResult{
			OwnerID: "owner", PlotIndex: 2, CropID: "corn", Amount: 24, Coins: 124,
		}, nil)
		m.users.On("GetProfile", mock.Anything, "thief").Return(&domain.Player{ID: "thief", Coins: 124}, nil)

		w := httptest.NewRecorder()
		h.HandleSteal(w, newRequest(t, http.MethodPost, "/api/farm/steal", StealRequest{FriendID: "owner", PlotIndex: intPtr(2)}, "thief"))

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[StealResponse](t, w)
		assert.Equal(t, int64(24), resp.Amount)
		assert.Equal(t, int64(124), resp.User.Coins)
		assert.Contains(t, resp.Message, "24")
		m.assertExpectations(t)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not friends", domain.ErrNotFriends, http.StatusForbidden, ErrMsgNotFriendsError},
		{"already stolen", domain.ErrAlreadyStolen, http.StatusBadRequest, ErrMsgAlreadyStolenError},
		{"no crop", domain.ErrNoCrop, http.StatusBadRequest, ErrMsgNoCropError},
		{"not ready", domain.ErrNotReady, http.StatusBadRequest, ErrMsgNotReadyError},
		{"own farm", fmt.Errorf("%w: cannot steal from yourself", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidInputError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newFarmHandler(t)
			m.theft.On("Steal", mock.Anything, "thief", "owner", 0).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.HandleSteal(w, newRequest(t, http.MethodPost, "/api/farm/steal", StealRequest{FriendID: "owner", PlotIndex: intPtr(0)}, "thief"))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[ErrorResponse](t, w).Error)
		})
	}

	t.Run("Missing friend id", func(t *testing.T) {
		h, m := newFarmHandler(t)

		w := httptest.NewRecorder()
		h.HandleSteal(w, newRequest(t, http.MethodPost, "/api/farm/steal", StealRequest{PlotIndex: intPtr(0)}, "thief"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		fields := decodeBody[ValidationErrorResponse](t, w).Fields
		assert.Contains(t, fields, "friendId")
		m.theft.AssertNotCalled(t, "Steal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
