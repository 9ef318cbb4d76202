package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StealFarm_Go/internal/domain"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockPlotService struct {
	mock.Mock
}

func (m *MockPlotService) GetFarm(ctx context.Context, playerID string) (*domain.Farm, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farm), args.Error(1)
}

func (m *MockPlotService) VisitFarm(ctx context.Context, visitorID, ownerID string) (*domain.Farm, error) {
	args := m.Called(ctx, visitorID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farm), args.Error(1)
}

func (m *MockPlotService) GetPlot(ctx context.Context, ownerID string, index int) (*domain.PlotView, error) {
	args := m.Called(ctx, ownerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlotView), args.Error(1)
}

func (m *MockPlotService) Plant(ctx context.Context, playerID string, index int, cropID string) (*domain.PlantResult, error) {
	args := m.Called(ctx, playerID, index, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlantResult), args.Error(1)
}

type MockHarvestService struct {
	mock.Mock
}

func (m *MockHarvestService) Harvest(ctx context.Context, playerID string, index int) (*domain.HarvestResult, error) {
	args := m.Called(ctx, playerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HarvestResult), args.Error(1)
}

type MockTheftService struct {
	mock.Mock
}

func (m *MockTheftService) Steal(ctx context.Context, thiefID, ownerID string, index int) (*domain.StealResult, error) {
	args := m.Called(ctx, thiefID, ownerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StealResult), args.Error(1)
}

type MockFriendService struct {
	mock.Mock
}

func (m *MockFriendService) List(ctx context.Context, playerID string) ([]domain.Friend, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friend), args.Error(1)
}

func (m *MockFriendService) Search(ctx context.Context, playerID, keyword string) ([]domain.SearchResult, error) {
	args := m.Called(ctx, playerID, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchResult), args.Error(1)
}

func (m *MockFriendService) Add(ctx context.Context, playerID, friendID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockFriendService) Remove(ctx context.Context, playerID, friendID string) error {
	return m.Called(ctx, playerID, friendID).Error(0)
}

func (m *MockFriendService) AreFriends(ctx context.Context, playerID, otherID string) (bool, error) {
	args := m.Called(ctx, playerID, otherID)
	return args.Bool(0), args.Error(1)
}

// newRequest builds a request with an optional JSON body and authenticated player
func newRequest(t *testing.T, method, target string, body interface{}, playerID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	if playerID != "" {
		req = req.WithContext(WithPlayerID(req.Context(), playerID))
	}
	return req
}

// withURLParam attaches a chi route parameter to the request
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
