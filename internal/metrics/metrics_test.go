package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StealFarm_Go/internal/domain"
	"github.com/osse101/StealFarm_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	planted := testutil.ToFloat64(CropsPlanted.WithLabelValues("corn"))
	spent := testutil.ToFloat64(CoinsSpent)
	stolen := testutil.ToFloat64(CoinsStolen)
	harvested := testutil.ToFloat64(CoinsHarvested)
	levels := testutil.ToFloat64(LevelUps)

	require.NoError(t, bus.Publish(ctx, event.NewCropPlantedEvent("p", 0, &domain.CropDefinition{ID: "corn", Price: 30})))
	require.NoError(t, bus.Publish(ctx, event.NewCropStolenEvent("t", "p", 0, "corn", 24)))
	require.NoError(t, bus.Publish(ctx, event.NewCropHarvestedEvent("p", 0, "corn",
		domain.Settlement{HarvestAmount: 56, StolenAmount: 24, ExpAmount: 15}, 1)))
	require.NoError(t, bus.Publish(ctx, event.NewPlayerLeveledUpEvent(domain.LevelResult{OldLevel: 1, NewLevel: 3, LeveledUp: true})))

	assert.Equal(t, planted+1, testutil.ToFloat64(CropsPlanted.WithLabelValues("corn")))
	assert.Equal(t, spent+30, testutil.ToFloat64(CoinsSpent))
	assert.Equal(t, stolen+24, testutil.ToFloat64(CoinsStolen))
	assert.Equal(t, harvested+56, testutil.ToFloat64(CoinsHarvested))
	assert.Equal(t, levels+2, testutil.ToFloat64(LevelUps))
}

func TestEventMetricsCollector_BadPayload(t *testing.T) {
	errs := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CropStolen)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.CropStolen,
		Payload: map[string]interface{}{"amount": "lots"},
	})

	assert.NoError(t, err)
	assert.Equal(t, errs+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.CropStolen))))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/farm/visit/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/farm/visit/{userID}", "403"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/farm/visit/"+id, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/farm/visit/{userID}", "403"))
	assert.Equal(t, before+2, after)
}
