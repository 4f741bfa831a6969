package venueservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetVenue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/venues/10":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 10,
				"name": "Neon Arena",
				"owner_id": 77,
				"opening_time": "22:00",
				"closing_time": "02:00",
				"resource_pools": [
					{"resource_type": "pc", "capacity": 5, "hourly_rate": 120},
					{"resource_type": "console", "console_model": "PS5", "capacity": 2, "hourly_rate": 200}
				]
			}`))
		case "/internal/venues/404":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/venues/500":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, nopLogger{})

	t.Run("existing venue", func(t *testing.T) {
		venue, err := client.GetVenue(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), venue.ID)
		assert.Equal(t, int64(77), venue.OwnerID)
		assert.Equal(t, "22:00", venue.OpeningTime)
		assert.Len(t, venue.Pools, 2)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetVenue(context.Background(), 404)
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GetVenue(context.Background(), 500)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestVenue_PoolFor(t *testing.T) {
	ps5 := "PS5"
	xbox := "Xbox Series X"

	venue := &Venue{
		Pools: []ResourcePool{
			{ResourceType: "pc", Capacity: 5, HourlyRate: 120},
			{ResourceType: "console", ConsoleModel: &ps5, Capacity: 2, HourlyRate: 200},
		},
	}

	t.Run("pc ignores console model", func(t *testing.T) {
		pool := venue.PoolFor("pc", &ps5)
		require.NotNil(t, pool)
		assert.Equal(t, 5, pool.Capacity)
	})

	t.Run("console matches by model", func(t *testing.T) {
		pool := venue.PoolFor("console", &ps5)
		require.NotNil(t, pool)
		assert.Equal(t, 200.0, pool.HourlyRate)
	})

	t.Run("unknown console model", func(t *testing.T) {
		assert.Nil(t, venue.PoolFor("console", &xbox))
	})

	t.Run("console without model", func(t *testing.T) {
		assert.Nil(t, venue.PoolFor("console", nil))
	})

	t.Run("unknown resource type", func(t *testing.T) {
		assert.Nil(t, venue.PoolFor("arcade", nil))
	})
}
