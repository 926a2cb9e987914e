package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
)

func filtersFor(t *testing.T, rawQuery string) (appointmentFilters, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/appointments?"+rawQuery, nil)

	return parseAppointmentFilters(c)
}

func TestParseAppointmentFilters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f, err := filtersFor(t, "")
		require.NoError(t, err)

		assert.Empty(t, f.Date)
		assert.Zero(t, f.BarberID)
		assert.Empty(t, f.Status)
		assert.False(t, f.Today)
		assert.False(t, f.Upcoming)
		assert.Zero(t, f.Limit)
	})

	t.Run("full query", func(t *testing.T) {
		f, err := filtersFor(t, "date=2026-03-10&barberId=3&status=CONFIRMED&today=true&upcoming=true&limit=20")
		require.NoError(t, err)

		assert.Equal(t, "2026-03-10", f.Date)
		assert.Equal(t, uint(3), f.BarberID)
		assert.Equal(t, "CONFIRMED", f.Status)
		assert.True(t, f.Today)
		assert.True(t, f.Upcoming)
		assert.Equal(t, 20, f.Limit)
	})

	t.Run("barberId=all means no filter", func(t *testing.T) {
		f, err := filtersFor(t, "barberId=all&status=all")
		require.NoError(t, err)

		assert.Zero(t, f.BarberID)
		assert.Equal(t, "all", f.Status)
	})

	t.Run("bad values", func(t *testing.T) {
		_, err := filtersFor(t, "barberId=pepe")
		assert.True(t, httperr.IsBusiness(err, "invalid_barber_id"))

		_, err = filtersFor(t, "status=DONE")
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))

		_, err = filtersFor(t, "limit=-5")
		assert.True(t, httperr.IsBusiness(err, "invalid_limit"))

		_, err = filtersFor(t, "limit=diez")
		assert.True(t, httperr.IsBusiness(err, "invalid_limit"))
	})
}
