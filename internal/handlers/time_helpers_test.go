package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("America/Santiago", "2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, "America/Santiago", d.Location().String())

	_, err = parseDate("America/Santiago", "10-03-2026")
	assert.Error(t, err)
}

func TestStartOfWeekIsMonday(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"wednesday",
			time.Date(2026, 3, 11, 15, 30, 0, 0, loc),
			time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		},
		{
			"monday maps to itself",
			time.Date(2026, 3, 9, 8, 0, 0, 0, loc),
			time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		},
		{
			"sunday belongs to the previous monday",
			time.Date(2026, 3, 15, 23, 0, 0, 0, loc),
			time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, startOfWeek(tc.in))
		})
	}
}

func TestStartOfDayAndMonth(t *testing.T) {
	loc, _ := time.LoadLocation("America/Santiago")
	in := time.Date(2026, 3, 11, 15, 30, 45, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), startOfDay(in))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), startOfMonth(in))
}
