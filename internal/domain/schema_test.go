package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Date", ColDate},
		{"  datetime ", ColDate},
		{"Timestamp", ColDate},
		{"City", ColCity},
		{"LOCATION", ColCity},
		{"AQI", ColAQI},
		{"Air Quality Index", ColAQI},
		{"AQI_Bucket", "AQI_Bucket"},
		{"PM2.5", ColPM25},
		{"pm25_ugm3", ColPM25},
		{"PM10 (ug/m3)", ColPM10},
		{"no2", ColNO2},
		{"SO2", ColSO2},
		{"CO", ColCO},
		{"CO2", "CO2"},
		{"O3", ColO3},
		{"Ozone", ColO3},
		{" Station ", "Station"},
		{"City Name", "City Name"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalColumnName(tt.in))
		})
	}
}

func TestCanonicalColumnName_FirstRuleWins(t *testing.T) {
	// "time" beats the pollutant rules even when the name also mentions one.
	assert.Equal(t, ColDate, CanonicalColumnName("PM10 sample time"))
}

func TestNormalizeColumns(t *testing.T) {
	t.Run("renames in place", func(t *testing.T) {
		got, err := NormalizeColumns([]string{" Location", "Datetime", "Air Quality Index", "Ozone", "Notes"})
		require.NoError(t, err)
		assert.Equal(t, []string{ColCity, ColDate, ColAQI, ColO3, "Notes"}, got)
	})

	t.Run("missing AQI", func(t *testing.T) {
		_, err := NormalizeColumns([]string{"Date", "City", "PM2.5"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)

		var mce *MissingColumnError
		require.True(t, errors.As(err, &mce))
		assert.Equal(t, ColAQI, mce.Column)
	})

	t.Run("missing Date", func(t *testing.T) {
		_, err := NormalizeColumns([]string{"City", "AQI"})
		var mce *MissingColumnError
		require.ErrorAs(t, err, &mce)
		assert.Equal(t, ColDate, mce.Column)
	})

	t.Run("missing City", func(t *testing.T) {
		_, err := NormalizeColumns([]string{"Date", "AQI"})
		var mce *MissingColumnError
		require.ErrorAs(t, err, &mce)
		assert.Equal(t, ColCity, mce.Column)
	})

	t.Run("two columns map to Date", func(t *testing.T) {
		_, err := NormalizeColumns([]string{"Date", "Time", "City", "AQI"})
		require.ErrorIs(t, err, ErrDuplicateColumn)

		var dce *DuplicateColumnError
		require.ErrorAs(t, err, &dce)
		assert.Equal(t, ColDate, dce.Canonical)
		assert.Equal(t, []string{"Date", "Time"}, dce.Sources)
		assert.Contains(t, err.Error(), `"Date", "Time"`)
	})

	t.Run("repeated pass-through names are kept", func(t *testing.T) {
		got, err := NormalizeColumns([]string{"Date", "City", "AQI", "Notes", " Notes"})
		require.NoError(t, err)
		assert.Equal(t, []string{ColDate, ColCity, ColAQI, "Notes", "Notes"}, got)
	})
}

func TestIsNumericColumn(t *testing.T) {
	assert.True(t, IsNumericColumn(ColAQI))
	assert.True(t, IsNumericColumn(ColPM25))
	assert.True(t, IsNumericColumn(ColO3))
	assert.False(t, IsNumericColumn(ColCity))
	assert.False(t, IsNumericColumn(ColYear))
	assert.False(t, IsNumericColumn("Notes"))
}
