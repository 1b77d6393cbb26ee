package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/common"
)

func TestToKW(t *testing.T) {
	tests := []struct {
		name    string
		unit    string
		value   float64
		want    float64
		wantErr bool
	}{
		{name: "kW identity", unit: "kW", value: 135.5387, want: 135.5387},
		{name: "watts", unit: "W", value: 1500, want: 1.5},
		{name: "aspen watt label", unit: "Watt", value: 693035.2, want: 693.0352},
		{name: "horsepower", unit: "hp", value: 100, want: 74.57},
		{name: "megawatts", unit: "MW", value: 1.2, want: 1200},
		{name: "unknown label", unit: "furlongs", value: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToKW(tt.value, tt.unit)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrUnknownUnit))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestToBarAbsolute(t *testing.T) {
	tests := []struct {
		name  string
		unit  string
		value float64
		want  float64
	}{
		{name: "bar identity", unit: "bar", value: 10, want: 10},
		{name: "pascal", unit: "Pa", value: 100000, want: 1.0},
		{name: "aspen SI pressure", unit: "N/sqm", value: 101325, want: 1.01325},
		{name: "atm", unit: "atm", value: 1, want: 1.01325},
		{name: "psia", unit: "psia", value: 14.5038, want: 1.00000082},
		{name: "gauge bar shifts to absolute", unit: "barg", value: 10, want: 11.01325},
		{name: "gauge psi shifts to absolute", unit: "psig", value: 0, want: 1.01325},
		{name: "gauge kPa case-insensitive", unit: "kPag", value: 100, want: 2.01325},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBarAbsolute(tt.value, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestToM3PerS(t *testing.T) {
	got, err := ToM3PerS(3600, "m3/h")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = ToM3PerS(1000, "L/s")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = ToM3PerS(60, "cfm")
	require.NoError(t, err)
	assert.InDelta(t, 0.0283168, got, 1e-9)
}

func TestConvertDispatch(t *testing.T) {
	got, err := Convert(2, "sqft", Area)
	require.NoError(t, err)
	assert.InDelta(t, 0.185806, got, 1e-6)

	got, err = Convert(1, "gal", Volume)
	require.NoError(t, err)
	assert.InDelta(t, 0.00378541, got, 1e-9)

	_, err = Convert(1, "kW", Quantity("speed"))
	require.Error(t, err)
}

func TestIsGauge(t *testing.T) {
	assert.True(t, IsGauge("barg"))
	assert.True(t, IsGauge("PSIG"))
	assert.False(t, IsGauge("bar"))
	assert.False(t, IsGauge(""))
}

func TestDefaultUnit(t *testing.T) {
	assert.Equal(t, "Watt", DefaultUnit("SI", Power))
	assert.Equal(t, "psia", DefaultUnit("ENG", Pressure))
	assert.Equal(t, "cum/hr", DefaultUnit("MET", VolumeFlow))
	// Unrecognized unit sets fall back to SI.
	assert.Equal(t, "N/sqm", DefaultUnit("CUSTOM-7", Pressure))
}
