package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phygon975/API-project/internal/model"
)

func TestParseOverrideFlags_MergesPerDevice(t *testing.T) {
	overrides, err := parseOverrideFlags(
		[]string{"E-201=Pump"},
		[]string{"E-201=reciprocating", "P-101=reciprocating"},
		[]string{"P-101=SS"},
	)
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	assert.Equal(t, model.CategoryPump, overrides["E-201"].Category)
	assert.Equal(t, "reciprocating", overrides["E-201"].Subtype)
	assert.Equal(t, "reciprocating", overrides["P-101"].Subtype)
	assert.Equal(t, "SS", overrides["P-101"].Material)
}

func TestParseOverrideFlags_UnknownCategory(t *testing.T) {
	_, err := parseOverrideFlags([]string{"E-201=Teleporter"}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Teleporter")
}

func TestParseOverrideFlags_BadSyntax(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "missing equals", value: "P-101"},
		{name: "empty device", value: "=SS"},
		{name: "empty value", value: "P-101="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOverrideFlags(nil, nil, []string{tt.value})
			assert.Error(t, err)
		})
	}
}

func TestParseOverrideFlags_Empty(t *testing.T) {
	overrides, err := parseOverrideFlags(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
