package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLayer(t *testing.T) {
	tests := []struct {
		input string
		want  Layer
	}{
		{"api", LayerAPI},
		{"06", LayerAPI},
		{"06-api", LayerAPI},
		{"API", LayerAPI},
		{" business ", LayerBusiness},
		{"01", LayerMotivation},
		{"01-motivation", LayerMotivation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLayer(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeLayerRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "07", "infrastructure", "06-business", "6-api"} {
		_, err := NormalizeLayer(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLayerCodeAndDir(t *testing.T) {
	assert.Equal(t, "02", LayerBusiness.Code())
	assert.Equal(t, "02-business", LayerBusiness.Dir())
}

func TestLayerIndexOrder(t *testing.T) {
	assert.Equal(t, 0, LayerMotivation.Index())
	assert.True(t, LayerBusiness.Index() < LayerApplication.Index())
	assert.Equal(t, -1, Layer("bogus").Index())
	assert.False(t, Layer("bogus").Known())
}
