package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/navcorpus/internal/model"
)

func TestNormalizePanoramaID(t *testing.T) {
	tests := map[string]struct {
		id  string
		exp string
	}{
		"A variant suffix should be stripped":        {id: "P42_z2", exp: "P42"},
		"A multi digit variant should be stripped":   {id: "pano_abc_z12", exp: "pano_abc"},
		"An id without suffix should be untouched":   {id: "P42", exp: "P42"},
		"A z without digits should be untouched":     {id: "P42_z", exp: "P42_z"},
		"A non trailing variant should be untouched": {id: "P42_z2_extra", exp: "P42_z2_extra"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, model.NormalizePanoramaID(test.id))
		})
	}
}

func TestGeofenceContains(t *testing.T) {
	g := model.Geofence{
		Name:      "list_nav_kfc_20240101_0001",
		Panoramas: map[string]struct{}{"P42": {}, "P43": {}},
	}

	assert.True(t, g.Contains("P42"))
	assert.False(t, g.Contains("P99"))
}

func TestGeofenceValidate(t *testing.T) {
	err := model.Geofence{Name: ""}.Validate()
	assert.ErrorIs(t, err, model.ErrNotValid)

	err = model.Geofence{Name: "list_nav_kfc_20240101_0001"}.Validate()
	assert.NoError(t, err)
}
