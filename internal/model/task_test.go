package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/navcorpus/internal/model"
)

func TestNormalizeVerification(t *testing.T) {
	tests := map[string]struct {
		value string
		exp   model.Verification
	}{
		"Plain yes should normalize":            {value: "yes", exp: model.VerificationYes},
		"Mixed case with spaces should normalize": {value: "  Yes ", exp: model.VerificationYes},
		"Plain no should normalize":             {value: "NO", exp: model.VerificationNo},
		"Empty value should be unknown":         {value: "", exp: model.VerificationUnknown},
		"Unrecognized value should be unknown":  {value: "maybe", exp: model.VerificationUnknown},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, model.NormalizeVerification(test.value))
		})
	}
}

func TestTaskRouteSteps(t *testing.T) {
	tests := map[string]struct {
		route string
		exp   int
	}{
		"A three step route should count 3":      {route: "A->B->C", exp: 3},
		"An empty route should count 0":          {route: "", exp: 0},
		"A whitespace route should count 0":      {route: "   ", exp: 0},
		"Empty segments should not be counted":   {route: "A->->B", exp: 2},
		"A single step route should count 1":     {route: "pano_123", exp: 1},
		"Steps with spaces should be counted":    {route: " A -> B ", exp: 2},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			task := model.Task{RefinedRoute: test.route}
			assert.Equal(t, test.exp, task.RouteSteps())
		})
	}
}

func TestGroundTruthScalar(t *testing.T) {
	gt := model.GroundTruth{"optimal_distance_meters": 120.5}

	v, ok := gt.Scalar("optimal_distance_meters")
	assert.True(t, ok)
	assert.Equal(t, 120.5, v)

	_, ok = gt.Scalar("distance_between_pois_m")
	assert.False(t, ok)

	var nilGT model.GroundTruth
	_, ok = nilGT.Scalar("anything")
	assert.False(t, ok)
}

func TestTaskTypeValid(t *testing.T) {
	for _, taskType := range model.AllTaskTypes {
		assert.True(t, taskType.Valid())
	}
	assert.False(t, model.TaskType("route").Valid())
	assert.False(t, model.TaskType("").Valid())
}
