package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/model"
)

func TestTaskTypeFlag(t *testing.T) {
	tests := map[string]struct {
		value   string
		expType model.TaskType
		expErr  bool
	}{
		"Empty value means unset": {
			value:   "",
			expType: "",
		},
		"Known type should parse": {
			value:   "dis",
			expType: model.TaskTypeDis,
		},
		"Unknown type should fail": {
			value:  "teleport",
			expErr: true,
		},
		"Upper case is not accepted": {
			value:  "NAV",
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := taskTypeFlag(tc.value)

			if tc.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expType, got)
		})
	}
}
