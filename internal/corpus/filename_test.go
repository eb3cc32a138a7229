package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/navcorpus/internal/corpus"
	"github.com/slok/navcorpus/internal/model"
)

func TestParseFilename(t *testing.T) {
	tests := map[string]struct {
		filename string
		expInfo  corpus.FileInfo
		expErr   bool
	}{
		"A nav filename should parse": {
			filename: "nav_0001_kfc_union_square.json",
			expInfo: corpus.FileInfo{
				Type:       model.TaskTypeNav,
				SiblingKey: "0001",
				Stem:       "nav_0001_kfc_union_square",
			},
		},

		"A dis filename should parse": {
			filename: "dis_0007_market_street.json",
			expInfo: corpus.FileInfo{
				Type:       model.TaskTypeDis,
				SiblingKey: "0007",
				Stem:       "dis_0007_market_street",
			},
		},

		"A height filename with only two tokens should parse": {
			filename: "height_0042.json",
			expInfo: corpus.FileInfo{
				Type:       model.TaskTypeHeight,
				SiblingKey: "0042",
				Stem:       "height_0042",
			},
		},

		"A path should parse using its base name": {
			filename: "/data/tasks/vis_0003_ferry_building.json",
			expInfo: corpus.FileInfo{
				Type:       model.TaskTypeVis,
				SiblingKey: "0003",
				Stem:       "vis_0003_ferry_building",
			},
		},

		"An unknown type prefix should fail": {
			filename: "route_0001_x.json",
			expErr:   true,
		},

		"A name without underscore should fail": {
			filename: "nav.json",
			expErr:   true,
		},

		"An empty sibling key should fail": {
			filename: "nav__x.json",
			expErr:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			info, err := corpus.ParseFilename(test.filename)

			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expInfo, info)
		})
	}
}

func TestSiblingFilename(t *testing.T) {
	tests := map[string]struct {
		filename string
		to       model.TaskType
		expName  string
		expErr   bool
	}{
		"A dis file should map to its angle counterpart": {
			filename: "dis_0007_market_street.json",
			to:       model.TaskTypeAngle,
			expName:  "angle_0007_market_street.json",
		},

		"An angle file should map back to dis": {
			filename: "angle_0007_market_street.json",
			to:       model.TaskTypeDis,
			expName:  "dis_0007_market_street.json",
		},

		"A nav file should map to vis keeping the whole remainder": {
			filename: "nav_0001_kfc_union_square.json",
			to:       model.TaskTypeVis,
			expName:  "vis_0001_kfc_union_square.json",
		},

		"An unparseable filename should fail": {
			filename: "whatever.json",
			to:       model.TaskTypeVis,
			expErr:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := corpus.SiblingFilename(test.filename, test.to)

			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expName, got)
		})
	}
}
