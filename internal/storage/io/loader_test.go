package io_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storageio "github.com/slok/navcorpus/internal/storage/io"
)

func TestGeofenceYAMLRepositoryGetRegistry(t *testing.T) {
	fs := fstest.MapFS{
		"geofences.yaml": &fstest.MapFile{Data: []byte(`
list_nav_kfc_20240101_0001:
  - P42
  - P43
list_nav_bus_station_20240102_0930:
  - P50
`)},
		"broken.yaml": &fstest.MapFile{Data: []byte(`:::not yaml`)},
	}

	repo := storageio.NewGeofenceYAMLRepository(fs)

	registry, err := repo.GetRegistry(context.TODO(), "geofences.yaml")
	require.NoError(t, err)

	panoramas, ok := registry.Panoramas("list_nav_kfc_20240101_0001")
	require.True(t, ok)
	assert.Len(t, panoramas, 2)

	_, err = repo.GetRegistry(context.TODO(), "broken.yaml")
	assert.Error(t, err)

	_, err = repo.GetRegistry(context.TODO(), "missing.yaml")
	assert.Error(t, err)
}

func TestDefectListRepositoryGetDefectiveIDs(t *testing.T) {
	fs := fstest.MapFS{
		"defects.txt": &fstest.MapFile{Data: []byte(`
# flagged by the image classifier
P42_z2

P50
  P61_z1
`)},
	}

	repo := storageio.NewDefectListRepository(fs)

	ids, err := repo.GetDefectiveIDs(context.TODO(), "defects.txt")
	require.NoError(t, err)

	// Ids come back verbatim, normalization is the propagator's step.
	assert.Equal(t, []string{"P42_z2", "P50", "P61_z1"}, ids)

	_, err = repo.GetDefectiveIDs(context.TODO(), "missing.txt")
	assert.Error(t, err)
}
