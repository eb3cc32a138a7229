package io

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/navcorpus/internal/geofence"
)

// GeofenceYAMLRepository loads geofence configuration from YAML files.
type GeofenceYAMLRepository struct {
	fs fs.FS
}

// NewGeofenceYAMLRepository creates a new YAML geofence repository.
func NewGeofenceYAMLRepository(filesystem fs.FS) *GeofenceYAMLRepository {
	return &GeofenceYAMLRepository{fs: filesystem}
}

// GetRegistry loads a geofence configuration (name -> panorama id list) from
// a YAML file and returns a validated registry.
func (r *GeofenceYAMLRepository) GetRegistry(ctx context.Context, path string) (*geofence.Registry, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading geofence file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var config map[string][]string
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	registry, err := geofence.NewRegistry(config)
	if err != nil {
		return nil, fmt.Errorf("invalid geofence configuration: %w", err)
	}

	return registry, nil
}

// DefectListRepository loads defect lists: line-oriented files with one
// panorama id per line, produced by the external image-defect classifier.
type DefectListRepository struct {
	fs fs.FS
}

// NewDefectListRepository creates a new defect list repository.
func NewDefectListRepository(filesystem fs.FS) *DefectListRepository {
	return &DefectListRepository{fs: filesystem}
}

// GetDefectiveIDs loads the panorama ids from a defect list file. Blank lines
// and `#` comment lines are ignored. Ids are returned verbatim, variant
// suffix normalization is the propagator's step.
func (r *DefectListRepository) GetDefectiveIDs(ctx context.Context, path string) ([]string, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading defect list: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var ids []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning defect list: %w", err)
	}

	return ids, nil
}
