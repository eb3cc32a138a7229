package model

import (
	"fmt"
	"regexp"
)

// Geofence is a named whitelist of panorama ids a task is restricted to.
type Geofence struct {
	Name      string
	Panoramas map[string]struct{}
}

// Contains returns true when the panorama id is a member of the geofence.
func (g Geofence) Contains(panoID string) bool {
	_, ok := g.Panoramas[panoID]
	return ok
}

// Validate validates the geofence.
func (g Geofence) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("geofence name is required: %w", ErrNotValid)
	}

	return nil
}

// Defect-list ids may carry a synthetic orientation variant suffix (e.g.
// `P42_z2`) that geofence membership ids never have.
var panoVariantSuffix = regexp.MustCompile(`_z\d+$`)

// NormalizePanoramaID strips the trailing variant suffix from a panorama id so
// it can be matched against geofence membership ids. Ids without the suffix
// are returned unchanged.
func NormalizePanoramaID(id string) string {
	return panoVariantSuffix.ReplaceAllString(id, "")
}
