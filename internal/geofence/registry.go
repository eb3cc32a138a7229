// Package geofence holds the read-only registry of geofences: named
// whitelists of panorama ids that tasks are anchored to.
package geofence

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/slok/navcorpus/internal/model"
)

// Category groups POI types into coarse buckets for reporting.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryTransit    Category = "transit"
	CategoryShop       Category = "shop"
	CategoryHealth     Category = "health"
	CategoryEducation  Category = "education"
	CategoryLeisure    Category = "leisure"
	CategoryOther      Category = "other"
)

var poiCategories = map[string]Category{
	"kfc":               CategoryRestaurant,
	"mcdonalds":         CategoryRestaurant,
	"pizza_hut":         CategoryRestaurant,
	"starbucks":         CategoryCafe,
	"coffee_shop":       CategoryCafe,
	"bus_station":       CategoryTransit,
	"subway_station":    CategoryTransit,
	"train_station":     CategoryTransit,
	"supermarket":       CategoryShop,
	"convenience_store": CategoryShop,
	"pharmacy":          CategoryHealth,
	"hospital":          CategoryHealth,
	"school":            CategoryEducation,
	"library":           CategoryEducation,
	"park":              CategoryLeisure,
	"cinema":            CategoryLeisure,
}

// CategoryOf resolves a POI type to its category. Unknown POI types map to
// CategoryOther.
func CategoryOf(poiType string) Category {
	if c, ok := poiCategories[poiType]; ok {
		return c
	}
	return CategoryOther
}

// Legacy geofence names follow `list_nav_<poi_type>_<date>_<time>`.
var legacyNamePattern = regexp.MustCompile(`^list_nav_(.+)_(\d{8})_(\d{4})$`)

// PoiType extracts the POI type from a legacy geofence name. Returns false
// when the name does not follow the legacy pattern.
func PoiType(name string) (string, bool) {
	m := legacyNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Registry maps geofence names to their panorama membership. It is loaded
// once and read-only for the lifetime of a pipeline run.
type Registry struct {
	geofences map[string]model.Geofence
	names     []string
}

// NewRegistry builds a registry from a geofence configuration mapping
// (name -> collection of panorama ids, order irrelevant).
func NewRegistry(config map[string][]string) (*Registry, error) {
	geofences := make(map[string]model.Geofence, len(config))
	names := make([]string, 0, len(config))

	for name, panoIDs := range config {
		panoramas := make(map[string]struct{}, len(panoIDs))
		for _, id := range panoIDs {
			panoramas[id] = struct{}{}
		}

		g := model.Geofence{Name: name, Panoramas: panoramas}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("invalid geofence: %w", err)
		}

		geofences[name] = g
		names = append(names, name)
	}

	sort.Strings(names)

	return &Registry{geofences: geofences, names: names}, nil
}

// Get returns the named geofence.
func (r *Registry) Get(name string) (model.Geofence, bool) {
	g, ok := r.geofences[name]
	return g, ok
}

// Panoramas returns the panorama id set of the named geofence.
func (r *Registry) Panoramas(name string) (map[string]struct{}, bool) {
	g, ok := r.geofences[name]
	if !ok {
		return nil, false
	}
	return g.Panoramas, true
}

// Names returns every registered geofence name, sorted.
func (r *Registry) Names() []string {
	return r.names
}
