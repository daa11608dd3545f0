package solarsys

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// FeatureType classifies a surface location.
type FeatureType int

const (
	FeatureOther FeatureType = iota
	FeatureCity
	FeatureObservatory
	FeatureLandingSite
	FeatureCrater
	FeatureVallis
	FeatureMons
	FeaturePlanum
	FeatureChasma
	FeaturePatera
	FeatureMare
	FeatureRupes
	FeatureTessera
	FeatureRegio
	FeatureChaos
	FeatureTerra
	FeatureVolcano
)

var featureTypeNames = map[string]FeatureType{
	"city":        FeatureCity,
	"observatory": FeatureObservatory,
	"landingsite": FeatureLandingSite,
	"crater":      FeatureCrater,
	"vallis":      FeatureVallis,
	"mons":        FeatureMons,
	"planum":      FeaturePlanum,
	"chasma":      FeatureChasma,
	"patera":      FeaturePatera,
	"mare":        FeatureMare,
	"rupes":       FeatureRupes,
	"tessera":     FeatureTessera,
	"regio":       FeatureRegio,
	"chaos":       FeatureChaos,
	"terra":       FeatureTerra,
	"volcano":     FeatureVolcano,
}

var featureTypeLabels = map[FeatureType]string{
	FeatureOther:       "Other",
	FeatureCity:        "City",
	FeatureObservatory: "Observatory",
	FeatureLandingSite: "Landing Site",
	FeatureCrater:      "Crater",
	FeatureVallis:      "Vallis",
	FeatureMons:        "Mons",
	FeaturePlanum:      "Planum",
	FeatureChasma:      "Chasma",
	FeaturePatera:      "Patera",
	FeatureMare:        "Mare",
	FeatureRupes:       "Rupes",
	FeatureTessera:     "Tessera",
	FeatureRegio:       "Regio",
	FeatureChaos:       "Chaos",
	FeatureTerra:       "Terra",
	FeatureVolcano:     "Volcano",
}

// String returns the display label for the feature type.
func (f FeatureType) String() string {
	if label, ok := featureTypeLabels[f]; ok {
		return label
	}
	return "Other"
}

// ParseFeatureType maps a feature-type name to a FeatureType,
// case-insensitively and ignoring spaces ("Landing Site" and "LandingSite"
// are equivalent). Unrecognized names map to FeatureOther.
func ParseFeatureType(name string) FeatureType {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return featureTypeNames[key]
}

// Location is a named point on a body's surface. The planetocentric
// coordinates from the catalog are converted to a fixed Cartesian offset at
// creation time.
type Location struct {
	name       string
	position   mgl64.Vec3 // km, offset from body center
	size       float64    // km
	importance float64    // labeling priority; -1 when unspecified
	feature    FeatureType
}

// NewLocation returns a location with the given fixed offset.
func NewLocation(position mgl64.Vec3, size, importance float64, feature FeatureType) *Location {
	return &Location{
		position:   position,
		size:       size,
		importance: importance,
		feature:    feature,
	}
}

// Name returns the location's name.
func (l *Location) Name() string { return l.name }

// SetName sets the location's name.
func (l *Location) SetName(name string) { l.name = name }

// Position returns the fixed Cartesian offset from the body center.
func (l *Location) Position() mgl64.Vec3 { return l.position }

// Size returns the feature size in km.
func (l *Location) Size() float64 { return l.size }

// Importance returns the labeling priority; -1 when unspecified.
func (l *Location) Importance() float64 { return l.importance }

// FeatureType returns the location's classification.
func (l *Location) FeatureType() FeatureType { return l.feature }
