package catalog

import (
	"fmt"

	"github.com/LBV2012-26/Celestia/internal/parser"
	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// CreateReferenceFrame interprets a tagged frame descriptor into a concrete
// frame. The descriptor is a property group whose single field selects the
// frame family:
//
//	OrbitFrame { EclipticJ2000 { Center "Sol" } }
//	BodyFrame  { MeanEquator { Center "Sol/Earth" Object "Sol" } }
//
// Recognized tags: EclipticJ2000, EquatorJ2000, BodyFixed, MeanEquator.
// Every descriptor requires a Center path resolvable in the universe.
func CreateReferenceFrame(u *solarsys.Universe, v *parser.Value) (solarsys.Frame, error) {
	m := v.Map()
	if m == nil {
		return nil, fmt.Errorf("%w: descriptor must be a property group", ErrInvalidFrameDescriptor)
	}

	if fields, ok := m.Map("EclipticJ2000"); ok {
		center, err := frameCenter(u, fields)
		if err != nil {
			return nil, err
		}
		return solarsys.NewJ2000EclipticFrame(center), nil
	}
	if fields, ok := m.Map("EquatorJ2000"); ok {
		center, err := frameCenter(u, fields)
		if err != nil {
			return nil, err
		}
		return solarsys.NewJ2000EquatorFrame(center), nil
	}
	if fields, ok := m.Map("BodyFixed"); ok {
		center, err := frameCenter(u, fields)
		if err != nil {
			return nil, err
		}
		target, err := frameTarget(u, fields, center)
		if err != nil {
			return nil, err
		}
		return solarsys.NewBodyFixedFrame(center, target), nil
	}
	if fields, ok := m.Map("MeanEquator"); ok {
		center, err := frameCenter(u, fields)
		if err != nil {
			return nil, err
		}
		target, err := frameTarget(u, fields, center)
		if err != nil {
			return nil, err
		}
		return solarsys.NewBodyMeanEquatorFrame(center, target), nil
	}

	return nil, fmt.Errorf("%w: unknown frame type", ErrInvalidFrameDescriptor)
}

// frameCenter resolves the mandatory Center path of a frame descriptor.
func frameCenter(u *solarsys.Universe, fields *parser.Map) (solarsys.Selection, error) {
	path, ok := fields.String("Center")
	if !ok {
		return solarsys.Selection{}, fmt.Errorf("%w: missing Center", ErrInvalidFrameDescriptor)
	}
	center := u.FindPath(path)
	if center.Empty() {
		return solarsys.Selection{}, fmt.Errorf("%w: center %q not found", ErrInvalidFrameDescriptor, path)
	}
	return center, nil
}

// frameTarget resolves the optional Object path of a body-relative frame
// descriptor, defaulting to the frame center.
func frameTarget(u *solarsys.Universe, fields *parser.Map, center solarsys.Selection) (solarsys.Selection, error) {
	path, ok := fields.String("Object")
	if !ok {
		return center, nil
	}
	target := u.FindPath(path)
	if target.Empty() {
		return solarsys.Selection{}, fmt.Errorf("%w: object %q not found", ErrInvalidFrameDescriptor, path)
	}
	return target, nil
}
