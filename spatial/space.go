// Package spatial answers overlap queries against the collision space.
package spatial

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// Space wraps the resolv space shared by every collidable entity. Objects
// added to it carry their *donburi.Entry in Data.
type Space struct {
	*resolv.Space
}

func NewSpace(width, height, cellSize int) *Space {
	return &Space{Space: resolv.NewSpace(width, height, cellSize, cellSize)}
}

// Center returns the middle of an object's bounding box.
func Center(obj *resolv.Object) dmath.Vec2 {
	return dmath.Vec2{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}
}

// QueryCircle returns the entries whose object centre lies within radius of
// center, restricted to objects carrying any of the filter tags. Each entry
// appears once. A negative or non-finite radius matches nothing.
func (s *Space) QueryCircle(center dmath.Vec2, radius float64, filter ...string) []*donburi.Entry {
	if s == nil || radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil
	}

	// The broadphase probe covers the circle's bounding square plus a pixel
	// so touching cells are included; the exact distance test follows.
	size := radius*2 + 2
	probe := resolv.NewObject(center.X-radius-1, center.Y-radius-1, size, size)
	s.Add(probe)
	defer s.Remove(probe)

	check := probe.Check(0, 0, filter...)
	if check == nil {
		return nil
	}

	var hits []*donburi.Entry
	seen := make(map[*resolv.Object]struct{}, len(check.Objects))
	for _, obj := range check.Objects {
		if _, ok := seen[obj]; ok {
			continue
		}
		seen[obj] = struct{}{}

		entry, ok := obj.Data.(*donburi.Entry)
		if !ok || entry == nil || !entry.Valid() {
			continue
		}
		c := Center(obj)
		if math.Hypot(c.X-center.X, c.Y-center.Y) > radius {
			continue
		}
		hits = append(hits, entry)
	}
	return hits
}
