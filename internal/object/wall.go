package object

import (
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Wall is a temporary barrier that destroys projectiles touching it.
type Wall struct {
	Start, End physics.Vec
	Thickness  float64
	ExpiresAt  time.Time
	Active     bool
}

// NewWall creates a wall from a drag gesture. Drags longer than the maximum
// length are shortened along the same direction.
func NewWall(start, end physics.Vec, now time.Time) *Wall {
	d := end.Sub(start)
	if d.Len() > config.WallMaxLength {
		end = start.Add(physics.FromAngle(d.Angle(), config.WallMaxLength))
	}
	return &Wall{
		Start:     start,
		End:       end,
		Thickness: config.WallThickness,
		ExpiresAt: now.Add(config.WallDuration),
		Active:    true,
	}
}

// Length returns the wall length.
func (w *Wall) Length() float64 {
	return physics.Distance(w.Start, w.End)
}

// CollidesWith reports whether a circle touches the wall segment.
func (w *Wall) CollidesWith(center physics.Vec, radius float64) bool {
	return physics.SegmentCircleIntersect(w.Start, w.End, center, radius)
}

// Expire deactivates the wall once its duration has elapsed.
func (w *Wall) Expire(now time.Time) {
	if w.Active && !now.Before(w.ExpiresAt) {
		w.Active = false
	}
}
